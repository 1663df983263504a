// Package reports derives period-bounded summaries from the sales ledger.
package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/karwanotmani/bazarpos-backend/internal/ledger"
	"github.com/karwanotmani/bazarpos-backend/pkg/enums"
	pkgerrors "github.com/karwanotmani/bazarpos-backend/pkg/errors"
)

// Summary aggregates the sales matching one reporting period.
type Summary struct {
	TotalSales       decimal.Decimal `json:"totalSales"`
	TransactionCount int             `json:"transactionCount"`
	ItemsSold        int             `json:"itemsSold"`
	Average          decimal.Decimal `json:"average"`
}

// Summarize folds the ledger's sales into a summary for the period anchored
// at asOf. Period semantics:
//
//	daily   same local calendar day as asOf
//	weekly  rolling window, timestamp >= asOf - 168h
//	monthly same calendar month and year as asOf
//	yearly  same calendar year as asOf
//
// With zero matching sales every field is zero; the average never divides
// by zero.
func Summarize(sales []ledger.Sale, period enums.Period, asOf time.Time) (Summary, error) {
	if !period.IsValid() {
		return Summary{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid period").WithDetails(map[string]any{
			"period": string(period),
		})
	}

	summary := Summary{TotalSales: decimal.Zero, Average: decimal.Zero}
	for _, sale := range sales {
		if !inPeriod(sale.Timestamp, period, asOf) {
			continue
		}
		summary.TransactionCount++
		summary.ItemsSold += sale.Units()
		summary.TotalSales = summary.TotalSales.Add(sale.Total)
	}

	if summary.TransactionCount > 0 {
		summary.Average = summary.TotalSales.Div(decimal.NewFromInt(int64(summary.TransactionCount)))
	}
	return summary, nil
}

func inPeriod(ts time.Time, period enums.Period, asOf time.Time) bool {
	ts = ts.In(asOf.Location())
	switch period {
	case enums.PeriodDaily:
		ty, tm, td := ts.Date()
		ay, am, ad := asOf.Date()
		return ty == ay && tm == am && td == ad
	case enums.PeriodWeekly:
		return !ts.Before(asOf.Add(-7 * 24 * time.Hour))
	case enums.PeriodMonthly:
		return ts.Year() == asOf.Year() && ts.Month() == asOf.Month()
	case enums.PeriodYearly:
		return ts.Year() == asOf.Year()
	}
	return false
}
