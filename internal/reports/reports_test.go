package reports

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/karwanotmani/bazarpos-backend/internal/ledger"
	"github.com/karwanotmani/bazarpos-backend/pkg/enums"
	pkgerrors "github.com/karwanotmani/bazarpos-backend/pkg/errors"
)

func saleAt(ts time.Time, total int64, units int) ledger.Sale {
	lines := make([]ledger.Line, 0, 1)
	lines = append(lines, ledger.Line{Name: "item", Quantity: units, Price: decimal.NewFromInt(total / int64(units)), LineTotal: decimal.NewFromInt(total)})
	return ledger.Sale{
		ReceiptNumber: "TEST0000",
		Lines:         lines,
		Total:         decimal.NewFromInt(total),
		PaymentMethod: enums.PaymentMethodCash,
		Timestamp:     ts,
	}
}

func TestSummarizeEmptyLedger(t *testing.T) {
	asOf := time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)
	summary, err := Summarize(nil, enums.PeriodDaily, asOf)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if summary.TransactionCount != 0 || summary.ItemsSold != 0 {
		t.Fatalf("counts should be zero: %+v", summary)
	}
	if summary.TotalSales.Sign() != 0 || summary.Average.Sign() != 0 {
		t.Fatalf("amounts should be zero: %+v", summary)
	}
}

func TestSummarizeDailyBoundaries(t *testing.T) {
	asOf := time.Date(2025, 6, 15, 23, 0, 0, 0, time.Local)
	sales := []ledger.Sale{
		saleAt(time.Date(2025, 6, 15, 0, 0, 1, 0, time.Local), 1000, 2),  // same day, early
		saleAt(time.Date(2025, 6, 15, 22, 0, 0, 0, time.Local), 3000, 1), // same day
		saleAt(time.Date(2025, 6, 14, 23, 59, 0, 0, time.Local), 500, 1), // previous day
		saleAt(time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local), 500, 1),  // previous year, same date
	}

	summary, err := Summarize(sales, enums.PeriodDaily, asOf)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if summary.TransactionCount != 2 || summary.ItemsSold != 3 {
		t.Fatalf("unexpected counts: %+v", summary)
	}
	if !summary.TotalSales.Equal(decimal.NewFromInt(4000)) {
		t.Fatalf("total = %s", summary.TotalSales)
	}
	if !summary.Average.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("average = %s", summary.Average)
	}
}

func TestSummarizeWeeklyIsRolling(t *testing.T) {
	asOf := time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)
	sales := []ledger.Sale{
		saleAt(asOf.Add(-6*24*time.Hour), 1000, 1),                 // inside window
		saleAt(asOf.Add(-7*24*time.Hour), 2000, 2),                 // exactly on the boundary: included
		saleAt(asOf.Add(-7*24*time.Hour-time.Second), 4000, 1),     // just outside
		saleAt(time.Date(2025, 6, 9, 0, 0, 0, 0, time.Local), 0, 1), // 6.5 days back, inside
	}

	summary, err := Summarize(sales, enums.PeriodWeekly, asOf)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if summary.TransactionCount != 3 {
		t.Fatalf("count = %d, want 3", summary.TransactionCount)
	}
	if !summary.TotalSales.Equal(decimal.NewFromInt(3000)) {
		t.Fatalf("total = %s, want 3000", summary.TotalSales)
	}
}

func TestSummarizeMonthlyAndYearly(t *testing.T) {
	asOf := time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)
	sales := []ledger.Sale{
		saleAt(time.Date(2025, 6, 1, 9, 0, 0, 0, time.Local), 1000, 1),
		saleAt(time.Date(2025, 5, 31, 9, 0, 0, 0, time.Local), 2000, 2),
		saleAt(time.Date(2024, 6, 15, 9, 0, 0, 0, time.Local), 4000, 4),
	}

	monthly, err := Summarize(sales, enums.PeriodMonthly, asOf)
	if err != nil {
		t.Fatalf("Summarize monthly: %v", err)
	}
	if monthly.TransactionCount != 1 || !monthly.TotalSales.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("monthly = %+v", monthly)
	}

	yearly, err := Summarize(sales, enums.PeriodYearly, asOf)
	if err != nil {
		t.Fatalf("Summarize yearly: %v", err)
	}
	if yearly.TransactionCount != 2 || !yearly.TotalSales.Equal(decimal.NewFromInt(3000)) {
		t.Fatalf("yearly = %+v", yearly)
	}
	if yearly.ItemsSold != 3 {
		t.Fatalf("yearly items = %d, want 3", yearly.ItemsSold)
	}
}

func TestSummarizeAverageIsExactDecimal(t *testing.T) {
	asOf := time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)
	sales := []ledger.Sale{
		saleAt(asOf, 1000, 1),
		saleAt(asOf, 500, 1),
		saleAt(asOf, 500, 1),
	}
	summary, err := Summarize(sales, enums.PeriodDaily, asOf)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	want := decimal.NewFromInt(2000).Div(decimal.NewFromInt(3))
	if !summary.Average.Equal(want) {
		t.Fatalf("average = %s, want %s", summary.Average, want)
	}
}

func TestSummarizeInvalidPeriod(t *testing.T) {
	if _, err := Summarize(nil, enums.Period("hourly"), time.Now()); !pkgerrors.Is(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
