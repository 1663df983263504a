// Package ledger is the append-only record of settled sales. Entries are
// deep-copied in and out so later catalog or cart mutation can never reach
// a committed receipt.
package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/karwanotmani/bazarpos-backend/pkg/enums"
)

// Line is the immutable snapshot of one cart line at checkout time.
type Line struct {
	ProductID uuid.UUID
	Name      string
	Price     decimal.Decimal
	Quantity  int
	LineTotal decimal.Decimal
}

// Sale is one committed receipt.
type Sale struct {
	ReceiptNumber string
	Lines         []Line
	Total         decimal.Decimal
	PaymentMethod enums.PaymentMethod
	Timestamp     time.Time
}

// Units is the sum of line quantities on the receipt.
func (s Sale) Units() int {
	units := 0
	for _, line := range s.Lines {
		units += line.Quantity
	}
	return units
}

func (s Sale) clone() Sale {
	out := s
	out.Lines = append([]Line(nil), s.Lines...)
	return out
}

// Ledger holds sales in chronological (append) order.
type Ledger struct {
	sales []Sale
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Append records a sale. The ledger keeps its own copy.
func (l *Ledger) Append(sale Sale) {
	l.sales = append(l.sales, sale.clone())
}

// All returns copies of every sale, oldest first.
func (l *Ledger) All() []Sale {
	out := make([]Sale, 0, len(l.sales))
	for _, sale := range l.sales {
		out = append(out, sale.clone())
	}
	return out
}

// FindByReceiptNumber returns the sale with the exact receipt number.
func (l *Ledger) FindByReceiptNumber(number string) (Sale, bool) {
	for _, sale := range l.sales {
		if sale.ReceiptNumber == number {
			return sale.clone(), true
		}
	}
	return Sale{}, false
}

// HasReceiptNumber reports whether a number is already taken.
func (l *Ledger) HasReceiptNumber(number string) bool {
	_, ok := l.FindByReceiptNumber(number)
	return ok
}

// Clear wipes all history. Irreversible; confirmation is the caller's job.
func (l *Ledger) Clear() {
	l.sales = nil
}

// Len reports the number of recorded sales.
func (l *Ledger) Len() int {
	return len(l.sales)
}

// Restore replaces all sales wholesale when reloading persisted state.
func (l *Ledger) Restore(sales []Sale) {
	l.sales = make([]Sale, 0, len(sales))
	for _, sale := range sales {
		l.sales = append(l.sales, sale.clone())
	}
}
