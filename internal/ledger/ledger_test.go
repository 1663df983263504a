package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/karwanotmani/bazarpos-backend/pkg/enums"
)

func sampleSale(number string) Sale {
	return Sale{
		ReceiptNumber: number,
		Lines: []Line{
			{ProductID: uuid.New(), Name: "bread", Price: decimal.NewFromInt(500), Quantity: 2, LineTotal: decimal.NewFromInt(1000)},
			{ProductID: uuid.New(), Name: "milk", Price: decimal.NewFromInt(1000), Quantity: 1, LineTotal: decimal.NewFromInt(1000)},
		},
		Total:         decimal.NewFromInt(2000),
		PaymentMethod: enums.PaymentMethodCash,
		Timestamp:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestAppendPreservesOrder(t *testing.T) {
	l := New()
	l.Append(sampleSale("AAAA1111"))
	l.Append(sampleSale("BBBB2222"))

	all := l.All()
	if len(all) != 2 || all[0].ReceiptNumber != "AAAA1111" || all[1].ReceiptNumber != "BBBB2222" {
		t.Fatalf("unexpected order: %+v", all)
	}
}

func TestSalesAreInsulatedFromCallers(t *testing.T) {
	l := New()
	sale := sampleSale("AAAA1111")
	l.Append(sale)

	// Mutating the caller's copy after append must not reach the ledger.
	sale.Lines[0].Quantity = 99
	got, ok := l.FindByReceiptNumber("AAAA1111")
	if !ok {
		t.Fatal("sale not found")
	}
	if got.Lines[0].Quantity != 2 {
		t.Fatalf("ledger entry mutated: %+v", got.Lines[0])
	}

	// Mutating a returned copy must not reach the ledger either.
	got.Lines[1].Name = "changed"
	again, _ := l.FindByReceiptNumber("AAAA1111")
	if again.Lines[1].Name != "milk" {
		t.Fatalf("ledger entry mutated through read copy: %+v", again.Lines[1])
	}
}

func TestFindByReceiptNumber(t *testing.T) {
	l := New()
	l.Append(sampleSale("AAAA1111"))

	if _, ok := l.FindByReceiptNumber("ZZZZ9999"); ok {
		t.Fatal("unexpected match")
	}
	if !l.HasReceiptNumber("AAAA1111") {
		t.Fatal("expected match")
	}
}

func TestClear(t *testing.T) {
	l := New()
	l.Append(sampleSale("AAAA1111"))
	l.Clear()
	if l.Len() != 0 {
		t.Fatalf("Len = %d after Clear", l.Len())
	}
}

func TestUnits(t *testing.T) {
	if got := sampleSale("AAAA1111").Units(); got != 3 {
		t.Fatalf("Units = %d, want 3", got)
	}
}

func TestRestore(t *testing.T) {
	l := New()
	l.Restore([]Sale{sampleSale("AAAA1111"), sampleSale("BBBB2222")})
	if l.Len() != 2 {
		t.Fatalf("Len = %d", l.Len())
	}
	if !l.HasReceiptNumber("BBBB2222") {
		t.Fatal("restored sale missing")
	}
}
