// Package checkout settles the cart: it re-validates stock against the
// live catalog, commits a receipt to the ledger, decrements stock, and
// clears the cart. The session lock makes the whole settlement atomic from
// any observer's point of view.
package checkout

import (
	"fmt"
	"time"

	"github.com/karwanotmani/bazarpos-backend/internal/cart"
	"github.com/karwanotmani/bazarpos-backend/internal/catalog"
	"github.com/karwanotmani/bazarpos-backend/internal/ledger"
	"github.com/karwanotmani/bazarpos-backend/pkg/enums"
	pkgerrors "github.com/karwanotmani/bazarpos-backend/pkg/errors"
	"github.com/karwanotmani/bazarpos-backend/pkg/receipt"
)

// maxNumberAttempts bounds receipt regeneration on ledger collisions.
const maxNumberAttempts = 10

// NumberFunc generates candidate receipt numbers.
type NumberFunc func(now time.Time) (string, error)

// Processor coordinates catalog, cart and ledger for settlement.
type Processor struct {
	catalog *catalog.Store
	cart    *cart.Cart
	ledger  *ledger.Ledger
	numbers NumberFunc
}

// NewProcessor wires a processor over the till's owned state. A nil
// numbers func falls back to the default generator.
func NewProcessor(cat *catalog.Store, crt *cart.Cart, led *ledger.Ledger, numbers NumberFunc) (*Processor, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog store required")
	}
	if crt == nil {
		return nil, fmt.Errorf("cart required")
	}
	if led == nil {
		return nil, fmt.Errorf("ledger required")
	}
	if numbers == nil {
		numbers = receipt.Number
	}
	return &Processor{catalog: cat, cart: crt, ledger: led, numbers: numbers}, nil
}

// Settle converts the cart into a committed sale.
//
// Stock is re-checked against the live catalog before anything mutates;
// the cart's own history is not trusted, since stock may have been edited
// between add-to-cart and checkout. On any shortfall the settlement fails
// whole. Lines whose product was deleted in the meantime stay on the
// receipt but no longer have stock to decrement, so they are skipped.
func (p *Processor) Settle(method enums.PaymentMethod, now time.Time) (ledger.Sale, error) {
	if p.cart.Empty() {
		return ledger.Sale{}, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	if !method.IsValid() {
		return ledger.Sale{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}

	lines := p.cart.Lines()
	for _, line := range lines {
		product, ok := p.catalog.FindByID(line.ProductID)
		if !ok {
			continue
		}
		if line.Quantity > product.Quantity {
			return ledger.Sale{}, pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock at checkout").WithDetails(map[string]any{
				"product_id": line.ProductID.String(),
				"requested":  line.Quantity,
				"available":  product.Quantity,
			})
		}
	}

	number, err := p.uniqueNumber(now)
	if err != nil {
		return ledger.Sale{}, err
	}

	sale := ledger.Sale{
		ReceiptNumber: number,
		Lines:         snapshot(lines),
		Total:         p.cart.Total(),
		PaymentMethod: method,
		Timestamp:     now,
	}
	p.ledger.Append(sale)

	for _, line := range lines {
		if _, ok := p.catalog.FindByID(line.ProductID); !ok {
			continue
		}
		if err := p.catalog.DecrementStock(line.ProductID, line.Quantity); err != nil {
			// Pre-validated above; reaching this means the till invariant broke.
			return ledger.Sale{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "stock decrement after validation")
		}
	}

	p.cart.Clear()
	return sale, nil
}

func (p *Processor) uniqueNumber(now time.Time) (string, error) {
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		number, err := p.numbers(now)
		if err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generating receipt number")
		}
		if !p.ledger.HasReceiptNumber(number) {
			return number, nil
		}
	}
	return "", pkgerrors.New(pkgerrors.CodeInternal, "could not allocate a unique receipt number")
}

func snapshot(lines []cart.Line) []ledger.Line {
	out := make([]ledger.Line, 0, len(lines))
	for _, line := range lines {
		out = append(out, ledger.Line{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
			LineTotal: line.LineTotal,
		})
	}
	return out
}
