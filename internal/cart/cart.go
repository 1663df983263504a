// Package cart implements the line-item engine for the current sale. Each
// line moves absent -> qty 1 -> qty n -> absent; no line ever persists at
// zero quantity, and failed mutations leave the cart untouched.
//
// Like the catalog store, the cart relies on the pos session for
// serialization.
package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/karwanotmani/bazarpos-backend/internal/catalog"
	pkgerrors "github.com/karwanotmani/bazarpos-backend/pkg/errors"
)

// Line pairs a weak product reference with a snapshot of name and price
// taken at first add. LineTotal is always quantity x price.
type Line struct {
	ProductID uuid.UUID
	Name      string
	Price     decimal.Decimal
	Quantity  int
	LineTotal decimal.Decimal
}

// Cart is the ordered set of lines for the sale in progress. Insertion
// order is stable and each product appears at most once.
type Cart struct {
	lines []Line
	index map[uuid.UUID]int
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{index: map[uuid.UUID]int{}}
}

// AddItem puts one unit of the product in the cart, or increments the
// existing line by one. Stock limits are enforced against the live catalog.
func (c *Cart) AddItem(cat *catalog.Store, productID uuid.UUID) error {
	product, ok := cat.FindByID(productID)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	if i, ok := c.index[productID]; ok {
		return c.setQuantity(i, c.lines[i].Quantity+1, product.Quantity)
	}

	if product.Quantity < 1 {
		return insufficient(productID, 1, product.Quantity)
	}
	c.lines = append(c.lines, Line{
		ProductID: productID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  1,
		LineTotal: product.Price,
	})
	c.index[productID] = len(c.lines) - 1
	return nil
}

// ChangeQuantity applies a signed delta to an existing line. A delta that
// would take the quantity to zero or below is a silent no-op: the step
// control cannot drop below one. Exceeding live stock fails.
func (c *Cart) ChangeQuantity(cat *catalog.Store, productID uuid.UUID, delta int) error {
	i, ok := c.index[productID]
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not in cart")
	}
	product, ok := cat.FindByID(productID)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	next := c.lines[i].Quantity + delta
	if next <= 0 {
		return nil
	}
	return c.setQuantity(i, next, product.Quantity)
}

// setQuantity updates quantity and line total together or not at all.
func (c *Cart) setQuantity(i, next, available int) error {
	if next > available {
		return insufficient(c.lines[i].ProductID, next, available)
	}
	c.lines[i].Quantity = next
	c.lines[i].LineTotal = c.lines[i].Price.Mul(decimal.NewFromInt(int64(next)))
	return nil
}

// RemoveItem drops the line unconditionally; absent lines are a no-op.
func (c *Cart) RemoveItem(productID uuid.UUID) {
	i, ok := c.index[productID]
	if !ok {
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	delete(c.index, productID)
	for j := i; j < len(c.lines); j++ {
		c.index[c.lines[j].ProductID] = j
	}
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.lines = nil
	c.index = map[uuid.UUID]int{}
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []Line {
	return append([]Line(nil), c.lines...)
}

// Total is the exact sum of line totals; zero for an empty cart.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.LineTotal)
	}
	return total
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// Restore replaces the cart contents with the given lines.
func (c *Cart) Restore(lines []Line) {
	c.lines = append([]Line(nil), lines...)
	c.index = make(map[uuid.UUID]int, len(lines))
	for i, line := range c.lines {
		c.index[line.ProductID] = i
	}
}

// Units is the sum of line quantities.
func (c *Cart) Units() int {
	units := 0
	for _, line := range c.lines {
		units += line.Quantity
	}
	return units
}

func insufficient(productID uuid.UUID, requested, available int) error {
	return pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock").WithDetails(map[string]any{
		"product_id": productID.String(),
		"requested":  requested,
		"available":  available,
	})
}
