// Package catalog owns the product records and the category set behind the
// till. The store keeps catalog order and an id index side by side so cart
// lines can hold weak references resolved in O(1).
//
// The store is not safe for concurrent use on its own; the pos session
// serializes every operation behind its till lock.
package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/karwanotmani/bazarpos-backend/pkg/errors"
)

// Product is one sellable item. Quantity is units on hand.
type Product struct {
	ID       uuid.UUID
	Name     string
	Barcode  string
	Price    decimal.Decimal
	Quantity int
	Category string
}

// AddProductInput captures the payload required to create a product.
type AddProductInput struct {
	Name     string
	Barcode  string
	Price    decimal.Decimal
	Quantity int
	Category string
}

// UpdateProductInput carries the optional fields an edit may change.
type UpdateProductInput struct {
	Name     *string
	Barcode  *string
	Price    *decimal.Decimal
	Quantity *int
	Category *string
}

// Store holds products in catalog order plus the category set.
type Store struct {
	products []*Product
	byID     map[uuid.UUID]*Product
	builtin  []string
	custom   []string
}

// BuiltinCategories is the fixed seed set; these cannot be removed.
var BuiltinCategories = []string{"food", "drinks", "hygiene", "household"}

// NewStore returns an empty catalog carrying the built-in categories.
func NewStore() *Store {
	return &Store{
		byID:    map[uuid.UUID]*Product{},
		builtin: append([]string(nil), BuiltinCategories...),
	}
}

// Add validates and appends a new product, assigning a fresh id.
func (s *Store) Add(input AddProductInput) (Product, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Barcode = strings.TrimSpace(input.Barcode)

	if err := s.validateProduct(input.Name, input.Price, input.Quantity, input.Category); err != nil {
		return Product{}, err
	}
	if err := s.validateBarcode(input.Barcode, uuid.Nil); err != nil {
		return Product{}, err
	}

	product := &Product{
		ID:       uuid.New(),
		Name:     input.Name,
		Barcode:  input.Barcode,
		Price:    input.Price,
		Quantity: input.Quantity,
		Category: input.Category,
	}
	s.products = append(s.products, product)
	s.byID[product.ID] = product
	return *product, nil
}

// Update edits a product in place. Validation runs before any field is
// touched, so a failed update leaves the record unchanged.
func (s *Store) Update(id uuid.UUID, input UpdateProductInput) (Product, error) {
	product, ok := s.byID[id]
	if !ok {
		return Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	name := product.Name
	if input.Name != nil {
		name = strings.TrimSpace(*input.Name)
	}
	price := product.Price
	if input.Price != nil {
		price = *input.Price
	}
	quantity := product.Quantity
	if input.Quantity != nil {
		quantity = *input.Quantity
	}
	category := product.Category
	if input.Category != nil {
		category = *input.Category
	}
	barcode := product.Barcode
	if input.Barcode != nil {
		barcode = strings.TrimSpace(*input.Barcode)
	}

	if err := s.validateProduct(name, price, quantity, category); err != nil {
		return Product{}, err
	}
	if err := s.validateBarcode(barcode, id); err != nil {
		return Product{}, err
	}

	product.Name = name
	product.Price = price
	product.Quantity = quantity
	product.Category = category
	product.Barcode = barcode
	return *product, nil
}

// Remove deletes a product. Historical sales keep their own snapshots, so
// nothing cascades.
func (s *Store) Remove(id uuid.UUID) error {
	if _, ok := s.byID[id]; !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	delete(s.byID, id)
	for i, product := range s.products {
		if product.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			break
		}
	}
	return nil
}

// FindByID returns a copy of the product, if present.
func (s *Store) FindByID(id uuid.UUID) (Product, bool) {
	product, ok := s.byID[id]
	if !ok {
		return Product{}, false
	}
	return *product, true
}

// Lookup serves the scan/search flow: exact barcode match or
// case-insensitive name substring, first match in catalog order.
func (s *Store) Lookup(query string) (Product, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Product{}, false
	}
	needle := strings.ToLower(query)
	for _, product := range s.products {
		if product.Barcode != "" && product.Barcode == query {
			return *product, true
		}
		if strings.Contains(strings.ToLower(product.Name), needle) {
			return *product, true
		}
	}
	return Product{}, false
}

// DecrementStock subtracts sold units. The caller sees either the full
// decrement or an unchanged record.
func (s *Store) DecrementStock(id uuid.UUID, amount int) error {
	product, ok := s.byID[id]
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if amount < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "decrement amount cannot be negative")
	}
	if amount > product.Quantity {
		return pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock").WithDetails(map[string]any{
			"product_id": product.ID.String(),
			"requested":  amount,
			"available":  product.Quantity,
		})
	}
	product.Quantity -= amount
	return nil
}

// Products returns copies of all products in catalog order. An empty
// category returns everything; otherwise the slice is filtered.
func (s *Store) Products(category string) []Product {
	out := make([]Product, 0, len(s.products))
	for _, product := range s.products {
		if category != "" && product.Category != category {
			continue
		}
		out = append(out, *product)
	}
	return out
}

// Len reports the number of products.
func (s *Store) Len() int {
	return len(s.products)
}

func (s *Store) validateProduct(name string, price decimal.Decimal, quantity int, category string) error {
	if name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "product price cannot be negative")
	}
	if quantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "product quantity cannot be negative")
	}
	if !s.HasCategory(category) {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown category").WithDetails(map[string]any{
			"category": category,
		})
	}
	return nil
}

func (s *Store) validateBarcode(barcode string, selfID uuid.UUID) error {
	if barcode == "" {
		return nil
	}
	for _, product := range s.products {
		if product.ID != selfID && product.Barcode == barcode {
			return pkgerrors.New(pkgerrors.CodeConflict, "barcode already assigned").WithDetails(map[string]any{
				"barcode": barcode,
			})
		}
	}
	return nil
}

// Restore replaces the product list wholesale, rebuilding the id index.
// Used when reloading persisted state; records are trusted as previously
// validated.
func (s *Store) Restore(products []Product) {
	s.products = make([]*Product, 0, len(products))
	s.byID = make(map[uuid.UUID]*Product, len(products))
	for i := range products {
		product := products[i]
		s.products = append(s.products, &product)
		s.byID[product.ID] = &product
	}
}
