// Package pos owns the till's state. One Session holds the catalog, the
// cart, and the sales ledger, serializes every operation behind a single
// lock, writes through to the kv store after each mutation, and notifies
// render hooks with an immutable snapshot.
//
// The lock is the Go rendition of the original till's single event loop:
// no operation ever observes another operation's intermediate state.
package pos

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/karwanotmani/bazarpos-backend/internal/cart"
	"github.com/karwanotmani/bazarpos-backend/internal/catalog"
	"github.com/karwanotmani/bazarpos-backend/internal/checkout"
	"github.com/karwanotmani/bazarpos-backend/internal/ledger"
	"github.com/karwanotmani/bazarpos-backend/internal/reports"
	"github.com/karwanotmani/bazarpos-backend/pkg/enums"
	pkgerrors "github.com/karwanotmani/bazarpos-backend/pkg/errors"
	"github.com/karwanotmani/bazarpos-backend/pkg/kv"
	"github.com/karwanotmani/bazarpos-backend/pkg/logger"
	"github.com/karwanotmani/bazarpos-backend/pkg/metrics"
)

// Snapshot is the read-only state handed to render hooks after every
// mutation.
type Snapshot struct {
	Products   []catalog.Product
	Categories []string
	CartLines  []cart.Line
	CartTotal  decimal.Decimal
	Sales      []ledger.Sale
}

// Hook receives a snapshot after each mutating operation. Hooks must be
// idempotent pure functions of the snapshot and must not call back into
// the session.
type Hook func(Snapshot)

// Options wires a session's collaborators.
type Options struct {
	Store   kv.Store
	Logger  *logger.Logger
	Metrics *metrics.POSMetrics
	Numbers checkout.NumberFunc
	Clock   func() time.Time
}

// Session is the single owner of catalog, cart and ledger state.
type Session struct {
	mu sync.Mutex

	catalog   *catalog.Store
	cart      *cart.Cart
	ledger    *ledger.Ledger
	processor *checkout.Processor

	store   kv.Store
	logg    *logger.Logger
	metrics *metrics.POSMetrics
	clock   func() time.Time
	hooks   []Hook
}

// NewSession builds an empty session over the given store.
func NewSession(opts Options) (*Session, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("kv store required")
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	cat := catalog.NewStore()
	crt := cart.New()
	led := ledger.New()
	processor, err := checkout.NewProcessor(cat, crt, led, opts.Numbers)
	if err != nil {
		return nil, err
	}

	return &Session{
		catalog:   cat,
		cart:      crt,
		ledger:    led,
		processor: processor,
		store:     opts.Store,
		logg:      opts.Logger,
		metrics:   opts.Metrics,
		clock:     opts.Clock,
	}, nil
}

// Subscribe registers a render hook.
func (s *Session) Subscribe(hook Hook) {
	if hook == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, hook)
}

// Load restores catalog, categories and sales history from the kv store.
func (s *Session) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if value, ok, err := s.store.Get(ctx, keyCustomCategories); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading categories")
	} else if ok {
		names, err := decodeCategories(value)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "restoring categories")
		}
		s.catalog.RestoreCustomCategories(names)
	}

	if value, ok, err := s.store.Get(ctx, keyProducts); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading products")
	} else if ok {
		products, err := decodeProducts(value)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "restoring products")
		}
		s.catalog.Restore(products)
	}

	if value, ok, err := s.store.Get(ctx, keySalesHistory); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading sales history")
	} else if ok {
		sales, err := decodeSales(value)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "restoring sales history")
		}
		s.ledger.Restore(sales)
	}

	if s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"products": s.catalog.Len(),
			"sales":    s.ledger.Len(),
		})
		s.logg.Info(ctx, "session.loaded")
	}
	return nil
}

// AddProduct creates a catalog product and persists the catalog.
func (s *Session) AddProduct(ctx context.Context, input catalog.AddProductInput) (catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.catalog.Products("")
	product, err := s.catalog.Add(input)
	if err != nil {
		return catalog.Product{}, err
	}
	if err := s.persistProducts(ctx); err != nil {
		s.catalog.Restore(before)
		return catalog.Product{}, err
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithProductID(ctx, product.ID.String()), "product.added")
	}
	s.notify()
	return product, nil
}

// UpdateProduct edits a product and persists the catalog.
func (s *Session) UpdateProduct(ctx context.Context, id uuid.UUID, input catalog.UpdateProductInput) (catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.catalog.Products("")
	product, err := s.catalog.Update(id, input)
	if err != nil {
		return catalog.Product{}, err
	}
	if err := s.persistProducts(ctx); err != nil {
		s.catalog.Restore(before)
		return catalog.Product{}, err
	}
	s.notify()
	return product, nil
}

// RemoveProduct deletes a product. Cart lines referencing it stay put;
// settlement will skip them when reconciling stock.
func (s *Session) RemoveProduct(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.catalog.Products("")
	if err := s.catalog.Remove(id); err != nil {
		return err
	}
	if err := s.persistProducts(ctx); err != nil {
		s.catalog.Restore(before)
		return err
	}
	s.notify()
	return nil
}

// Products lists the catalog, optionally filtered by category.
func (s *Session) Products(_ context.Context, category string) []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Products(category)
}

// LookupProduct serves the scan/search flow.
func (s *Session) LookupProduct(_ context.Context, query string) (catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.catalog.Lookup(query)
	if !ok {
		return catalog.Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "no product matches the query")
	}
	return product, nil
}

// Categories lists built-in plus custom categories.
func (s *Session) Categories(_ context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Categories()
}

// AddCategory appends a custom category and persists the custom set.
func (s *Session) AddCategory(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.catalog.CustomCategories()
	if err := s.catalog.AddCategory(name); err != nil {
		return err
	}
	if err := s.persistCategories(ctx); err != nil {
		s.catalog.RestoreCustomCategories(before)
		return err
	}
	s.notify()
	return nil
}

// RemoveCategory deletes an unreferenced custom category.
func (s *Session) RemoveCategory(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.catalog.CustomCategories()
	if err := s.catalog.RemoveCategory(name); err != nil {
		return err
	}
	if err := s.persistCategories(ctx); err != nil {
		s.catalog.RestoreCustomCategories(before)
		return err
	}
	s.notify()
	return nil
}

// Cart returns the current lines and total.
func (s *Session) Cart(_ context.Context) ([]cart.Line, decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Lines(), s.cart.Total()
}

// AddToCart puts one unit of the product in the cart.
func (s *Session) AddToCart(ctx context.Context, productID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cart.AddItem(s.catalog, productID); err != nil {
		return err
	}
	s.notify()
	return nil
}

// ChangeCartQuantity applies a signed delta to a line.
func (s *Session) ChangeCartQuantity(ctx context.Context, productID uuid.UUID, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cart.ChangeQuantity(s.catalog, productID, delta); err != nil {
		return err
	}
	s.notify()
	return nil
}

// RemoveFromCart drops a line unconditionally.
func (s *Session) RemoveFromCart(_ context.Context, productID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.RemoveItem(productID)
	s.notify()
}

// ClearCart empties the cart.
func (s *Session) ClearCart(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
	s.notify()
}

// StartNewSale abandons the cart in progress and starts fresh.
func (s *Session) StartNewSale(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
	if s.logg != nil {
		s.logg.Info(ctx, "sale.new")
	}
	s.notify()
}

// Checkout settles the cart and persists catalog and history together.
// A failed write-through unwinds the settlement, so a reported failure
// never leaves a committed sale behind.
func (s *Session) Checkout(ctx context.Context, method enums.PaymentMethod) (ledger.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := s.catalog.Products("")
	lines := s.cart.Lines()
	sales := s.ledger.All()

	sale, err := s.processor.Settle(method, s.clock())
	if err != nil {
		return ledger.Sale{}, err
	}

	if err := multierr.Combine(s.persistProducts(ctx), s.persistSales(ctx)); err != nil {
		s.catalog.Restore(products)
		s.cart.Restore(lines)
		s.ledger.Restore(sales)
		return ledger.Sale{}, err
	}

	total, _ := sale.Total.Float64()
	s.metrics.ObserveCheckout(total, sale.Units())
	if s.logg != nil {
		s.logg.Info(s.logg.WithReceipt(ctx, sale.ReceiptNumber), "sale.settled")
	}
	s.notify()
	return sale, nil
}

// Sales returns the full ledger, oldest first.
func (s *Session) Sales(_ context.Context) []ledger.Sale {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.All()
}

// FindSale looks up a receipt by its exact number.
func (s *Session) FindSale(_ context.Context, receiptNumber string) (ledger.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sale, ok := s.ledger.FindByReceiptNumber(receiptNumber)
	if !ok {
		return ledger.Sale{}, pkgerrors.New(pkgerrors.CodeNotFound, "receipt not found")
	}
	return sale, nil
}

// ClearSales wipes all history. The confirmation step lives at the caller
// boundary; once invoked this is unconditional.
func (s *Session) ClearSales(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.ledger.All()
	s.ledger.Clear()
	if err := s.persistSales(ctx); err != nil {
		s.ledger.Restore(before)
		return err
	}
	if s.logg != nil {
		s.logg.Warn(ctx, "sales.history_cleared")
	}
	s.notify()
	return nil
}

// Summarize reports on the period anchored at asOf.
func (s *Session) Summarize(_ context.Context, period enums.Period, asOf time.Time) (reports.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return reports.Summarize(s.ledger.All(), period, asOf)
}

func (s *Session) persistProducts(ctx context.Context) error {
	value, err := encodeProducts(s.catalog.Products(""))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "serializing products")
	}
	if err := s.store.Set(ctx, keyProducts, value); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persisting products")
	}
	return nil
}

func (s *Session) persistCategories(ctx context.Context) error {
	value, err := encodeCategories(s.catalog.CustomCategories())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "serializing categories")
	}
	if err := s.store.Set(ctx, keyCustomCategories, value); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persisting categories")
	}
	return nil
}

func (s *Session) persistSales(ctx context.Context) error {
	value, err := encodeSales(s.ledger.All())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "serializing sales history")
	}
	if err := s.store.Set(ctx, keySalesHistory, value); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persisting sales history")
	}
	return nil
}

// notify hands each hook a fresh snapshot. Callers hold s.mu.
func (s *Session) notify() {
	if len(s.hooks) == 0 {
		return
	}
	snapshot := Snapshot{
		Products:   s.catalog.Products(""),
		Categories: s.catalog.Categories(),
		CartLines:  s.cart.Lines(),
		CartTotal:  s.cart.Total(),
		Sales:      s.ledger.All(),
	}
	for _, hook := range s.hooks {
		hook(snapshot)
	}
}
