package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/karwanotmani/bazarpos-backend/internal/catalog"
	"github.com/karwanotmani/bazarpos-backend/internal/pos"
	"github.com/karwanotmani/bazarpos-backend/pkg/kv"
)

const testThreshold = 10

func newTestSession(t *testing.T) *pos.Session {
	t.Helper()
	session, err := pos.NewSession(pos.Options{
		Store: kv.NewMemory(),
		Clock: func() time.Time {
			return time.Date(2025, 6, 10, 12, 0, 0, 0, time.Local)
		},
	})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return session
}

func addProduct(t *testing.T, session *pos.Session, name, barcode, category string, price string, quantity int) catalog.Product {
	t.Helper()
	product, err := session.AddProduct(context.Background(), catalog.AddProductInput{
		Name:     name,
		Barcode:  barcode,
		Price:    decimal.RequireFromString(price),
		Quantity: quantity,
		Category: category,
	})
	if err != nil {
		t.Fatalf("add product %s: %v", name, err)
	}
	return product
}

func doJSON(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	return resp
}

func decodeData(t *testing.T, resp *httptest.ResponseRecorder, dest any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if err := json.Unmarshal(envelope.Data, dest); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) (code, message string) {
	t.Helper()
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	return envelope.Error.Code, envelope.Error.Message
}

// testRouter mounts the handlers that need chi URL params.
func testRouter(session *pos.Session) chi.Router {
	r := chi.NewRouter()
	r.Get("/products", ProductList(session, testThreshold, nil))
	r.Post("/products", ProductCreate(session, testThreshold, nil))
	r.Get("/products/lookup", ProductLookup(session, testThreshold, nil))
	r.Patch("/products/{id}", ProductUpdate(session, testThreshold, nil))
	r.Delete("/products/{id}", ProductDelete(session, nil))
	r.Get("/categories", CategoryList(session, nil))
	r.Post("/categories", CategoryCreate(session, nil))
	r.Delete("/categories/{name}", CategoryDelete(session, nil))
	r.Get("/cart", CartGet(session, nil))
	r.Delete("/cart", CartClear(session, nil))
	r.Post("/cart/items", CartAddItem(session, nil))
	r.Patch("/cart/items/{productId}", CartChangeQuantity(session, nil))
	r.Delete("/cart/items/{productId}", CartRemoveItem(session, nil))
	r.Post("/checkout", Checkout(session, nil))
	r.Get("/sales", SaleList(session, nil))
	r.Delete("/sales", SaleClear(session, nil))
	r.Post("/sales/new", SaleNew(session, nil))
	r.Get("/sales/{receiptNumber}", SaleGet(session, nil))
	r.Get("/reports/summary", ReportSummary(session, nil))
	return r
}

func decimalFromString(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", value, err)
	}
	return parsed
}
