package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karwanotmani/bazarpos-backend/internal/pos"
	"github.com/karwanotmani/bazarpos-backend/pkg/config"
	"github.com/karwanotmani/bazarpos-backend/pkg/kv"
	"github.com/karwanotmani/bazarpos-backend/pkg/metrics"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	session, err := pos.NewSession(pos.Options{Store: kv.NewMemory()})
	require.NoError(t, err)

	registry := prometheus.NewRegistry()
	return New(Dependencies{
		Config: &config.Config{
			App:       config.AppConfig{Env: config.AppEnvDev, Port: "8080"},
			Store:     config.StoreConfig{Backend: config.StoreBackendMemory},
			Inventory: config.InventoryConfig{LowStockThreshold: 10},
		},
		Session:     session,
		Registry:    registry,
		HTTPMetrics: metrics.NewHTTPMetrics(registry),
	})
}

func do(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	return resp
}

func dataOf(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope.Data
}

func TestHealthEndpoints(t *testing.T) {
	handler := newTestHandler(t)

	resp := do(t, handler, http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = do(t, handler, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestMetricsEndpointExposed(t *testing.T) {
	handler := newTestHandler(t)

	do(t, handler, http.MethodGet, "/api/v1/products", "")
	resp := do(t, handler, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "http_request_duration_seconds")
}

func TestRequestIDHeader(t *testing.T) {
	handler := newTestHandler(t)

	resp := do(t, handler, http.MethodGet, "/api/v1/products", "")
	assert.NotEmpty(t, resp.Header().Get("X-Request-Id"))
}

func TestFullSaleFlow(t *testing.T) {
	handler := newTestHandler(t)

	resp := do(t, handler, http.MethodPost, "/api/v1/products",
		`{"name":"Bread","barcode":"1001","price":"500","quantity":50,"category":"food"}`)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	productID, _ := dataOf(t, resp)["id"].(string)
	require.NotEmpty(t, productID)

	resp = do(t, handler, http.MethodPost, "/api/v1/cart/items",
		`{"productId":"`+productID+`"}`)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = do(t, handler, http.MethodPost, "/api/v1/checkout", `{"paymentMethod":"card"}`)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	receipt, _ := dataOf(t, resp)["receiptNumber"].(string)
	require.Len(t, receipt, 8)

	resp = do(t, handler, http.MethodGet, "/api/v1/sales/"+receipt, "")
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = do(t, handler, http.MethodGet, "/api/v1/reports/summary?period=yearly", "")
	require.Equal(t, http.StatusOK, resp.Code)
	summary := dataOf(t, resp)
	assert.EqualValues(t, 1, summary["transactionCount"])
}
