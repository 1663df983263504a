package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/karwanotmani/bazarpos-backend/api/controllers"
	"github.com/karwanotmani/bazarpos-backend/api/middleware"
	"github.com/karwanotmani/bazarpos-backend/internal/pos"
	"github.com/karwanotmani/bazarpos-backend/pkg/config"
	"github.com/karwanotmani/bazarpos-backend/pkg/logger"
	"github.com/karwanotmani/bazarpos-backend/pkg/metrics"
)

// Dependencies carries everything the router needs to stand up handlers.
type Dependencies struct {
	Config      *config.Config
	Logger      *logger.Logger
	Session     *pos.Session
	Registry    *prometheus.Registry
	HTTPMetrics *metrics.HTTPMetrics
	StorePinger controllers.Pinger
}

// New assembles the full route tree with the standard middleware chain.
func New(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger
	session := deps.Session
	threshold := cfg.Inventory.LowStockThreshold

	router := chi.NewRouter()
	router.Use(middleware.Recoverer(logg))
	router.Use(middleware.RequestID(logg))
	router.Use(middleware.Logging(logg))
	router.Use(middleware.CORS())
	if deps.HTTPMetrics != nil {
		router.Use(middleware.Metrics(deps.HTTPMetrics))
	}

	router.Get("/health/live", controllers.HealthLive(cfg))
	router.Get("/health/ready", controllers.HealthReady(cfg, logg, deps.StorePinger))
	if deps.Registry != nil {
		router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(session, threshold, logg))
			r.Post("/", controllers.ProductCreate(session, threshold, logg))
			r.Get("/lookup", controllers.ProductLookup(session, threshold, logg))
			r.Patch("/{id}", controllers.ProductUpdate(session, threshold, logg))
			r.Delete("/{id}", controllers.ProductDelete(session, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.CategoryList(session, logg))
			r.Post("/", controllers.CategoryCreate(session, logg))
			r.Delete("/{name}", controllers.CategoryDelete(session, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(session, logg))
			r.Delete("/", controllers.CartClear(session, logg))
			r.Post("/items", controllers.CartAddItem(session, logg))
			r.Patch("/items/{productId}", controllers.CartChangeQuantity(session, logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(session, logg))
		})

		r.Post("/checkout", controllers.Checkout(session, logg))

		r.Route("/sales", func(r chi.Router) {
			r.Get("/", controllers.SaleList(session, logg))
			r.Delete("/", controllers.SaleClear(session, logg))
			r.Post("/new", controllers.SaleNew(session, logg))
			r.Get("/{receiptNumber}", controllers.SaleGet(session, logg))
		})

		r.Get("/reports/summary", controllers.ReportSummary(session, logg))
	})

	return router
}
