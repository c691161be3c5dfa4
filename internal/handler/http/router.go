package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/CatalogGo/pkg/health"
	"github.com/utafrali/CatalogGo/pkg/middleware"
)

// NewRouter assembles the service's HTTP surface: the catalog endpoints plus
// the operational ones (probes and metrics).
func NewRouter(catalog Catalog, checks *health.Handler, logger *slog.Logger) http.Handler {
	h := NewProductHandler(catalog, logger)

	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("catalog"))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	r.Get("/health", h.Health)
	r.Get("/health/live", checks.LivenessHandler())
	r.Get("/health/ready", checks.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/products", h.ListProducts)
	r.Get("/products/{id}", h.GetProduct)
	r.Get("/categories", h.Categories)
	r.Get("/product-aggs", h.Aggregations)

	return r
}
