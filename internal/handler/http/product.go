package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/CatalogGo/internal/domain"
	apperrors "github.com/utafrali/CatalogGo/pkg/errors"
	"github.com/utafrali/CatalogGo/pkg/httputil"
	"github.com/utafrali/CatalogGo/pkg/pagination"
	"github.com/utafrali/CatalogGo/pkg/validator"
)

// Catalog is the service surface the HTTP layer depends on.
type Catalog interface {
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
	ListProducts(ctx context.Context, query *domain.ListQuery) (*domain.SearchResult, error)
	Categories(ctx context.Context) ([]string, error)
	Aggregations(ctx context.Context, query *domain.ListQuery) (*domain.Facets, error)
	Health(ctx context.Context) (int, error)
}

// ProductHandler serves the catalog's read endpoints.
type ProductHandler struct {
	catalog Catalog
	logger  *slog.Logger
}

// NewProductHandler creates a handler over the catalog service.
func NewProductHandler(catalog Catalog, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{catalog: catalog, logger: logger}
}

// listResponse is the wire shape of GET /products. Limit and offset echo the
// effective window after capping, not the raw request values.
type listResponse struct {
	Total    int              `json:"total"`
	Limit    int              `json:"limit"`
	Offset   int              `json:"offset"`
	Products []domain.Product `json:"products"`
}

type categoriesResponse struct {
	Items []string `json:"items"`
}

type facetsResponse struct {
	Facets *domain.Facets `json:"facets"`
}

type healthResponse struct {
	Status        string `json:"status"`
	MySQL         string `json:"mysql"`
	Elasticsearch string `json:"elasticsearch"`
	ProductsCount int    `json:"products_count"`
}

type unhealthyResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// priceBounds carries the optional price window for validation.
type priceBounds struct {
	MinPrice *float64 `validate:"omitempty,gte=0"`
	MaxPrice *float64 `validate:"omitempty,gte=0"`
}

// parsePrice reads an optional price parameter. A present but non-numeric
// value is a client error.
func parsePrice(values map[string][]string, name string) (*float64, error) {
	vs, ok := values[name]
	if !ok || len(vs) == 0 || vs[0] == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(vs[0], 64)
	if err != nil {
		return nil, apperrors.InvalidInput(name + " must be a valid number")
	}
	return &v, nil
}

// parseListQuery builds the typed search specification from request
// parameters. Unknown parameters are ignored.
func parseListQuery(r *http.Request) (*domain.ListQuery, error) {
	values := r.URL.Query()

	minPrice, err := parsePrice(values, "min_price")
	if err != nil {
		return nil, err
	}
	maxPrice, err := parsePrice(values, "max_price")
	if err != nil {
		return nil, err
	}

	if err := validator.Validate(priceBounds{MinPrice: minPrice, MaxPrice: maxPrice}); err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	return &domain.ListQuery{
		Text:     strings.TrimSpace(values.Get("q")),
		Category: values.Get("category"),
		Brand:    values.Get("brand"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Window:   pagination.FromRequest(r),
	}, nil
}

// GetProduct handles GET /products/{id}.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		// A non-numeric id can never identify a product.
		httputil.WriteError(w, r, apperrors.NotFound("Product not found"), h.logger)
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, product)
}

// ListProducts handles GET /products.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query, err := parseListQuery(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	result, err := h.catalog.ListProducts(r.Context(), query)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, listResponse{
		Total:    result.Total,
		Limit:    query.Window.Limit,
		Offset:   query.Window.Offset,
		Products: result.Products,
	})
}

// Categories handles GET /categories.
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if categories == nil {
		categories = []string{}
	}
	httputil.WriteJSON(w, http.StatusOK, categoriesResponse{Items: categories})
}

// Aggregations handles GET /product-aggs.
func (h *ProductHandler) Aggregations(w http.ResponseWriter, r *http.Request) {
	query, err := parseListQuery(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	facets, err := h.catalog.Aggregations(r.Context(), query)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, facetsResponse{Facets: facets})
}

// Health handles GET /health: both backends are probed on every call.
func (h *ProductHandler) Health(w http.ResponseWriter, r *http.Request) {
	count, err := h.catalog.Health(r.Context())
	if err != nil {
		httputil.WriteJSON(w, http.StatusInternalServerError, unhealthyResponse{
			Status: "unhealthy",
			Error:  err.Error(),
		})
		return
	}

	httputil.WriteJSON(w, http.StatusOK, healthResponse{
		Status:        "healthy",
		MySQL:         "connected",
		Elasticsearch: "connected",
		ProductsCount: count,
	})
}
