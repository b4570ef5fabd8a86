package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/trustmarket/trustmarket/internal/domain"
	"github.com/trustmarket/trustmarket/internal/service"
	apperrors "github.com/trustmarket/trustmarket/pkg/errors"
	"github.com/trustmarket/trustmarket/pkg/httputil"
	"github.com/trustmarket/trustmarket/pkg/pagination"
)

// CatalogHandler exposes the catalog query endpoints.
type CatalogHandler struct {
	catalog *service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates the catalog HTTP handler.
func NewCatalogHandler(catalog *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// ListProducts handles GET /api/v1/products. All filters are optional; an
// inverted price range returns an empty page, not an error.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	criteria := domain.SearchCriteria{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		SortBy:   q.Get("sort"),
	}

	minPrice, err := priceParam(q.Get("min_price"), "min_price")
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	criteria.MinPrice = minPrice

	maxPrice, err := priceParam(q.Get("max_price"), "max_price")
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	criteria.MaxPrice = maxPrice

	page := pagination.FromRequest(r)

	products, total, err := h.catalog.Search(r.Context(), criteria, page)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK,
		httputil.NewPaginatedResponse(products, total, page.Page, page.PerPage))
}

// ListCategories handles GET /api/v1/categories.
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: h.catalog.Categories(r.Context()),
	})
}

func priceParam(raw, name string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return nil, apperrors.InvalidInput(fmt.Sprintf("%s must be a non-negative integer", name))
	}
	return &v, nil
}
