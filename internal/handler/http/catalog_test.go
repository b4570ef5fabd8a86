package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustmarket/trustmarket/internal/domain"
	"github.com/trustmarket/trustmarket/pkg/httputil"
)

func decodeProductPage(t *testing.T, rec *httptest.ResponseRecorder) httputil.PaginatedResponse[domain.Product] {
	t.Helper()
	var page httputil.PaginatedResponse[domain.Product]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	return page
}

func TestListProducts(t *testing.T) {
	router := newTestRouter(&scriptedDispatcher{})

	rec := doRequest(router, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	page := decodeProductPage(t, rec)
	assert.Equal(t, 8, page.TotalCount)
	assert.Len(t, page.Data, 8)
}

func TestListProductsWithFilters(t *testing.T) {
	router := newTestRouter(&scriptedDispatcher{})

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"text filter", "q=organic", 1},
		{"category filter", "category=" + url.QueryEscape("Food & Beverages"), 1},
		{"all sentinel", "category=all", 8},
		{"price window", "min_price=100&max_price=300", 2},
		{"inverted range is empty, not an error", "min_price=500&max_price=100", 0},
		{"no match", "q=quantum", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(router, httptest.NewRequest(http.MethodGet, "/api/v1/products?"+tt.query, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			page := decodeProductPage(t, rec)
			assert.Equal(t, tt.want, page.TotalCount)
		})
	}
}

func TestListProductsSorted(t *testing.T) {
	router := newTestRouter(&scriptedDispatcher{})

	rec := doRequest(router, httptest.NewRequest(http.MethodGet, "/api/v1/products?sort=price_asc", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	page := decodeProductPage(t, rec)
	require.NotEmpty(t, page.Data)
	for i := 1; i < len(page.Data); i++ {
		assert.LessOrEqual(t, page.Data[i-1].Price, page.Data[i].Price)
	}
}

func TestListProductsBadParams(t *testing.T) {
	router := newTestRouter(&scriptedDispatcher{})

	tests := []struct {
		name  string
		query string
	}{
		{"unknown sort", "sort=cheapest"},
		{"non-numeric min price", "min_price=abc"},
		{"negative max price", "max_price=-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(router, httptest.NewRequest(http.MethodGet, "/api/v1/products?"+tt.query, nil))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestListProductsPagination(t *testing.T) {
	router := newTestRouter(&scriptedDispatcher{})

	rec := doRequest(router, httptest.NewRequest(http.MethodGet, "/api/v1/products?page=2&per_page=3", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	page := decodeProductPage(t, rec)
	assert.Equal(t, 8, page.TotalCount)
	assert.Len(t, page.Data, 3)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasNext)
}

func TestListCategories(t *testing.T) {
	router := newTestRouter(&scriptedDispatcher{})

	rec := doRequest(router, httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 8)
	assert.Contains(t, resp.Data, "Food & Beverages")
}

func TestListCriteria(t *testing.T) {
	router := newTestRouter(&scriptedDispatcher{})

	path := "/api/v1/categories/" + url.PathEscape("Food & Beverages") + "/criteria"
	rec := doRequest(router, httptest.NewRequest(http.MethodGet, path, nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Safety", "Freshness", "Taste/Nutrition"}, resp.Data)
}

func TestListCriteriaUnknownCategory(t *testing.T) {
	router := newTestRouter(&scriptedDispatcher{})

	rec := doRequest(router, httptest.NewRequest(http.MethodGet, "/api/v1/categories/Automotive/criteria", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
