package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustmarket/trustmarket/internal/domain"
	apperrors "github.com/trustmarket/trustmarket/pkg/errors"
	"github.com/trustmarket/trustmarket/pkg/pagination"
)

type stubCatalogRepo struct {
	products []domain.Product
	err      error
	calls    int
}

func (r *stubCatalogRepo) ListAll(context.Context) ([]domain.Product, error) {
	r.calls++
	return r.products, r.err
}

type fakeCache struct {
	snapshot []domain.Product
	hit      bool
	sets     int
}

func (c *fakeCache) Get(context.Context) ([]domain.Product, bool) {
	return c.snapshot, c.hit
}

func (c *fakeCache) Set(_ context.Context, products []domain.Product) {
	c.snapshot = products
	c.sets++
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func catalogFixture() []domain.Product {
	return []domain.Product{
		{ID: "p1", Name: "Organic Almond Milk", Category: "Food & Beverages", Price: 199, Rating: 4.5},
		{ID: "p2", Name: "Herbal Face Cleanser", Category: "Cosmetics & Personal Care", Price: 349, Rating: 4.2},
		{ID: "p3", Name: "Cotton Crew T-Shirt", Category: "Clothing & Apparel", Price: 499, Rating: 4.0},
	}
}

func TestCatalogSearch(t *testing.T) {
	repo := &stubCatalogRepo{products: catalogFixture()}
	svc := NewCatalogService(repo, nil, testLogger())

	products, total, err := svc.Search(context.Background(),
		domain.SearchCriteria{Query: "organic"}, pagination.DefaultParams())

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)
}

func TestCatalogSearchRejectsUnknownSort(t *testing.T) {
	repo := &stubCatalogRepo{products: catalogFixture()}
	svc := NewCatalogService(repo, nil, testLogger())

	_, _, err := svc.Search(context.Background(),
		domain.SearchCriteria{SortBy: "cheapest"}, pagination.DefaultParams())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Zero(t, repo.calls, "an invalid sort fails before touching the snapshot")
}

func TestCatalogSearchInvertedRangeIsEmptyNotError(t *testing.T) {
	repo := &stubCatalogRepo{products: catalogFixture()}
	svc := NewCatalogService(repo, nil, testLogger())

	min, max := int64(1000), int64(100)
	products, total, err := svc.Search(context.Background(),
		domain.SearchCriteria{MinPrice: &min, MaxPrice: &max}, pagination.DefaultParams())

	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, products)
}

func TestCatalogSearchPaginates(t *testing.T) {
	repo := &stubCatalogRepo{products: catalogFixture()}
	svc := NewCatalogService(repo, nil, testLogger())

	page := pagination.Params{Page: 2, PerPage: 2, Offset: 2}
	products, total, err := svc.Search(context.Background(), domain.SearchCriteria{}, page)

	require.NoError(t, err)
	assert.Equal(t, 3, total, "total counts all matches, not the page")
	require.Len(t, products, 1)
	assert.Equal(t, "p3", products[0].ID)
}

func TestCatalogSearchUsesCache(t *testing.T) {
	repo := &stubCatalogRepo{products: catalogFixture()}
	cache := &fakeCache{snapshot: catalogFixture()[:1], hit: true}
	svc := NewCatalogService(repo, cache, testLogger())

	_, total, err := svc.Search(context.Background(), domain.SearchCriteria{}, pagination.DefaultParams())

	require.NoError(t, err)
	assert.Equal(t, 1, total, "a cache hit serves the cached snapshot")
	assert.Zero(t, repo.calls)
}

func TestCatalogSearchPopulatesCacheOnMiss(t *testing.T) {
	repo := &stubCatalogRepo{products: catalogFixture()}
	cache := &fakeCache{}
	svc := NewCatalogService(repo, cache, testLogger())

	_, total, err := svc.Search(context.Background(), domain.SearchCriteria{}, pagination.DefaultParams())

	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, 1, cache.sets)
}

func TestCatalogSearchRepoFailure(t *testing.T) {
	repo := &stubCatalogRepo{err: errors.New("connection reset")}
	svc := NewCatalogService(repo, nil, testLogger())

	_, _, err := svc.Search(context.Background(), domain.SearchCriteria{}, pagination.DefaultParams())

	assert.Error(t, err)
}

func TestCatalogCategories(t *testing.T) {
	svc := NewCatalogService(&stubCatalogRepo{}, nil, testLogger())

	categories := svc.Categories(context.Background())

	assert.Contains(t, categories, "Food & Beverages")
	assert.Len(t, categories, 8)
}
