package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trustmarket/trustmarket/internal/catalog"
	"github.com/trustmarket/trustmarket/internal/domain"
	"github.com/trustmarket/trustmarket/internal/repository"
	apperrors "github.com/trustmarket/trustmarket/pkg/errors"
	"github.com/trustmarket/trustmarket/pkg/pagination"
)

// SnapshotCache caches the full catalog snapshot. Implementations treat cache
// failures as misses.
type SnapshotCache interface {
	Get(ctx context.Context) ([]domain.Product, bool)
	Set(ctx context.Context, products []domain.Product)
}

// CatalogService answers product queries by deriving views over the catalog
// snapshot. The snapshot itself is never mutated by a query.
type CatalogService struct {
	repo   repository.CatalogRepository
	cache  SnapshotCache
	logger *slog.Logger
}

// NewCatalogService creates the catalog query service. cache may be nil, in
// which case every query reads through to the repository.
func NewCatalogService(repo repository.CatalogRepository, cache SnapshotCache, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// Search derives the visible product list for the given criteria and returns
// the requested page window plus the total number of matches.
//
// An unknown sort key is rejected; an inverted price range is not an error
// and yields an empty result.
func (s *CatalogService) Search(ctx context.Context, criteria domain.SearchCriteria, page pagination.Params) ([]domain.Product, int, error) {
	if !domain.IsValidSort(criteria.SortBy) {
		return nil, 0, apperrors.InvalidInput(fmt.Sprintf("unknown sort option %q", criteria.SortBy))
	}

	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return nil, 0, err
	}

	view := catalog.DeriveView(snapshot, criteria)

	return pagination.Slice(view, page), len(view), nil
}

// Categories returns the known product categories in display order.
func (s *CatalogService) Categories(context.Context) []string {
	return catalog.Categories()
}

// snapshot returns the catalog, preferring the cache and falling back to the
// repository. Cache trouble never fails a query.
func (s *CatalogService) snapshot(ctx context.Context) ([]domain.Product, error) {
	if s.cache != nil {
		if products, ok := s.cache.Get(ctx); ok {
			return products, nil
		}
	}

	products, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "catalog snapshot load failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("load catalog snapshot: %w", err)
	}

	if s.cache != nil {
		s.cache.Set(ctx, products)
	}

	return products, nil
}
