package memory

import (
	"context"

	"github.com/trustmarket/trustmarket/internal/domain"
)

// CatalogRepository serves the catalog from a fixed in-memory slice. Used for
// local development and tests; the slice order is the catalog order.
type CatalogRepository struct {
	products []domain.Product
}

// NewCatalogRepository creates an in-memory catalog over the given products.
func NewCatalogRepository(products []domain.Product) *CatalogRepository {
	return &CatalogRepository{products: products}
}

// ListAll returns a copy of the catalog so callers can't mutate the source.
func (r *CatalogRepository) ListAll(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}
