package postgres

import (
	"context"
	"fmt"

	"github.com/trustmarket/trustmarket/internal/domain"
	"github.com/trustmarket/trustmarket/pkg/database"
)

// CatalogRepository reads the product catalog from PostgreSQL.
type CatalogRepository struct {
	pool database.DBTX
}

// NewCatalogRepository creates a PostgreSQL-backed catalog repository.
func NewCatalogRepository(pool database.DBTX) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

// ListAll returns the full catalog ordered by creation time, oldest first,
// which is the catalog's "relevance" order.
func (r *CatalogRepository) ListAll(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, name, brand, category, subcategory, description,
		       price, currency, rating, review_count, safety_score, risk_score,
		       tags, image_url, created_at
		FROM products
		ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product

		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Brand,
			&p.Category,
			&p.Subcategory,
			&p.Description,
			&p.Price,
			&p.Currency,
			&p.Rating,
			&p.ReviewCount,
			&p.SafetyScore,
			&p.RiskScore,
			&p.Tags,
			&p.ImageURL,
			&p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}

		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}
