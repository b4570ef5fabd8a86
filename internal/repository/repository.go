package repository

import (
	"context"

	"github.com/trustmarket/trustmarket/internal/domain"
)

// CatalogRepository supplies the product catalog snapshot. The catalog is
// read-only from this service's perspective.
type CatalogRepository interface {
	// ListAll returns the full catalog in stable order. The returned slice is
	// owned by the caller.
	ListAll(ctx context.Context) ([]domain.Product, error)
}

// SubmissionRepository records accepted feedback submissions.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *domain.FeedbackSubmission) error
}
