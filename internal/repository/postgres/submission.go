package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/trustmarket/trustmarket/internal/domain"
	"github.com/trustmarket/trustmarket/pkg/database"
)

// SubmissionRepository persists accepted feedback submissions in PostgreSQL.
type SubmissionRepository struct {
	pool database.DBTX
}

// NewSubmissionRepository creates a PostgreSQL-backed submission repository.
func NewSubmissionRepository(pool database.DBTX) *SubmissionRepository {
	return &SubmissionRepository{pool: pool}
}

// Create inserts a submission. Structured sub-documents (criteria ratings,
// issues, evidence, contact) are stored as JSONB.
func (r *SubmissionRepository) Create(ctx context.Context, s *domain.FeedbackSubmission) error {
	criteria, err := json.Marshal(s.CriteriaRatings)
	if err != nil {
		return fmt.Errorf("marshal criteria ratings: %w", err)
	}

	issues, err := json.Marshal(s.Issues)
	if err != nil {
		return fmt.Errorf("marshal issues: %w", err)
	}

	evidence, err := json.Marshal(s.Evidence)
	if err != nil {
		return fmt.Errorf("marshal evidence: %w", err)
	}

	contact, err := json.Marshal(s.Contact)
	if err != nil {
		return fmt.Errorf("marshal contact: %w", err)
	}

	var proof []byte
	if s.PurchaseProof != nil {
		proof, err = json.Marshal(s.PurchaseProof)
		if err != nil {
			return fmt.Errorf("marshal purchase proof: %w", err)
		}
	}

	query := `
		INSERT INTO feedback_submissions (
			id, kind, product_id, author_name, overall_rating, criteria_ratings,
			body, issues, severity, incident_date, batch_number, location,
			evidence, purchase_proof, contact, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err = r.pool.Exec(ctx, query,
		s.ID,
		string(s.Kind),
		s.ProductID,
		s.AuthorName,
		s.OverallRating,
		criteria,
		s.Body,
		issues,
		s.Severity,
		s.IncidentDate,
		s.BatchNumber,
		s.Location,
		evidence,
		proof,
		contact,
		s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}

	return nil
}
