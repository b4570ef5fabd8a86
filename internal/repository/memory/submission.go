package memory

import (
	"context"
	"sync"

	"github.com/trustmarket/trustmarket/internal/domain"
)

// SubmissionRepository keeps accepted submissions in memory. Used for local
// development and tests.
type SubmissionRepository struct {
	mu          sync.Mutex
	submissions []domain.FeedbackSubmission
}

// NewSubmissionRepository creates an empty in-memory submission store.
func NewSubmissionRepository() *SubmissionRepository {
	return &SubmissionRepository{}
}

// Create records a copy of the submission.
func (r *SubmissionRepository) Create(_ context.Context, s *domain.FeedbackSubmission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submissions = append(r.submissions, *s)
	return nil
}

// All returns a copy of everything recorded so far.
func (r *SubmissionRepository) All() []domain.FeedbackSubmission {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.FeedbackSubmission, len(r.submissions))
	copy(out, r.submissions)
	return out
}
