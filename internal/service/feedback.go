package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/trustmarket/trustmarket/internal/domain"
	"github.com/trustmarket/trustmarket/internal/feedback"
	"github.com/trustmarket/trustmarket/internal/identity"
	"github.com/trustmarket/trustmarket/internal/repository"
	apperrors "github.com/trustmarket/trustmarket/pkg/errors"
)

// EventProducer publishes feedback lifecycle events.
type EventProducer interface {
	SubmissionAccepted(ctx context.Context, s *domain.FeedbackSubmission) error
}

// FeedbackService owns the feedback submission flow: identity prefill, draft
// validation, moderation dispatch, persistence, and event publication. Every
// submit request gets a fresh form instance; the in-flight set only stops a
// signed-in user double-submitting the same kind of feedback for a product
// while an earlier dispatch is still running.
type FeedbackService struct {
	dispatcher feedback.Dispatcher
	repo       repository.SubmissionRepository
	producer   EventProducer
	identity   identity.Provider
	logger     *slog.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewFeedbackService creates the feedback service. producer may be nil when
// event publication is disabled.
func NewFeedbackService(
	dispatcher feedback.Dispatcher,
	repo repository.SubmissionRepository,
	producer EventProducer,
	idp identity.Provider,
	logger *slog.Logger,
) *FeedbackService {
	return &FeedbackService{
		dispatcher: dispatcher,
		repo:       repo,
		producer:   producer,
		identity:   idp,
		logger:     logger,
		inFlight:   make(map[string]struct{}),
	}
}

// CriteriaFor resolves the rating criteria for a product category.
func (s *FeedbackService) CriteriaFor(category string) ([]string, error) {
	criteria := feedback.CriteriaFor(category)
	if criteria == nil {
		return nil, apperrors.NotFound("category", category)
	}
	return criteria, nil
}

// SubmitReview pre-fills the draft from the session profile, then runs it
// through the form lifecycle. Validation failures come back as
// feedback.FieldErrors; a moderation decline as *dispatch.RejectionError.
func (s *FeedbackService) SubmitReview(ctx context.Context, productID string, draft feedback.ReviewDraft) (*domain.FeedbackSubmission, error) {
	profile, ok := s.identity.Current(ctx)
	if ok && strings.TrimSpace(draft.AuthorName) == "" {
		// Profile values are defaults, not overrides: a name the user typed
		// always wins.
		draft.AuthorName = profile.Name
	}

	release, err := s.begin(productID, profile.UserID, domain.KindReview)
	if err != nil {
		return nil, err
	}
	defer release()

	submission, err := feedback.NewForm(productID, s.dispatcher).SubmitReview(ctx, draft)
	if err != nil {
		return nil, err
	}

	return submission, s.record(ctx, submission)
}

// SubmitComplaint pre-fills empty contact fields from the session profile,
// then runs the draft through the form lifecycle.
func (s *FeedbackService) SubmitComplaint(ctx context.Context, productID string, draft feedback.ComplaintDraft) (*domain.FeedbackSubmission, error) {
	profile, ok := s.identity.Current(ctx)
	if ok {
		if strings.TrimSpace(draft.Contact.Name) == "" {
			draft.Contact.Name = profile.Name
		}
		if strings.TrimSpace(draft.Contact.Email) == "" {
			draft.Contact.Email = profile.Email
		}
		if strings.TrimSpace(draft.Contact.Phone) == "" {
			draft.Contact.Phone = profile.Phone
		}
	}

	release, err := s.begin(productID, profile.UserID, domain.KindComplaint)
	if err != nil {
		return nil, err
	}
	defer release()

	submission, err := feedback.NewForm(productID, s.dispatcher).SubmitComplaint(ctx, draft)
	if err != nil {
		return nil, err
	}

	return submission, s.record(ctx, submission)
}

// begin reserves the in-flight slot for a signed-in user's (product, kind)
// pair and returns its release. Anonymous sessions are distinct visitors, so
// they are never deduplicated against each other.
func (s *FeedbackService) begin(productID, userID string, kind domain.SubmissionKind) (func(), error) {
	if userID == "" {
		return func() {}, nil
	}

	key := productID + "|" + userID + "|" + string(kind)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[key]; busy {
		return nil, feedback.ErrSubmissionInFlight
	}
	s.inFlight[key] = struct{}{}

	return func() {
		s.mu.Lock()
		delete(s.inFlight, key)
		s.mu.Unlock()
	}, nil
}

// record persists an accepted submission and publishes its event. The event
// is best-effort: a broker outage must not undo an accepted submission.
func (s *FeedbackService) record(ctx context.Context, submission *domain.FeedbackSubmission) error {
	if err := s.repo.Create(ctx, submission); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist submission",
			slog.String("submission_id", submission.ID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("persist submission: %w", err)
	}

	if s.producer != nil {
		if err := s.producer.SubmissionAccepted(ctx, submission); err != nil {
			s.logger.WarnContext(ctx, "failed to publish submission event",
				slog.String("submission_id", submission.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	return nil
}
