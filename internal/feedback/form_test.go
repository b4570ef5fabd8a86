package feedback

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustmarket/trustmarket/internal/dispatch"
	"github.com/trustmarket/trustmarket/internal/domain"
)

// stubDispatcher scripts dispatch outcomes and records what it was handed.
type stubDispatcher struct {
	mu       sync.Mutex
	err      error
	release  chan struct{}
	received []*domain.FeedbackSubmission
}

func (d *stubDispatcher) Dispatch(ctx context.Context, s *domain.FeedbackSubmission) error {
	if d.release != nil {
		select {
		case <-d.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	d.mu.Lock()
	d.received = append(d.received, s)
	d.mu.Unlock()
	return d.err
}

func (d *stubDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.received)
}

func TestFormSubmitReviewSuccess(t *testing.T) {
	dispatcher := &stubDispatcher{}
	form := NewForm("organic-almond-milk", dispatcher)

	require.Equal(t, StateEditing, form.State())

	draft := validReviewDraft()
	draft.ProductID = "" // the form owns the product binding
	submission, err := form.SubmitReview(context.Background(), draft)

	require.NoError(t, err)
	assert.Equal(t, "organic-almond-milk", submission.ProductID)
	assert.Equal(t, StateSubmitted, form.State())
	assert.Equal(t, 1, dispatcher.count())
}

func TestFormInvalidDraftStaysEditing(t *testing.T) {
	dispatcher := &stubDispatcher{}
	form := NewForm("p1", dispatcher)

	_, err := form.SubmitReview(context.Background(), ReviewDraft{Body: "short"})

	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, StateEditing, form.State())
	assert.Zero(t, dispatcher.count(), "invalid drafts must never reach the dispatcher")
}

func TestFormModerationRejectionReturnsToEditing(t *testing.T) {
	dispatcher := &stubDispatcher{err: &dispatch.RejectionError{Reason: "profanity detected"}}
	form := NewForm("p1", dispatcher)

	_, err := form.SubmitReview(context.Background(), validReviewDraft())

	var rejection *dispatch.RejectionError
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, "profanity detected", rejection.Reason)
	assert.Equal(t, StateEditing, form.State(), "a rejected form is editable again")

	// The in-flight flag was cleared: resubmitting works.
	dispatcher.err = nil
	_, err = form.SubmitReview(context.Background(), validReviewDraft())
	require.NoError(t, err)
	assert.Equal(t, StateSubmitted, form.State())
}

func TestFormTransportFailureReturnsToEditing(t *testing.T) {
	dispatcher := &stubDispatcher{err: errors.New("connection refused")}
	form := NewForm("p1", dispatcher)

	_, err := form.SubmitReview(context.Background(), validReviewDraft())

	require.Error(t, err)
	assert.Equal(t, StateEditing, form.State())

	// No automatic retry happened: exactly one dispatch attempt.
	assert.Equal(t, 1, dispatcher.count())
}

func TestFormRefusesConcurrentSubmit(t *testing.T) {
	dispatcher := &stubDispatcher{release: make(chan struct{})}
	form := NewForm("p1", dispatcher)

	done := make(chan error, 1)
	go func() {
		_, err := form.SubmitReview(context.Background(), validReviewDraft())
		done <- err
	}()

	// Wait for the first submit to enter its dispatch.
	require.Eventually(t, func() bool {
		return form.State() == StateSubmitting
	}, time.Second, 5*time.Millisecond)

	_, err := form.SubmitReview(context.Background(), validReviewDraft())
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	close(dispatcher.release)
	require.NoError(t, <-done)
	assert.Equal(t, StateSubmitted, form.State())
}

func TestFormSubmittedIsTerminal(t *testing.T) {
	dispatcher := &stubDispatcher{}
	form := NewForm("p1", dispatcher)

	_, err := form.SubmitReview(context.Background(), validReviewDraft())
	require.NoError(t, err)

	_, err = form.SubmitReview(context.Background(), validReviewDraft())
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
	assert.Equal(t, 1, dispatcher.count())
}

func TestFormSubmitComplaint(t *testing.T) {
	dispatcher := &stubDispatcher{}
	form := NewForm("organic-almond-milk", dispatcher)

	submission, err := form.SubmitComplaint(context.Background(), validComplaintDraft())

	require.NoError(t, err)
	assert.Equal(t, domain.KindComplaint, submission.Kind)
	assert.Equal(t, "organic-almond-milk", submission.ProductID)
	assert.Equal(t, StateSubmitted, form.State())
}
