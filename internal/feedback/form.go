package feedback

import (
	"context"
	"errors"
	"sync"

	"github.com/trustmarket/trustmarket/internal/domain"
)

// State is the lifecycle state of a form instance.
type State string

const (
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
	StateSubmitted  State = "submitted"
)

var (
	// ErrSubmissionInFlight is returned when a submit arrives while a prior
	// dispatch for the same form instance has not completed.
	ErrSubmissionInFlight = errors.New("a submission is already in flight")

	// ErrAlreadySubmitted is returned once a form has reached its terminal
	// submitted state.
	ErrAlreadySubmitted = errors.New("form has already been submitted")
)

// Dispatcher hands a validated submission to the external moderation
// pipeline. Implementations return a *dispatch.RejectionError when content is
// declined and a plain error on transport failure.
type Dispatcher interface {
	Dispatch(ctx context.Context, submission *domain.FeedbackSubmission) error
}

// Form is a single feedback form instance. It owns its draft lifecycle:
//
//	Editing → Validating → {Valid → Submitting → Submitted | Invalid → Editing}
//
// Exactly one submission may be in flight at a time; a dispatch failure of
// any kind returns the form to Editing and clears the in-flight flag. Nothing
// is retried automatically — the user must resubmit.
type Form struct {
	mu         sync.Mutex
	state      State
	inFlight   bool
	productID  string
	dispatcher Dispatcher
}

// NewForm creates a form instance for the given product.
func NewForm(productID string, dispatcher Dispatcher) *Form {
	return &Form{
		state:      StateEditing,
		productID:  productID,
		dispatcher: dispatcher,
	}
}

// State returns the current lifecycle state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// SubmitReview validates the review draft and dispatches it once.
func (f *Form) SubmitReview(ctx context.Context, draft ReviewDraft) (*domain.FeedbackSubmission, error) {
	draft.ProductID = f.productID
	return f.submit(ctx, func() (*domain.FeedbackSubmission, FieldErrors) {
		return ValidateReview(draft)
	})
}

// SubmitComplaint validates the complaint draft and dispatches it once.
func (f *Form) SubmitComplaint(ctx context.Context, draft ComplaintDraft) (*domain.FeedbackSubmission, error) {
	draft.ProductID = f.productID
	return f.submit(ctx, func() (*domain.FeedbackSubmission, FieldErrors) {
		return ValidateComplaint(draft)
	})
}

func (f *Form) submit(ctx context.Context, validate func() (*domain.FeedbackSubmission, FieldErrors)) (*domain.FeedbackSubmission, error) {
	f.mu.Lock()
	if f.state == StateSubmitted {
		f.mu.Unlock()
		return nil, ErrAlreadySubmitted
	}
	if f.inFlight {
		f.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}

	submission, fieldErrs := validate()
	if len(fieldErrs) > 0 {
		f.state = StateEditing
		f.mu.Unlock()
		return nil, fieldErrs
	}

	f.inFlight = true
	f.state = StateSubmitting
	f.mu.Unlock()

	err := f.dispatcher.Dispatch(ctx, submission)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight = false

	if err != nil {
		// Both moderation rejections and transport failures return the form
		// to an editable state; the caller surfaces them differently.
		f.state = StateEditing
		return nil, err
	}

	f.state = StateSubmitted
	return submission, nil
}
