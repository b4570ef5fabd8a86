package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/trustmarket/trustmarket/internal/dispatch"
	"github.com/trustmarket/trustmarket/internal/domain"
	"github.com/trustmarket/trustmarket/internal/feedback"
	"github.com/trustmarket/trustmarket/internal/service"
	apperrors "github.com/trustmarket/trustmarket/pkg/errors"
	"github.com/trustmarket/trustmarket/pkg/httputil"
	"github.com/trustmarket/trustmarket/pkg/validator"
)

// FeedbackHandler exposes the review and complaint submission endpoints.
type FeedbackHandler struct {
	feedback *service.FeedbackService
	logger   *slog.Logger
}

// NewFeedbackHandler creates the feedback HTTP handler.
func NewFeedbackHandler(feedback *service.FeedbackService, logger *slog.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		feedback: feedback,
		logger:   logger,
	}
}

// reviewRequest carries validate tags for the identity-independent bounds;
// author_name stays untagged because the session profile may fill it in.
type reviewRequest struct {
	AuthorName      string         `json:"author_name"`
	OverallRating   int            `json:"overall_rating" validate:"gte=1,lte=5"`
	CriteriaRatings map[string]int `json:"criteria_ratings" validate:"dive,gte=1,lte=5"`
	Body            string         `json:"body" validate:"min=10,max=1000"`
}

// complaintRequest has no validate tags: the complaint rules are cross-field
// (incident date, contact prefill, file constraints) and the form engine
// reports them all in one aggregate.

type complaintRequest struct {
	SelectedIssues []string           `json:"selected_issues"`
	Severity       string             `json:"severity"`
	IncidentDate   string             `json:"incident_date"`
	Description    string             `json:"description"`
	BatchNumber    string             `json:"batch_number"`
	Location       string             `json:"location"`
	Evidence       []domain.FileRef   `json:"evidence"`
	PurchaseProof  *domain.FileRef    `json:"purchase_proof"`
	Contact        domain.ContactInfo `json:"contact"`
}

// SubmitReview handles POST /api/v1/products/{id}/reviews.
func (h *FeedbackHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	var req reviewRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		h.writeRequestError(w, r, err)
		return
	}

	submission, err := h.feedback.SubmitReview(r.Context(), productID, feedback.ReviewDraft{
		AuthorName:      req.AuthorName,
		OverallRating:   req.OverallRating,
		CriteriaRatings: req.CriteriaRatings,
		Body:            req.Body,
	})
	if err != nil {
		h.writeSubmitError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: submission})
}

// SubmitComplaint handles POST /api/v1/products/{id}/complaints.
func (h *FeedbackHandler) SubmitComplaint(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	var req complaintRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		h.writeRequestError(w, r, err)
		return
	}

	submission, err := h.feedback.SubmitComplaint(r.Context(), productID, feedback.ComplaintDraft{
		SelectedIssues: req.SelectedIssues,
		Severity:       req.Severity,
		IncidentDate:   req.IncidentDate,
		Description:    req.Description,
		BatchNumber:    req.BatchNumber,
		Location:       req.Location,
		Evidence:       req.Evidence,
		PurchaseProof:  req.PurchaseProof,
		Contact:        req.Contact,
	})
	if err != nil {
		h.writeSubmitError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: submission})
}

// ListCriteria handles GET /api/v1/categories/{category}/criteria.
func (h *FeedbackHandler) ListCriteria(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	criteria, err := h.feedback.CriteriaFor(category)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: criteria})
}

// ListIssueTypes handles GET /api/v1/feedback/issue-types.
func (h *FeedbackHandler) ListIssueTypes(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: domain.IssueTypes()})
}

// ListSeverities handles GET /api/v1/feedback/severities.
func (h *FeedbackHandler) ListSeverities(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: domain.SeverityLevels()})
}

// writeRequestError distinguishes tag-level shape violations from bodies that
// did not decode at all.
func (h *FeedbackHandler) writeRequestError(w http.ResponseWriter, r *http.Request, err error) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		httputil.WriteValidationError(w, err)
		return
	}
	httputil.WriteError(w, r, apperrors.InvalidInput("request body must be valid JSON"), h.logger)
}

// writeSubmitError maps submission failures to their response shapes: field
// validation → 400 with per-field messages, moderation rejection → 422 with
// the reason verbatim, an in-flight duplicate → 409, transport trouble → 503.
func (h *FeedbackHandler) writeSubmitError(w http.ResponseWriter, r *http.Request, err error) {
	var fieldErrs feedback.FieldErrors
	if errors.As(err, &fieldErrs) {
		httputil.WriteFieldErrors(w, fieldErrs)
		return
	}

	var rejection *dispatch.RejectionError
	if errors.As(err, &rejection) {
		httputil.WriteError(w, r, apperrors.Rejected(rejection.Reason), h.logger)
		return
	}

	if errors.Is(err, feedback.ErrSubmissionInFlight) {
		httputil.WriteError(w, r, &apperrors.AppError{
			Code:    "SUBMISSION_IN_FLIGHT",
			Message: "a submission for this product is already in flight",
			Status:  http.StatusConflict,
			Err:     apperrors.ErrConflict,
		}, h.logger)
		return
	}

	httputil.WriteError(w, r, err, h.logger)
}
