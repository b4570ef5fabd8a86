package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/trustmarket/trustmarket/internal/domain"
	apperrors "github.com/trustmarket/trustmarket/pkg/errors"
)

// RejectionError reports that the moderation pipeline declined the content.
// It is distinct from a transport failure: the reason is user-actionable and
// must be surfaced verbatim so the user can revise and resubmit.
type RejectionError struct {
	Reason string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("submission rejected: %s", e.Reason)
}

// Doer executes an HTTP request. Satisfied by httpclient.CircuitBreakerClient.
type Doer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// HTTPDispatcher sends validated submissions to the moderation service.
type HTTPDispatcher struct {
	client  Doer
	baseURL string
	logger  *slog.Logger
}

// NewHTTPDispatcher creates a dispatcher targeting the given moderation
// service base URL.
func NewHTTPDispatcher(client Doer, baseURL string, logger *slog.Logger) *HTTPDispatcher {
	return &HTTPDispatcher{
		client:  client,
		baseURL: baseURL,
		logger:  logger,
	}
}

// moderationResponse is the moderation service's response shape.
type moderationResponse struct {
	Rejected bool   `json:"rejected"`
	Reason   string `json:"reason"`
}

// Dispatch posts the submission exactly once. A moderation decline becomes a
// *RejectionError; anything else that goes wrong is a transport failure. The
// dispatcher never retries — resubmission is an explicit user action.
func (d *HTTPDispatcher) Dispatch(ctx context.Context, submission *domain.FeedbackSubmission) error {
	payload, err := json.Marshal(submission)
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/submissions", d.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create dispatch request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("dispatch submission: %v: %w", err, apperrors.ErrServiceUnavail)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read dispatch response: %w", err)
	}

	var mod moderationResponse
	if len(body) > 0 {
		// A body that fails to decode is treated as a transport-level
		// problem below, not as a rejection.
		_ = json.Unmarshal(body, &mod)
	}

	if mod.Rejected {
		d.logger.InfoContext(ctx, "submission rejected by moderation",
			slog.String("submission_id", submission.ID),
			slog.String("product_id", submission.ProductID),
			slog.String("reason", mod.Reason),
		)
		return &RejectionError{Reason: mod.Reason}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("dispatch submission: moderation service returned status %d: %w", resp.StatusCode, apperrors.ErrServiceUnavail)
	}

	d.logger.DebugContext(ctx, "submission dispatched",
		slog.String("submission_id", submission.ID),
		slog.String("kind", string(submission.Kind)),
	)

	return nil
}
