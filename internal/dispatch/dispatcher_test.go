package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustmarket/trustmarket/internal/domain"
	apperrors "github.com/trustmarket/trustmarket/pkg/errors"
)

type doerFunc func(ctx context.Context, req *http.Request) (*http.Response, error)

func (f doerFunc) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	return f(ctx, req)
}

var passthrough = doerFunc(func(_ context.Context, req *http.Request) (*http.Response, error) {
	return http.DefaultClient.Do(req)
})

func testSubmission() *domain.FeedbackSubmission {
	return &domain.FeedbackSubmission{
		ID:        "sub-1",
		Kind:      domain.KindReview,
		ProductID: "organic-almond-milk",
		Body:      "Tastes great and arrived fresh.",
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestDispatchAccepted(t *testing.T) {
	var gotPath, gotContentType string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{"rejected": false})
	}))
	defer srv.Close()

	d := NewHTTPDispatcher(passthrough, srv.URL, testLogger())

	err := d.Dispatch(context.Background(), testSubmission())

	require.NoError(t, err)
	assert.Equal(t, "/api/v1/submissions", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "organic-almond-milk", gotBody["product_id"])
}

func TestDispatchRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"rejected": true,
			"reason":   "profanity detected",
		})
	}))
	defer srv.Close()

	d := NewHTTPDispatcher(passthrough, srv.URL, testLogger())

	err := d.Dispatch(context.Background(), testSubmission())

	var rejection *RejectionError
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, "profanity detected", rejection.Reason, "the moderation reason is carried verbatim")
}

func TestDispatchServerErrorIsTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	d := NewHTTPDispatcher(passthrough, srv.URL, testLogger())

	err := d.Dispatch(context.Background(), testSubmission())

	require.Error(t, err)
	var rejection *RejectionError
	assert.False(t, errors.As(err, &rejection), "a 5xx is not a moderation rejection")
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavail)
}

func TestDispatchConnectionFailure(t *testing.T) {
	failing := doerFunc(func(context.Context, *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})

	d := NewHTTPDispatcher(failing, "http://moderation.invalid", testLogger())

	err := d.Dispatch(context.Background(), testSubmission())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavail)
}
