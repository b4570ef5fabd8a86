package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/trustmarket/trustmarket/internal/catalog"
	"github.com/trustmarket/trustmarket/internal/domain"
	"github.com/trustmarket/trustmarket/internal/feedback"
	"github.com/trustmarket/trustmarket/internal/identity"
	"github.com/trustmarket/trustmarket/internal/repository/memory"
	"github.com/trustmarket/trustmarket/internal/service"
	"github.com/trustmarket/trustmarket/pkg/health"
)

// scriptedDispatcher lets handler tests choose the moderation outcome.
type scriptedDispatcher struct {
	mu  sync.Mutex
	err error
}

func (d *scriptedDispatcher) Dispatch(context.Context, *domain.FeedbackSubmission) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

func (d *scriptedDispatcher) fail(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.err = err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// newTestRouter wires the full routing tree over the seeded in-memory
// catalog, the given dispatcher, and a fixed session profile.
func newTestRouter(dispatcher feedback.Dispatcher) *chi.Mux {
	log := testLogger()

	catalogSvc := service.NewCatalogService(
		memory.NewCatalogRepository(catalog.Seed()), nil, log)

	feedbackSvc := service.NewFeedbackService(
		dispatcher,
		memory.NewSubmissionRepository(),
		nil,
		identity.Static{Profile: identity.Profile{
			UserID: "u-1",
			Name:   "Asha Verma",
			Email:  "asha@example.com",
			Phone:  "9876543210",
		}},
		log,
	)

	return NewRouter(RouterConfig{
		Catalog:  NewCatalogHandler(catalogSvc, log),
		Feedback: NewFeedbackHandler(feedbackSvc, log),
		Health:   health.NewHandler(),
		Logger:   log,
	})
}

func doRequest(router *chi.Mux, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(&scriptedDispatcher{})

	rec := doRequest(router, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(router, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
