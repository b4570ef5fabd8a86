package http

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trustmarket/trustmarket/pkg/health"
	"github.com/trustmarket/trustmarket/pkg/middleware"
)

// RouterConfig bundles the dependencies the router wires together.
type RouterConfig struct {
	Catalog  *CatalogHandler
	Feedback *FeedbackHandler
	Health   *health.Handler
	Logger   *slog.Logger

	// TokenValidator enables session identity. Submissions work without a
	// session; a valid token just pre-fills author and contact fields.
	TokenValidator middleware.TokenValidator
}

// NewRouter builds the service's HTTP routing tree with the standard
// middleware stack.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Compress(5))
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.PrometheusMetrics("trustmarket"))

	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.With(middleware.CacheControl(60)).Get("/", cfg.Catalog.ListProducts)

			r.Route("/{id}", func(r chi.Router) {
				if cfg.TokenValidator != nil {
					r.Use(middleware.OptionalAuth(cfg.TokenValidator))
				}
				r.Post("/reviews", cfg.Feedback.SubmitReview)
				r.Post("/complaints", cfg.Feedback.SubmitComplaint)
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.With(middleware.CacheControl(300)).Get("/", cfg.Catalog.ListCategories)
			r.With(middleware.CacheControl(300)).Get("/{category}/criteria", cfg.Feedback.ListCriteria)
		})

		r.Route("/feedback", func(r chi.Router) {
			r.With(middleware.CacheControl(300)).Get("/issue-types", cfg.Feedback.ListIssueTypes)
			r.With(middleware.CacheControl(300)).Get("/severities", cfg.Feedback.ListSeverities)
		})
	})

	return r
}
