// Package server exposes the quote wizard over a JSON HTTP API. Each quote
// lives in one session: handlers load the state, apply a single engine
// operation, and save it back. A per-session lock keeps that cycle atomic.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/darideveloper/cotiza"
	"github.com/darideveloper/cotiza/internal/brand"
	"github.com/darideveloper/cotiza/internal/i18n"
	"github.com/darideveloper/cotiza/internal/logging"
	"github.com/darideveloper/cotiza/internal/metrics"
)

// Server wires the service into HTTP handlers.
type Server struct {
	svc     *cotiza.Service
	brands  *brand.Registry
	bundle  *i18n.Bundle
	metrics *metrics.Metrics
	logger  *slog.Logger
	locks   *sessionLocks
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request/handler logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics attaches pre-registered collectors. Without it, collectors
// register on the default Prometheus registry.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// New creates a Server.
func New(svc *cotiza.Service, brands *brand.Registry, bundle *i18n.Bundle, opts ...Option) *Server {
	s := &Server{
		svc:    svc,
		brands: brands,
		bundle: bundle,
		logger: logging.NewNop(),
		locks:  newSessionLocks(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = metrics.New(prometheus.DefaultRegisterer)
	}
	return s
}

// Handler builds the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))
	r.Use(withBrand(s.brands))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)

		r.Route("/quotes", func(r chi.Router) {
			r.Post("/", s.handleCreate)
			r.Route("/{quoteID}", func(r chi.Router) {
				r.Get("/", s.handleGet)
				r.Delete("/", s.handleDiscard)
				r.Post("/commands", s.handleCommand)
				r.Post("/submit", s.handleSubmit)
				r.Post("/reset", s.handleReset)
			})
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}
