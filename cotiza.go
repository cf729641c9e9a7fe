// Package cotiza is the high-level entry point for the quote wizard
// library. It assembles the catalog, the pricing calculator, the wizard
// engine and the driven adapters into one Service that the HTTP layer and
// the CLI consume.
package cotiza

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/darideveloper/cotiza/internal/adapters/memory"
	"github.com/darideveloper/cotiza/internal/logging"
	"github.com/darideveloper/cotiza/pkg/catalog"
	"github.com/darideveloper/cotiza/pkg/domain"
	"github.com/darideveloper/cotiza/pkg/ports"
	"github.com/darideveloper/cotiza/pkg/wizard"
)

// Version of the cotiza module.
const Version = "0.3.0"

// Service wraps the wizard engine with session persistence and the
// notification channel.
type Service struct {
	engine   *wizard.Engine
	store    ports.StateStore
	notifier ports.Notifier
	catalog  *catalog.Registry
	logger   *slog.Logger
}

// Option defines a functional option for configuring the Service.
type Option func(*Service)

// WithStore injects a session store. Defaults to the in-memory store.
func WithStore(store ports.StateStore) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithNotifier injects the submission channel. Required for Submit to work;
// without one, submissions fail cleanly.
func WithNotifier(n ports.Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

// WithCatalog replaces the built-in catalog tables.
func WithCatalog(reg *catalog.Registry) Option {
	return func(s *Service) {
		s.catalog = reg
	}
}

// WithLogger sets a structured logger for the service and engine.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New assembles a Service.
func New(opts ...Option) *Service {
	s := &Service{
		catalog: catalog.Default(),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = memory.NewStore()
	}
	s.engine = wizard.New(s.catalog, wizard.WithLogger(s.logger))
	return s
}

// Engine exposes the wizard engine for direct (non-persisted) use.
func (s *Service) Engine() *wizard.Engine {
	return s.engine
}

// Catalog exposes the registry in use.
func (s *Service) Catalog() *catalog.Registry {
	return s.catalog
}

// Store exposes the session store.
func (s *Service) Store() ports.StateStore {
	return s.store
}

// CreateSession opens a new wizard session for a brand and persists it.
func (s *Service) CreateSession(ctx context.Context, sessionID, brandID string) (*domain.FormState, error) {
	state := s.engine.NewSession(brandID)
	if err := s.store.Save(ctx, sessionID, state); err != nil {
		return nil, fmt.Errorf("save new session: %w", err)
	}
	return state, nil
}

// GetSession loads a session.
func (s *Service) GetSession(ctx context.Context, sessionID string) (*domain.FormState, error) {
	return s.store.Load(ctx, sessionID)
}

// Mutate loads a session, applies fn through the engine, and saves the
// result. The operation error (e.g. an unknown feature id) is returned
// alongside the state so callers can surface it without losing the current
// snapshot.
func (s *Service) Mutate(ctx context.Context, sessionID string, fn func(*wizard.Engine, *domain.FormState) error) (*domain.FormState, error) {
	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(s.engine, state); err != nil {
		return state, err
	}
	if err := s.store.Save(ctx, sessionID, state); err != nil {
		return state, fmt.Errorf("save session: %w", err)
	}
	return state, nil
}

// Submit runs the validation gate and delivers the quote. The resulting
// state is persisted in every outcome so validation errors and failure
// messages survive a page reload.
func (s *Service) Submit(ctx context.Context, sessionID string) (*domain.FormState, *domain.Receipt, error) {
	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if s.notifier == nil {
		return state, nil, fmt.Errorf("no notifier configured")
	}

	receipt, submitErr := s.engine.Submit(ctx, state, s.notifier)

	if err := s.store.Save(ctx, sessionID, state); err != nil {
		s.logger.Error("failed to persist post-submit state", "err", err, "session_id", sessionID)
	}
	return state, receipt, submitErr
}

// Reset returns a session to its defaults.
func (s *Service) Reset(ctx context.Context, sessionID string) (*domain.FormState, error) {
	return s.Mutate(ctx, sessionID, func(e *wizard.Engine, st *domain.FormState) error {
		e.Reset(st)
		return nil
	})
}

// Discard removes a session entirely.
func (s *Service) Discard(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}
