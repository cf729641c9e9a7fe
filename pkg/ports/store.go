package ports

import (
	"context"

	"github.com/darideveloper/cotiza/pkg/domain"
)

// StateStore persists wizard sessions between requests, allowing a quote to
// survive page reloads and server restarts.
type StateStore interface {
	// Save persists the state for a given session ID.
	Save(ctx context.Context, sessionID string, state *domain.FormState) error

	// Load retrieves the state for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.FormState, error)

	// Delete removes the state for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the ids of active sessions.
	List(ctx context.Context) ([]string, error)
}
