package ports

import (
	"context"

	"github.com/darideveloper/cotiza/pkg/domain"
)

// Notifier delivers a quote submission to the external notification
// endpoint. Implementations perform exactly one delivery attempt; retrying
// is a user decision, not an adapter concern.
type Notifier interface {
	Send(ctx context.Context, sub *domain.Submission) (*domain.Receipt, error)
}

// NotifyError is returned by a Notifier when the endpoint answers with a
// non-2xx status. Message carries the server-provided text when the error
// body contained one.
type NotifyError struct {
	StatusCode int
	Message    string
}

func (e *NotifyError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "notification endpoint rejected submission"
}
