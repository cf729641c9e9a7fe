package wizard

import (
	"context"
	"errors"

	"github.com/darideveloper/cotiza/pkg/domain"
	"github.com/darideveloper/cotiza/pkg/ports"
)

// Submit runs the final-step gate and, if it passes, delivers the quote
// through the notifier. One delivery attempt, synchronous: the wizard sits
// in the submitting status for the duration of the call.
//
// Outcomes:
//   - validation failure: ErrValidationFailed, field errors populated,
//     wizard stays on the current step, notifier never called.
//   - notifier failure: the error is returned, status drops back to active
//     on the final step and LastError carries the message for display; the
//     user may submit again.
//   - success: status becomes confirmed and the receipt is returned.
func (e *Engine) Submit(ctx context.Context, s *domain.FormState, notifier ports.Notifier) (*domain.Receipt, error) {
	switch s.Status {
	case domain.StatusSubmitting:
		return nil, domain.ErrSubmissionInFlight
	case domain.StatusConfirmed:
		return nil, domain.ErrAlreadyConfirmed
	}
	if s.CurrentStep != domain.TotalSteps {
		return nil, domain.ErrInvalidStep
	}

	if !e.Validate(s) {
		return nil, domain.ErrValidationFailed
	}

	// Price one last time so the payload can never carry a stale total.
	e.recompute(s)

	s.Status = domain.StatusSubmitting
	s.LastError = ""

	receipt, err := notifier.Send(ctx, e.BuildSubmission(s))
	if err != nil {
		s.Status = domain.StatusActive
		s.LastError = submitErrorMessage(err)
		e.logger.Warn("quote submission failed", "err", err, "brand", s.Brand)
		return nil, err
	}

	s.Status = domain.StatusConfirmed
	e.logger.Info("quote submitted",
		"brand", s.Brand,
		"currency", s.Currency,
		"total", s.TotalPrice,
		"features", len(s.SelectedFeatures),
	)
	return receipt, nil
}

// BuildSubmission snapshots the current state into the notification payload.
func (e *Engine) BuildSubmission(s *domain.FormState) *domain.Submission {
	features, sections := e.calc.Breakdown(s)
	return &domain.Submission{
		Brand:              s.Brand,
		ClientInfo:         s.ClientInfo,
		Currency:           s.Currency,
		TotalPrice:         s.TotalPrice,
		SelectedFeatures:   features,
		SelectedSections:   sections,
		SectionCount:       s.SectionCount,
		ExtraSections:      s.ExtraSections,
		ExtraSectionsPrice: e.calc.ExtraSectionsPrice(s.ExtraSections, s.Currency),
		CustomFeatures:     s.CustomFeatures,
		Questions:          s.Questions,
		Timestamp:          e.now().UTC(),
	}
}

// submitErrorMessage prefers the server-provided message when the endpoint
// answered with a structured error body, falling back to the localized
// error code.
func submitErrorMessage(err error) string {
	var notifyErr *ports.NotifyError
	if errors.As(err, &notifyErr) && notifyErr.Message != "" {
		return notifyErr.Message
	}
	return MsgSubmitError
}
