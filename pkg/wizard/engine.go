package wizard

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/darideveloper/cotiza/internal/logging"
	"github.com/darideveloper/cotiza/pkg/catalog"
	"github.com/darideveloper/cotiza/pkg/domain"
	"github.com/darideveloper/cotiza/pkg/pricing"
)

// Engine executes wizard operations against a catalog. It is stateless
// between calls: the session state travels in and out of every operation,
// which keeps the engine safe to share across sessions.
type Engine struct {
	catalog *catalog.Registry
	calc    *pricing.Calculator
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger configures the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithClock overrides the timestamp source, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates an engine over the given catalog.
func New(reg *catalog.Registry, opts ...Option) *Engine {
	e := &Engine{
		catalog: reg,
		calc:    pricing.New(reg),
		logger:  logging.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Calculator exposes the bound calculator for read-only pricing queries
// (e.g. rendering the catalog with prices).
func (e *Engine) Calculator() *pricing.Calculator {
	return e.calc
}

// Catalog exposes the bound registry.
func (e *Engine) Catalog() *catalog.Registry {
	return e.catalog
}

// NewSession returns a fresh wizard state for a brand.
func (e *Engine) NewSession(brand string) *domain.FormState {
	return domain.NewFormState(brand)
}

// NextStep advances the wizard one step.
func (e *Engine) NextStep(s *domain.FormState) error {
	return e.GoToStep(s, s.CurrentStep+1)
}

// PrevStep moves the wizard one step back.
func (e *Engine) PrevStep(s *domain.FormState) error {
	return e.GoToStep(s, s.CurrentStep-1)
}

// GoToStep jumps to an arbitrary step within 1..TotalSteps.
func (e *Engine) GoToStep(s *domain.FormState, step int) error {
	if err := e.mutable(s); err != nil {
		return err
	}
	if step < 1 || step > domain.TotalSteps {
		return domain.ErrInvalidStep
	}
	s.CurrentStep = step
	return nil
}

// ToggleFeature flips membership of a feature in the selection set and
// recomputes the total. Unknown ids are rejected.
func (e *Engine) ToggleFeature(s *domain.FormState, featureID string) error {
	if err := e.mutable(s); err != nil {
		return err
	}
	if _, ok := e.catalog.Feature(featureID); !ok {
		e.logger.Debug("toggle of unknown feature ignored", "feature_id", featureID)
		return domain.ErrUnknownFeature
	}
	s.SelectedFeatures = toggle(s.SelectedFeatures, featureID)
	e.recompute(s)
	return nil
}

// ToggleSection flips membership of an optional section and recomputes the
// total. Required sections are implicit and cannot be toggled.
func (e *Engine) ToggleSection(s *domain.FormState, sectionID string) error {
	if err := e.mutable(s); err != nil {
		return err
	}
	sec, ok := e.catalog.Section(sectionID)
	if !ok {
		e.logger.Debug("toggle of unknown section ignored", "section_id", sectionID)
		return domain.ErrUnknownSection
	}
	if sec.Required {
		return domain.ErrRequiredSection
	}
	s.SelectedSections = toggle(s.SelectedSections, sectionID)
	e.recompute(s)
	return nil
}

// SetExtraSections sets the count of unnamed custom sections.
func (e *Engine) SetExtraSections(s *domain.FormState, count int) error {
	if err := e.mutable(s); err != nil {
		return err
	}
	if count < 0 {
		return domain.ErrNegativeCount
	}
	s.ExtraSections = count
	e.recompute(s)
	return nil
}

// SetSectionCount sets the section count used for per-section feature
// pricing.
func (e *Engine) SetSectionCount(s *domain.FormState, count int) error {
	if err := e.mutable(s); err != nil {
		return err
	}
	if count < 0 {
		return domain.ErrNegativeCount
	}
	s.SectionCount = count
	e.recompute(s)
	return nil
}

// SetCurrency switches the quote currency and recomputes the total.
func (e *Engine) SetCurrency(s *domain.FormState, currency domain.Currency) error {
	if err := e.mutable(s); err != nil {
		return err
	}
	if !currency.Valid() {
		return domain.ErrInvalidCurrency
	}
	s.Currency = currency
	e.recompute(s)
	return nil
}

// SetClientField updates one client-info field. Field keys match the JSON
// names: name, email, company, phone. No recompute: contact data does not
// affect price.
func (e *Engine) SetClientField(s *domain.FormState, field, value string) error {
	if err := e.mutable(s); err != nil {
		return err
	}
	switch field {
	case "name":
		s.ClientInfo.Name = value
	case "email":
		s.ClientInfo.Email = value
	case "company":
		s.ClientInfo.Company = value
	case "phone":
		s.ClientInfo.Phone = value
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownField, field)
	}
	return nil
}

// SetCustomFeatures stores the free-text feature wishes.
func (e *Engine) SetCustomFeatures(s *domain.FormState, text string) error {
	if err := e.mutable(s); err != nil {
		return err
	}
	s.CustomFeatures = text
	return nil
}

// SetQuestions stores the free-text questions.
func (e *Engine) SetQuestions(s *domain.FormState, text string) error {
	if err := e.mutable(s); err != nil {
		return err
	}
	s.Questions = text
	return nil
}

// SetPrivacyAccepted records the privacy-policy checkbox.
func (e *Engine) SetPrivacyAccepted(s *domain.FormState, accepted bool) error {
	if err := e.mutable(s); err != nil {
		return err
	}
	s.PrivacyAccepted = accepted
	return nil
}

// Reset restores all defaults: step 1, empty selections, USD, privacy not
// accepted, errors cleared. Allowed from any status, including confirmed.
func (e *Engine) Reset(s *domain.FormState) {
	*s = *domain.NewFormState(s.Brand)
}

// Recompute recalculates the derived total. The mutating operations call
// it themselves; it is exported for callers that patch state out-of-band
// (e.g. after a catalog reload).
func (e *Engine) Recompute(s *domain.FormState) {
	e.recompute(s)
}

func (e *Engine) recompute(s *domain.FormState) {
	s.TotalPrice = e.calc.Total(
		s.SelectedFeatures,
		s.Currency,
		s.SectionCount,
		s.SelectedSections,
		s.ExtraSections,
	)
}

// mutable gates mutations on the wizard status: a confirmed quote is
// read-only until reset, and nothing may change mid-submission.
func (e *Engine) mutable(s *domain.FormState) error {
	switch s.Status {
	case domain.StatusConfirmed:
		return domain.ErrAlreadyConfirmed
	case domain.StatusSubmitting:
		return domain.ErrSubmissionInFlight
	}
	return nil
}

// toggle flips membership: add if absent, remove if present. Order of the
// remaining elements is preserved.
func toggle(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return append(ids, id)
}
