package domain

// Currency is the quote display currency.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyMXN Currency = "MXN"
)

// Valid reports whether c is a supported currency.
func (c Currency) Valid() bool {
	return c == CurrencyUSD || c == CurrencyMXN
}

// WizardStatus describes where the wizard is in its lifecycle.
type WizardStatus string

const (
	// StatusActive means the user is filling in steps.
	StatusActive WizardStatus = "active"
	// StatusSubmitting means a notification POST is in flight.
	StatusSubmitting WizardStatus = "submitting"
	// StatusConfirmed is the terminal state after a successful submission.
	StatusConfirmed WizardStatus = "confirmed"
)

// TotalSteps is the number of wizard steps: four selection steps plus the
// client-info step.
const TotalSteps = 5

// ClientInfo holds the contact data collected on the final step.
// Name and Email are required at submission time.
type ClientInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// ValidationErrors maps a field key (e.g. "email", "privacyPolicy") to a
// localized message code. Cleared on every validation attempt.
type ValidationErrors map[string]string

// FormState is the per-session snapshot of the quote wizard.
// It is mutated exclusively through the wizard engine operations and
// persisted between requests by a ports.StateStore.
type FormState struct {
	CurrentStep int `json:"current_step"`

	// Selection sets. Required sections are implicit and never appear
	// in SelectedSections.
	SelectedFeatures []string `json:"selected_features"`
	SelectedSections []string `json:"selected_sections"`

	// ExtraSections counts unnamed custom sections on top of the
	// selected ones. Never negative.
	ExtraSections int `json:"extra_sections"`

	// SectionCount feeds per-section feature pricing (e.g. multilang).
	SectionCount int `json:"section_count"`

	Currency   Currency   `json:"currency"`
	ClientInfo ClientInfo `json:"client_info"`

	CustomFeatures string `json:"custom_features"`
	Questions      string `json:"questions"`

	// TotalPrice is derived; the engine recomputes it inside every
	// price-affecting mutation.
	TotalPrice float64 `json:"total_price"`

	PrivacyAccepted  bool             `json:"privacy_accepted"`
	ValidationErrors ValidationErrors `json:"validation_errors,omitempty"`

	Status WizardStatus `json:"status"`

	// LastError holds the localized message of the most recent failed
	// submission, empty otherwise.
	LastError string `json:"last_error,omitempty"`

	// Brand the session was opened under.
	Brand string `json:"brand,omitempty"`
}

// NewFormState returns a wizard state with all defaults: step 1, empty
// selections, USD, privacy not accepted.
func NewFormState(brand string) *FormState {
	return &FormState{
		CurrentStep:      1,
		SelectedFeatures: []string{},
		SelectedSections: []string{},
		SectionCount:     1,
		Currency:         CurrencyUSD,
		Status:           StatusActive,
		Brand:            brand,
	}
}

// HasFeature reports membership in the selected feature set.
func (s *FormState) HasFeature(id string) bool {
	return contains(s.SelectedFeatures, id)
}

// HasSection reports membership in the selected section set.
func (s *FormState) HasSection(id string) bool {
	return contains(s.SelectedSections, id)
}

// Clone returns a deep copy so stores and callers cannot alias each
// other's slices or maps.
func (s *FormState) Clone() *FormState {
	c := *s
	c.SelectedFeatures = append([]string(nil), s.SelectedFeatures...)
	c.SelectedSections = append([]string(nil), s.SelectedSections...)
	if s.ValidationErrors != nil {
		c.ValidationErrors = make(ValidationErrors, len(s.ValidationErrors))
		for k, v := range s.ValidationErrors {
			c.ValidationErrors[k] = v
		}
	}
	return &c
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
