package wizard

import (
	"regexp"

	"github.com/darideveloper/cotiza/pkg/domain"
)

// Validation field keys, matching the front-end error map.
const (
	FieldName          = "name"
	FieldEmail         = "email"
	FieldPrivacyPolicy = "privacyPolicy"
)

// Message codes resolved by the content layer. The engine never carries
// display strings.
const (
	MsgNameRequired    = "quote.validation.name_required"
	MsgEmailRequired   = "quote.validation.email_required"
	MsgEmailInvalid    = "quote.validation.email_invalid"
	MsgPrivacyRequired = "quote.validation.privacy_required"
	MsgSubmitSuccess   = "quote.form.success"
	MsgSubmitError     = "quote.form.error"
)

// emailPattern accepts local@domain.tld with no embedded whitespace, the
// same gate the production endpoint applies.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate checks the final-step submission gate: name and email present,
// email well-formed, privacy policy accepted. Prior errors are cleared
// first; on failure the field-scoped message codes are written to
// s.ValidationErrors and the step is left untouched. Steps 1..4 have no
// validation gate.
func (e *Engine) Validate(s *domain.FormState) bool {
	errs := make(domain.ValidationErrors)

	if s.ClientInfo.Name == "" {
		errs[FieldName] = MsgNameRequired
	}
	switch {
	case s.ClientInfo.Email == "":
		errs[FieldEmail] = MsgEmailRequired
	case !emailPattern.MatchString(s.ClientInfo.Email):
		errs[FieldEmail] = MsgEmailInvalid
	}
	if !s.PrivacyAccepted {
		errs[FieldPrivacyPolicy] = MsgPrivacyRequired
	}

	if len(errs) > 0 {
		s.ValidationErrors = errs
		return false
	}
	s.ValidationErrors = nil
	return true
}

// ClearValidationErrors drops any field errors without running validation.
func (e *Engine) ClearValidationErrors(s *domain.FormState) {
	s.ValidationErrors = nil
}
