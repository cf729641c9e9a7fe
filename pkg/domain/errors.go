package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrUnknownFeature is returned when toggling a feature id absent from the catalog.
var ErrUnknownFeature = errors.New("unknown feature")

// ErrUnknownSection is returned when toggling a section id absent from the catalog.
var ErrUnknownSection = errors.New("unknown section")

// ErrRequiredSection is returned when toggling a required section, which is
// always included and cannot be deselected.
var ErrRequiredSection = errors.New("section is required")

// ErrInvalidStep is returned when navigating outside 1..TotalSteps.
var ErrInvalidStep = errors.New("step out of range")

// ErrInvalidCurrency is returned for currencies other than USD and MXN.
var ErrInvalidCurrency = errors.New("unsupported currency")

// ErrNegativeCount is returned when a section count mutation goes below zero.
var ErrNegativeCount = errors.New("count must not be negative")

// ErrUnknownField is returned when a client-info mutation names a field
// outside name/email/company/phone.
var ErrUnknownField = errors.New("unknown client field")

// ErrSubmissionInFlight is returned when submit is called while a previous
// submission is still awaiting its response.
var ErrSubmissionInFlight = errors.New("submission already in flight")

// ErrAlreadyConfirmed is returned when mutating or resubmitting a wizard
// that reached the confirmed state; only Reset is allowed from there.
var ErrAlreadyConfirmed = errors.New("quote already confirmed")

// ErrValidationFailed is returned by submit when the final-step validation
// gate rejects the state. Field details live in FormState.ValidationErrors.
var ErrValidationFailed = errors.New("validation failed")
