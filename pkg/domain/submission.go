package domain

import "time"

// PricedItem is one line of the submission breakdown: a selected feature or
// section with its price in the quote currency.
type PricedItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

// Submission is the immutable snapshot sent to the notification endpoint
// when the wizard submits. It is never persisted locally.
type Submission struct {
	Brand string `json:"brand"`

	ClientInfo ClientInfo `json:"client_info"`

	Currency   Currency `json:"currency"`
	TotalPrice float64  `json:"total_price"`

	SelectedFeatures []PricedItem `json:"selected_features"`
	SelectedSections []PricedItem `json:"selected_sections"`

	SectionCount       int     `json:"section_count"`
	ExtraSections      int     `json:"extra_sections"`
	ExtraSectionsPrice float64 `json:"extra_sections_price"`

	CustomFeatures string `json:"custom_features"`
	Questions      string `json:"questions"`

	Timestamp time.Time `json:"timestamp"`
}

// Receipt is the notifier's answer to a submission.
type Receipt struct {
	// QuoteID is a reference assigned to the accepted submission.
	QuoteID string `json:"quote_id"`
	// Message is an optional server-provided message.
	Message string `json:"message,omitempty"`
}
