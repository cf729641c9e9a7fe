package domain

// Feature is a purchasable website capability (blog, e-commerce, ...).
// Prices are defined in USD; conversion happens at calculation time.
type Feature struct {
	ID       string  `yaml:"id" json:"id"`
	Name     string  `yaml:"name" json:"name"`
	Icon     string  `yaml:"icon" json:"icon"`
	Category string  `yaml:"category" json:"category"`
	USDPrice float64 `yaml:"usd_price" json:"usd_price"`

	// PerSection marks features billed once per website section
	// (e.g. multilang translation).
	PerSection bool `yaml:"per_section,omitempty" json:"per_section,omitempty"`
}

// Section is a structural page block (header, testimonials, ...).
// Sections have no individual price; each one contributes a flat
// per-unit charge to the total.
type Section struct {
	ID       string `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	Icon     string `yaml:"icon" json:"icon"`
	Category string `yaml:"category" json:"category"`

	// Required sections are always part of the site and cannot be
	// toggled; they are implicit in totals.
	Required bool `yaml:"required,omitempty" json:"required,omitempty"`
}

// FeatureCategory groups features for one wizard step, in display order.
type FeatureCategory struct {
	ID       string   `yaml:"id" json:"id"`
	Title    string   `yaml:"title" json:"title"`
	Features []string `yaml:"features" json:"features"`
}

// SectionCategory groups sections for display, in order.
type SectionCategory struct {
	ID       string   `yaml:"id" json:"id"`
	Name     string   `yaml:"name" json:"name"`
	Sections []string `yaml:"sections" json:"sections"`
}
