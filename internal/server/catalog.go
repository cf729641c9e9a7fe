package server

import (
	"net/http"
	"strconv"

	"github.com/darideveloper/cotiza/pkg/domain"
	"github.com/darideveloper/cotiza/pkg/pricing"
)

// catalogFeature is one priced, localized feature entry.
type catalogFeature struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Icon       string  `json:"icon"`
	Category   string  `json:"category"`
	Price      float64 `json:"price"`
	PerSection bool    `json:"per_section,omitempty"`
}

type catalogFeatureCategory struct {
	ID       string           `json:"id"`
	Title    string           `json:"title"`
	Features []catalogFeature `json:"features"`
}

type catalogSection struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	Category string `json:"category"`
	Required bool   `json:"required,omitempty"`
}

type catalogSectionCategory struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Sections []catalogSection `json:"sections"`
}

type catalogResponse struct {
	Currency          domain.Currency          `json:"currency"`
	SectionUnitPrice  float64                  `json:"section_unit_price"`
	FeatureCategories []catalogFeatureCategory `json:"feature_categories"`
	SectionCategories []catalogSectionCategory `json:"section_categories"`
}

// handleCatalog renders the feature and section tables with prices in the
// requested currency, so a client can draw the wizard without duplicating
// pricing rules. Query: currency (USD|MXN), sections (count for
// per-section features).
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	b := brandFrom(r.Context())
	locale := localeFor(r, b)

	currency := domain.Currency(r.URL.Query().Get("currency"))
	if !currency.Valid() {
		currency = domain.CurrencyUSD
	}
	sectionCount := 1
	if v := r.URL.Query().Get("sections"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			sectionCount = n
		}
	}

	reg := s.svc.Catalog()
	calc := s.svc.Engine().Calculator()

	resp := catalogResponse{
		Currency:         currency,
		SectionUnitPrice: convertUnit(currency),
	}

	for _, cat := range reg.FeatureCategories() {
		out := catalogFeatureCategory{
			ID:    cat.ID,
			Title: s.bundle.T(locale, cat.Title, nil),
		}
		for _, f := range reg.FeaturesByCategory(cat.ID) {
			out.Features = append(out.Features, catalogFeature{
				ID:         f.ID,
				Name:       f.Name,
				Icon:       f.Icon,
				Category:   f.Category,
				Price:      calc.PriceOf(f.ID, currency, sectionCount),
				PerSection: f.PerSection,
			})
		}
		resp.FeatureCategories = append(resp.FeatureCategories, out)
	}

	for _, cat := range reg.SectionCategories() {
		out := catalogSectionCategory{ID: cat.ID, Name: cat.Name}
		for _, sec := range reg.SectionsByCategory(cat.ID) {
			out.Sections = append(out.Sections, catalogSection{
				ID:       sec.ID,
				Name:     sec.Name,
				Icon:     sec.Icon,
				Category: sec.Category,
				Required: sec.Required,
			})
		}
		resp.SectionCategories = append(resp.SectionCategories, out)
	}

	writeJSON(w, http.StatusOK, resp)
}

func convertUnit(currency domain.Currency) float64 {
	if currency == domain.CurrencyMXN {
		return pricing.SectionUnitPrice * pricing.ExchangeRate
	}
	return pricing.SectionUnitPrice
}
