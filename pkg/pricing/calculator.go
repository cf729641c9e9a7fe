// Package pricing computes quote totals from the catalog. All functions are
// pure: the same selections always produce the same price.
//
// Rounding policy: MXN feature prices are rounded per line, the section
// subtotal is converted and rounded once as an aggregate. USD amounts are
// never rounded.
package pricing

import (
	"math"

	"github.com/darideveloper/cotiza/pkg/catalog"
	"github.com/darideveloper/cotiza/pkg/domain"
)

// ExchangeRate converts USD to MXN.
const ExchangeRate = 16.0

// SectionUnitPrice is the flat USD charge per website section, whether it
// comes from the catalog or is an extra custom section.
const SectionUnitPrice = 20.0

// Calculator prices selections against a catalog registry.
type Calculator struct {
	catalog *catalog.Registry
}

// New returns a calculator bound to the given registry.
func New(reg *catalog.Registry) *Calculator {
	return &Calculator{catalog: reg}
}

// PriceOf returns the price of a single feature in the given currency.
// Per-section features multiply by sectionCount. Unknown ids price at zero;
// the caller decides whether that deserves a log line.
func (c *Calculator) PriceOf(featureID string, currency domain.Currency, sectionCount int) float64 {
	f, ok := c.catalog.Feature(featureID)
	if !ok {
		return 0
	}
	if sectionCount < 0 {
		sectionCount = 0
	}

	price := f.USDPrice
	if f.PerSection {
		price *= float64(sectionCount)
	}
	return convert(price, currency)
}

// SectionSubtotal returns the flat charge for the selected plus extra
// sections, converted as one aggregate. Required sections carry no charge
// and are not part of selectedSections.
func (c *Calculator) SectionSubtotal(selectedSections []string, extraSections int, currency domain.Currency) float64 {
	if extraSections < 0 {
		extraSections = 0
	}
	count := len(selectedSections) + extraSections
	return convert(SectionUnitPrice*float64(count), currency)
}

// Total sums the per-feature prices and the section subtotal. Always >= 0.
func (c *Calculator) Total(
	selectedFeatures []string,
	currency domain.Currency,
	sectionCount int,
	selectedSections []string,
	extraSections int,
) float64 {
	total := 0.0
	for _, id := range selectedFeatures {
		total += c.PriceOf(id, currency, sectionCount)
	}
	total += c.SectionSubtotal(selectedSections, extraSections, currency)
	return total
}

// Breakdown lists each selected feature and section as a priced line for
// the submission payload, skipping ids missing from the catalog.
func (c *Calculator) Breakdown(state *domain.FormState) (features, sections []domain.PricedItem) {
	for _, id := range state.SelectedFeatures {
		f, ok := c.catalog.Feature(id)
		if !ok {
			continue
		}
		features = append(features, domain.PricedItem{
			ID:       f.ID,
			Name:     f.Name,
			Price:    c.PriceOf(f.ID, state.Currency, state.SectionCount),
			Category: f.Category,
		})
	}
	perSection := convert(SectionUnitPrice, state.Currency)
	for _, id := range state.SelectedSections {
		s, ok := c.catalog.Section(id)
		if !ok {
			continue
		}
		sections = append(sections, domain.PricedItem{
			ID:       s.ID,
			Name:     s.Name,
			Price:    perSection,
			Category: s.Category,
		})
	}
	return features, sections
}

// ExtraSectionsPrice returns the portion of the section subtotal owed to
// unnamed extra sections.
func (c *Calculator) ExtraSectionsPrice(extraSections int, currency domain.Currency) float64 {
	if extraSections < 0 {
		extraSections = 0
	}
	return convert(SectionUnitPrice*float64(extraSections), currency)
}

func convert(usd float64, currency domain.Currency) float64 {
	if currency == domain.CurrencyMXN {
		return math.Round(usd * ExchangeRate)
	}
	return usd
}
