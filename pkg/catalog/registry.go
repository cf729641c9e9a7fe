// Package catalog holds the static feature and section tables the quote
// wizard sells from. The registry is read-only after construction; changing
// the tables is a deployment-time concern.
package catalog

import (
	"fmt"

	"github.com/darideveloper/cotiza/pkg/domain"
)

// Registry indexes features and sections by id and keeps category display
// order. Lookups never fail: absent ids return ok=false and are priced at
// zero by the calculator.
type Registry struct {
	features map[string]domain.Feature
	sections map[string]domain.Section

	featureCategories []domain.FeatureCategory
	sectionCategories []domain.SectionCategory
}

// New builds a registry from explicit tables. It validates referential
// integrity so a broken catalog fails at startup, not at pricing time.
func New(
	features []domain.Feature,
	sections []domain.Section,
	featureCats []domain.FeatureCategory,
	sectionCats []domain.SectionCategory,
) (*Registry, error) {
	r := &Registry{
		features:          make(map[string]domain.Feature, len(features)),
		sections:          make(map[string]domain.Section, len(sections)),
		featureCategories: featureCats,
		sectionCategories: sectionCats,
	}

	for _, f := range features {
		if f.ID == "" {
			return nil, fmt.Errorf("feature with empty id")
		}
		if _, dup := r.features[f.ID]; dup {
			return nil, fmt.Errorf("duplicate feature id %q", f.ID)
		}
		if f.USDPrice < 0 {
			return nil, fmt.Errorf("feature %q has negative price", f.ID)
		}
		r.features[f.ID] = f
	}
	for _, s := range sections {
		if s.ID == "" {
			return nil, fmt.Errorf("section with empty id")
		}
		if _, dup := r.sections[s.ID]; dup {
			return nil, fmt.Errorf("duplicate section id %q", s.ID)
		}
		r.sections[s.ID] = s
	}

	for _, cat := range featureCats {
		for _, id := range cat.Features {
			if _, ok := r.features[id]; !ok {
				return nil, fmt.Errorf("category %q references unknown feature %q", cat.ID, id)
			}
		}
	}
	for _, cat := range sectionCats {
		for _, id := range cat.Sections {
			if _, ok := r.sections[id]; !ok {
				return nil, fmt.Errorf("category %q references unknown section %q", cat.ID, id)
			}
		}
	}

	return r, nil
}

// Feature looks up a feature by id.
func (r *Registry) Feature(id string) (domain.Feature, bool) {
	f, ok := r.features[id]
	return f, ok
}

// Section looks up a section by id.
func (r *Registry) Section(id string) (domain.Section, bool) {
	s, ok := r.sections[id]
	return s, ok
}

// FeaturesByCategory returns the ordered features of one category, or nil
// for an unknown category key.
func (r *Registry) FeaturesByCategory(categoryID string) []domain.Feature {
	for _, cat := range r.featureCategories {
		if cat.ID != categoryID {
			continue
		}
		out := make([]domain.Feature, 0, len(cat.Features))
		for _, id := range cat.Features {
			out = append(out, r.features[id])
		}
		return out
	}
	return nil
}

// SectionsByCategory returns the ordered sections of one category, or nil
// for an unknown category key.
func (r *Registry) SectionsByCategory(categoryID string) []domain.Section {
	for _, cat := range r.sectionCategories {
		if cat.ID != categoryID {
			continue
		}
		out := make([]domain.Section, 0, len(cat.Sections))
		for _, id := range cat.Sections {
			out = append(out, r.sections[id])
		}
		return out
	}
	return nil
}

// FeatureCategories returns the category list in wizard step order.
func (r *Registry) FeatureCategories() []domain.FeatureCategory {
	return r.featureCategories
}

// SectionCategories returns the section category list in display order.
func (r *Registry) SectionCategories() []domain.SectionCategory {
	return r.sectionCategories
}

// RequiredSections returns sections that are always part of the site, in
// category order.
func (r *Registry) RequiredSections() []domain.Section {
	var out []domain.Section
	for _, cat := range r.sectionCategories {
		for _, id := range cat.Sections {
			if s := r.sections[id]; s.Required {
				out = append(out, s)
			}
		}
	}
	return out
}

// OptionalSections returns the toggleable sections, in category order.
func (r *Registry) OptionalSections() []domain.Section {
	var out []domain.Section
	for _, cat := range r.sectionCategories {
		for _, id := range cat.Sections {
			if s := r.sections[id]; !s.Required {
				out = append(out, s)
			}
		}
	}
	return out
}
