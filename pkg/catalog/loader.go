package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/darideveloper/cotiza/pkg/domain"
)

// File is the YAML shape of a catalog override.
type File struct {
	Features          []domain.Feature         `yaml:"features"`
	Sections          []domain.Section         `yaml:"sections"`
	FeatureCategories []domain.FeatureCategory `yaml:"feature_categories"`
	SectionCategories []domain.SectionCategory `yaml:"section_categories"`
}

// Load reads a catalog override file and builds a registry from it.
// The same integrity checks as New apply, so `cotiza validate` can lint a
// file before deployment.
func Load(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	r, err := New(f.Features, f.Sections, f.FeatureCategories, f.SectionCategories)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return r, nil
}
