// Package brand holds the tenant registry. A brand is a site identity
// (contact details, relay account, default locale) selected per request by
// the X-Brand header, then the Host, then the configured default.
package brand

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Brand is one tenant configuration.
type Brand struct {
	ID            string   `mapstructure:"id"`
	Name          string   `mapstructure:"name"`
	Domains       []string `mapstructure:"domains"`
	ContactEmail  string   `mapstructure:"contact_email"`
	WhatsApp      string   `mapstructure:"whatsapp"`
	RelayUser     string   `mapstructure:"relay_user"`
	DefaultLocale string   `mapstructure:"default_locale"`
}

// Registry resolves brands by id or request.
type Registry struct {
	brands    map[string]Brand
	byDomain  map[string]string
	defaultID string
}

// Defaults returns the built-in two-tenant registry.
func Defaults() *Registry {
	r, err := New([]Brand{
		{
			ID:            "daridev",
			Name:          "DariDeveloper",
			Domains:       []string{"darideveloper.com", "www.darideveloper.com"},
			ContactEmail:  "contact@darideveloper.com",
			WhatsApp:      "+52 1 331 004 7245",
			RelayUser:     "daridev",
			DefaultLocale: "es",
		},
		{
			ID:            "3s",
			Name:          "3S Studio",
			Domains:       []string{"3s.darideveloper.com"},
			ContactEmail:  "contact@3s.darideveloper.com",
			WhatsApp:      "+52 1 331 004 7245",
			RelayUser:     "3s",
			DefaultLocale: "en",
		},
	}, "daridev")
	if err != nil {
		panic(err)
	}
	return r
}

// New builds a registry. The default id must exist.
func New(brands []Brand, defaultID string) (*Registry, error) {
	r := &Registry{
		brands:    make(map[string]Brand, len(brands)),
		byDomain:  make(map[string]string),
		defaultID: defaultID,
	}
	for _, b := range brands {
		if b.ID == "" {
			return nil, fmt.Errorf("brand with empty id")
		}
		if _, dup := r.brands[b.ID]; dup {
			return nil, fmt.Errorf("duplicate brand id %q", b.ID)
		}
		r.brands[b.ID] = b
		for _, d := range b.Domains {
			r.byDomain[strings.ToLower(d)] = b.ID
		}
	}
	if _, ok := r.brands[defaultID]; !ok {
		return nil, fmt.Errorf("default brand %q not registered", defaultID)
	}
	return r, nil
}

// LoadFile reads a brand registry from YAML. Entries are decoded through a
// generic map so extra keys in hand-edited files do not fail the load.
func LoadFile(path, defaultID string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read brand file: %w", err)
	}

	var doc struct {
		Brands []map[string]any `yaml:"brands"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse brand file: %w", err)
	}

	brands := make([]Brand, 0, len(doc.Brands))
	for _, entry := range doc.Brands {
		var b Brand
		if err := mapstructure.Decode(entry, &b); err != nil {
			return nil, fmt.Errorf("decode brand entry: %w", err)
		}
		brands = append(brands, b)
	}

	return New(brands, defaultID)
}

// Get looks up a brand by id.
func (r *Registry) Get(id string) (Brand, bool) {
	b, ok := r.brands[id]
	return b, ok
}

// Default returns the fallback brand.
func (r *Registry) Default() Brand {
	return r.brands[r.defaultID]
}

// Resolve picks the brand for a request: X-Brand header first, then the
// Host, then the default.
func (r *Registry) Resolve(req *http.Request) Brand {
	if id := req.Header.Get("X-Brand"); id != "" {
		if b, ok := r.brands[id]; ok {
			return b
		}
	}
	host := strings.ToLower(req.Host)
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	if id, ok := r.byDomain[host]; ok {
		return r.brands[id]
	}
	return r.Default()
}
