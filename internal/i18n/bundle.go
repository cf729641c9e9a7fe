// Package i18n supplies the translated strings the wizard surfaces to
// users. The service only consumes lookups keyed by string code; it does
// not own or validate translations.
package i18n

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// Bundle resolves message codes to localized strings with optional
// {param} interpolation.
type Bundle struct {
	defaultLocale string
	messages      map[string]map[string]string // locale -> code -> text
}

// Load reads the embedded locale files. The default locale is used when a
// requested locale has no bundle or is missing a code.
func Load(defaultLocale string) (*Bundle, error) {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}

	b := &Bundle{
		defaultLocale: defaultLocale,
		messages:      make(map[string]map[string]string),
	}

	for _, entry := range entries {
		locale := strings.TrimSuffix(entry.Name(), ".yaml")
		raw, err := localeFS.ReadFile("locales/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", locale, err)
		}

		nested := make(map[string]any)
		if err := yaml.Unmarshal(raw, &nested); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", locale, err)
		}

		flat := make(map[string]string)
		flatten("", nested, flat)
		b.messages[locale] = flat
	}

	if _, ok := b.messages[defaultLocale]; !ok {
		return nil, fmt.Errorf("default locale %q has no bundle", defaultLocale)
	}
	return b, nil
}

// T resolves a code for a locale, interpolating {key} placeholders from
// params. Unknown codes fall back to the default locale, then to the code
// itself so a missing translation never blanks the UI.
func (b *Bundle) T(locale, code string, params map[string]string) string {
	text, ok := b.lookup(locale, code)
	if !ok {
		return code
	}
	for k, v := range params {
		text = strings.ReplaceAll(text, "{"+k+"}", v)
	}
	return text
}

// Has reports whether a code exists for the locale or the default.
func (b *Bundle) Has(locale, code string) bool {
	_, ok := b.lookup(locale, code)
	return ok
}

// Locales lists the loaded locale keys.
func (b *Bundle) Locales() []string {
	out := make([]string, 0, len(b.messages))
	for l := range b.messages {
		out = append(out, l)
	}
	return out
}

func (b *Bundle) lookup(locale, code string) (string, bool) {
	if msgs, ok := b.messages[locale]; ok {
		if text, ok := msgs[code]; ok {
			return text, true
		}
	}
	if msgs, ok := b.messages[b.defaultLocale]; ok {
		if text, ok := msgs[code]; ok {
			return text, true
		}
	}
	return "", false
}

// flatten turns nested YAML maps into dot-joined codes
// (quote -> form -> error becomes "quote.form.error").
func flatten(prefix string, in map[string]any, out map[string]string) {
	for k, v := range in {
		code := k
		if prefix != "" {
			code = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(code, val, out)
		case string:
			out[code] = val
		default:
			out[code] = fmt.Sprint(val)
		}
	}
}
