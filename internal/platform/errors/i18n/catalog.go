// Package i18n renders user-facing error messages from the "errors"
// namespace of the embedded catalogs.
package i18n

import (
	"bytes"
	"sync"
	"text/template"

	platformi18n "github.com/louisbranch/jobboard/internal/platform/i18n"
	"github.com/louisbranch/jobboard/internal/platform/i18n/catalog"
)

const namespace = "errors"

// Messages holds the compiled error templates of one locale.
type Messages struct {
	locale    string
	sources   map[string]string
	templates map[string]*template.Template
}

var (
	loadOnce sync.Once
	byLocale map[string]*Messages
)

// For returns the messages of the catalog locale closest to locale. Keys a
// locale does not translate use the base locale text.
func For(locale string) *Messages {
	loadOnce.Do(func() {
		byLocale = compileBundle(catalog.Default())
	})
	if messages, ok := byLocale[platformi18n.ResolveLocale(locale)]; ok {
		return messages
	}
	return byLocale[catalog.BaseLocale]
}

func compileBundle(bundle *catalog.Bundle) map[string]*Messages {
	base := bundle.NamespaceMessages(catalog.BaseLocale, namespace)
	out := make(map[string]*Messages, len(bundle.Locales()))
	for _, locale := range bundle.Locales() {
		sources := bundle.NamespaceMessages(locale, namespace)
		for code, text := range base {
			if _, ok := sources[code]; !ok {
				sources[code] = text
			}
		}
		out[locale] = Compile(locale, sources)
	}
	return out
}

// Compile parses message templates keyed by error code. Metadata keys a
// template references but an error lacks render empty. A template that does
// not parse renders as its source text.
func Compile(locale string, sources map[string]string) *Messages {
	m := &Messages{
		locale:    locale,
		sources:   make(map[string]string, len(sources)),
		templates: make(map[string]*template.Template, len(sources)),
	}
	for code, text := range sources {
		m.sources[code] = text
		tmpl, err := template.New(code).Option("missingkey=zero").Parse(text)
		if err != nil {
			continue
		}
		m.templates[code] = tmpl
	}
	return m
}

// Locale returns the catalog locale of m.
func (m *Messages) Locale() string {
	return m.locale
}

// Has reports whether m defines a message for code.
func (m *Messages) Has(code string) bool {
	_, ok := m.sources[code]
	return ok
}

// Render fills the template for code with metadata. Unknown codes render as
// the code itself.
func (m *Messages) Render(code string, metadata map[string]string) string {
	source, ok := m.sources[code]
	if !ok {
		return code
	}
	tmpl, ok := m.templates[code]
	if !ok {
		return source
	}
	if metadata == nil {
		metadata = map[string]string{}
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, metadata); err != nil {
		return source
	}
	return buf.String()
}
