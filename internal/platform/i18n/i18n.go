// Package i18n resolves request languages against the embedded catalogs.
package i18n

import (
	"strings"

	"github.com/louisbranch/jobboard/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
)

var (
	supportedTags = buildSupportedTags()
	matcher       = language.NewMatcher(supportedTags)
)

func buildSupportedTags() []language.Tag {
	locales := catalog.Default().Locales()
	tags := make([]language.Tag, 0, len(locales))
	for _, locale := range locales {
		tag, err := language.Parse(locale)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

// SupportedTags returns the catalog locales, base locale first.
func SupportedTags() []language.Tag {
	out := make([]language.Tag, len(supportedTags))
	copy(out, supportedTags)
	return out
}

// DefaultTag returns the base locale tag.
func DefaultTag() language.Tag {
	return language.MustParse(catalog.BaseLocale)
}

// ParseTag parses value and reports whether it matches a supported locale.
func ParseTag(value string) (language.Tag, bool) {
	tag, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return DefaultTag(), false
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return DefaultTag(), false
	}
	return supportedTags[index], true
}

// MatchTags picks the best supported tag for the preferred list.
func MatchTags(tags []language.Tag) language.Tag {
	if len(tags) == 0 {
		return DefaultTag()
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultTag()
	}
	return supportedTags[index]
}

// ResolveLocale maps a locale identifier onto the closest catalog locale,
// falling back to the base locale.
func ResolveLocale(value string) string {
	tag, _ := ParseTag(value)
	return tag.String()
}

// ResolveAcceptLanguage returns the catalog locale for an Accept-Language header.
func ResolveAcceptLanguage(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return catalog.BaseLocale
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return catalog.BaseLocale
	}
	return MatchTags(tags).String()
}
