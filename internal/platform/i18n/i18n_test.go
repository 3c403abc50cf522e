package i18n

import "testing"

func TestResolveAcceptLanguage(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", "en-US"},
		{"fr-FR,fr;q=0.9,en;q=0.8", "fr-FR"},
		{"fr", "fr-FR"},
		{"en-GB", "en-US"},
		{"ja-JP", "en-US"},
	}
	for _, tc := range tests {
		if got := ResolveAcceptLanguage(tc.header); got != tc.want {
			t.Fatalf("ResolveAcceptLanguage(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}

func TestParseTag(t *testing.T) {
	if tag, ok := ParseTag("fr-FR"); !ok || tag.String() != "fr-FR" {
		t.Fatalf("ParseTag(fr-FR) = %v, %v", tag, ok)
	}
	if _, ok := ParseTag("%%%"); ok {
		t.Fatal("expected invalid tag to be rejected")
	}
}

func TestSupportedTagsStartWithDefault(t *testing.T) {
	tags := SupportedTags()
	if len(tags) < 2 {
		t.Fatalf("expected at least two supported tags, got %d", len(tags))
	}
	if tags[0] != DefaultTag() {
		t.Fatalf("first tag = %v, want %v", tags[0], DefaultTag())
	}
}

func TestResolveLocale(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"", "en-US"},
		{"fr-FR", "fr-FR"},
		{"fr-CA", "fr-FR"},
		{"de-DE", "en-US"},
		{"not a locale", "en-US"},
	}
	for _, tc := range tests {
		if got := ResolveLocale(tc.value); got != tc.want {
			t.Fatalf("ResolveLocale(%q) = %q, want %q", tc.value, got, tc.want)
		}
	}
}
