package errors

import "github.com/louisbranch/jobboard/internal/platform/errors/i18n"

// LocalizedMessage renders the user-facing message for locale. Codes without
// a catalog entry fall back to the internal message, except internal errors
// which never expose it.
func (e *Error) LocalizedMessage(locale string) string {
	messages := i18n.For(locale)
	code := string(e.Code)
	if messages.Has(code) {
		return messages.Render(code, e.Metadata)
	}
	if e.Kind() == KindInternal {
		return messages.Render(string(CodeInternal), nil)
	}
	return e.Message
}
