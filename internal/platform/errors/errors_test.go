package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestCodeHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeCompanyNameTooShort, http.StatusBadRequest},
		{CodeUserCannotDeleteSelf, http.StatusBadRequest},
		{CodeAuthRequired, http.StatusUnauthorized},
		{CodeForbiddenNotOwner, http.StatusForbidden},
		{CodeJobNotFound, http.StatusNotFound},
		{CodeApplicationDuplicate, http.StatusConflict},
		{CodeCompanyHasDependents, http.StatusConflict},
		{CodeRateLimited, http.StatusTooManyRequests},
		{CodeInternal, http.StatusInternalServerError},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if got := tc.code.HTTPStatus(); got != tc.want {
			t.Fatalf("%s status = %d, want %d", tc.code, got, tc.want)
		}
	}
}

func TestIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(CodeJobNotFound, "job missing"))
	if !stderrors.Is(err, New(CodeJobNotFound, "")) {
		t.Fatal("expected code match through wrap chain")
	}
	if stderrors.Is(err, New(CodeUserNotFound, "")) {
		t.Fatal("expected mismatch on different code")
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(nil); got != "" {
		t.Fatalf("KindOf(nil) = %q, want empty", got)
	}
	if got := KindOf(stderrors.New("boom")); got != KindInternal {
		t.Fatalf("KindOf(plain) = %q, want %q", got, KindInternal)
	}
	if got := KindOf(New(CodeUserEmailTaken, "taken")); got != KindConflict {
		t.Fatalf("KindOf(domain) = %q, want %q", got, KindConflict)
	}
}

func TestInternalHidesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Internal("create job", cause)
	if err.Message != "internal error" {
		t.Fatalf("message = %q, want generic", err.Message)
	}
	if !stderrors.Is(err, cause) {
		t.Fatal("expected cause in chain")
	}
	detail := Detail(err)
	if !strings.Contains(detail, "create job") || !strings.Contains(detail, "disk full") {
		t.Fatalf("detail = %q, want op and cause", detail)
	}
}

func TestCodeOfUnknown(t *testing.T) {
	if got := CodeOf(stderrors.New("x")); got != CodeUnknown {
		t.Fatalf("CodeOf = %q, want %q", got, CodeUnknown)
	}
}

func TestLocalizedMessage(t *testing.T) {
	err := WithMetadata(CodeCompanyHasDependents, "company has dependents", map[string]string{"Jobs": "3", "Users": "0"})
	got := err.LocalizedMessage("en-US")
	if !strings.Contains(got, "3 job(s)") {
		t.Fatalf("message = %q, want job count", got)
	}

	leak := New(Code("DB_EXPLODED"), "sql: connection refused")
	if got := leak.LocalizedMessage("en-US"); strings.Contains(got, "sql") {
		t.Fatalf("internal message leaked: %q", got)
	}
}
