package rest

import (
	"context"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/louisbranch/jobboard/internal/platform/errors"
	"github.com/louisbranch/jobboard/internal/platform/requestctx"
	"github.com/louisbranch/jobboard/internal/services/jobboard/identity"
)

// SessionCookieName is the cookie login sets.
const SessionCookieName = "jobboard_session"

// TokenVerifier resolves session tokens to principals.
type TokenVerifier interface {
	Verify(token string) (identity.Principal, error)
}

// sessionToken returns the bearer token, or the session cookie when no
// Authorization header is present.
func sessionToken(r *http.Request) (string, bool) {
	if header := strings.TrimSpace(r.Header.Get("Authorization")); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			return "", true
		}
		return strings.TrimSpace(token), true
	}
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || strings.TrimSpace(cookie.Value) == "" {
		return "", false
	}
	return strings.TrimSpace(cookie.Value), true
}

// authenticate resolves the request principal. Requests without a token are
// anonymous; a token that fails verification is rejected with 401.
func (h *Handler) authenticate(w http.ResponseWriter, r *http.Request) (context.Context, identity.Principal, bool) {
	ctx := r.Context()
	token, present := sessionToken(r)
	if !present {
		return ctx, identity.Anonymous(), true
	}
	principal, err := h.tokens.Verify(token)
	if err != nil {
		if _, ok := apperrors.As(err); !ok {
			err = apperrors.Wrap(apperrors.CodeAuthInvalidToken, "session is invalid", err)
		}
		writeError(w, r, err)
		return ctx, identity.Principal{}, false
	}
	return requestctx.WithUserID(ctx, principal.UserID), principal, true
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
