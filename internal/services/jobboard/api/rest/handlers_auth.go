package rest

import (
	"net/http"
	"time"

	"github.com/louisbranch/jobboard/internal/platform/httpx"
)

type sessionView struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      userView  `json:"user"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, principal, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	var req registerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	created, err := h.service.Register(ctx, principal, req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, newUserView(created))
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	session, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.setSessionCookie(w, session.Token, session.ExpiresAt)
	writeData(w, http.StatusOK, sessionView{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      newUserView(session.User),
	})
}

// handleLogout clears the session cookie. Tokens are stateless, so bearer
// clients simply discard theirs.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	ctx, principal, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	me, err := h.service.Me(ctx, principal)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, newUserWithCompanyView(me))
}
