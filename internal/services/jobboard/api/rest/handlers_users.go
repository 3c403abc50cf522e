package rest

import (
	"net/http"

	"github.com/louisbranch/jobboard/internal/platform/httpx"
	"github.com/louisbranch/jobboard/internal/services/jobboard/service"
)

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, principal, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	req, err := pageRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	query := r.URL.Query()
	page, err := h.service.ListUsers(ctx, principal, service.UserQuery{
		Search: query.Get("search"),
		Role:   query.Get("role"),
	}, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, newUserListingViews(page.Users), page.Page)
}

func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	ctx, principal, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	var req userRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	created, err := h.service.CreateUser(ctx, principal, req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, newUserView(created))
}

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	ctx, principal, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	found, err := h.service.GetUser(ctx, principal, pathID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, newUserWithCompanyView(found))
}

func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, principal, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	var patch profilePatch
	if err := httpx.DecodeJSON(r, &patch); err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := h.service.UpdateOwnProfile(ctx, principal, pathID(r), patch.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, newUserView(updated))
}

func (h *Handler) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx, principal, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	var patch userPatch
	if err := httpx.DecodeJSON(r, &patch); err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := h.service.UpdateUser(ctx, principal, pathID(r), patch.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, newUserView(updated))
}

func (h *Handler) handleUpdateUserRole(w http.ResponseWriter, r *http.Request) {
	ctx, principal, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	var req roleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := h.service.UpdateUserRole(ctx, principal, pathID(r), req.Role)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, newUserView(updated))
}

func (h *Handler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, principal, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteUser(ctx, principal, pathID(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
