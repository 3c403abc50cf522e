package rest

import (
	"net/http"

	"github.com/louisbranch/jobboard/internal/platform/httpx"
)

func (h *Handler) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	ctx, principal, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	req, err := pageRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, err := h.service.ListCompanies(ctx, principal, r.URL.Query().Get("search"), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, newCompanySummaryViews(page.Companies), page.Page)
}

func (h *Handler) handleCreateCompany(w http.ResponseWriter, r *http.Request) {
	ctx, principal, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	var req companyRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	created, err := h.service.CreateCompany(ctx, principal, req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, newCompanyView(created))
}

func (h *Handler) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	ctx, principal, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	detail, err := h.service.GetCompany(ctx, principal, pathID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, newCompanyDetailView(detail))
}

func (h *Handler) handleUpdateCompany(w http.ResponseWriter, r *http.Request) {
	ctx, principal, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	var patch companyPatch
	if err := httpx.DecodeJSON(r, &patch); err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := h.service.UpdateCompany(ctx, principal, pathID(r), patch.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, newCompanyView(updated))
}

func (h *Handler) handleDeleteCompany(w http.ResponseWriter, r *http.Request) {
	ctx, principal, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteCompany(ctx, principal, pathID(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
