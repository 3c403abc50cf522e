package rest

import (
	"net/http"

	"github.com/louisbranch/jobboard/internal/platform/httpx"
	"github.com/louisbranch/jobboard/internal/services/jobboard/service"
)

func (h *Handler) handleListApplications(w http.ResponseWriter, r *http.Request) {
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
	page, err := h.service.ListApplications(ctx, principal, service.ApplicationQuery{
		JobID:  query.Get("jobId"),
		Status: query.Get("status"),
	}, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, newApplicationDetailViews(page.Applications), page.Page)
}

func (h *Handler) handleSubmitApplication(w http.ResponseWriter, r *http.Request) {
	ctx, principal, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	var req applicationRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	created, err := h.service.SubmitApplication(ctx, principal, req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, newApplicationView(created))
}

func (h *Handler) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	ctx, principal, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	detail, err := h.service.GetApplication(ctx, principal, pathID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, newApplicationDetailView(detail))
}

func (h *Handler) handleSetApplicationStatus(w http.ResponseWriter, r *http.Request) {
	ctx, principal, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	var req statusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := h.service.SetApplicationStatus(ctx, principal, pathID(r), req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, newApplicationDetailView(updated))
}

func (h *Handler) handleDeleteApplication(w http.ResponseWriter, r *http.Request) {
	ctx, principal, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteApplication(ctx, principal, pathID(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, principal, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	stats, err := h.service.GetStatistics(ctx, principal)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, newStatisticsView(stats))
}
