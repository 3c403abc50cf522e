package rest

import (
	"net/http"

	"github.com/louisbranch/jobboard/internal/platform/httpx"
	"github.com/louisbranch/jobboard/internal/services/jobboard/service"
)

func jobQuery(r *http.Request) service.JobQuery {
	query := r.URL.Query()
	return service.JobQuery{
		Search:   query.Get("search"),
		Location: query.Get("location"),
		Type:     query.Get("type"),
		Status:   query.Get("status"),
	}
}

func (h *Handler) handleListJobs(w http.ResponseWriter, r *http.Request) {
	ctx, principal, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	req, err := pageRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, err := h.service.ListJobs(ctx, principal, jobQuery(r), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, newJobSummaryViews(page.Jobs), page.Page)
}

func (h *Handler) handleListManagedJobs(w http.ResponseWriter, r *http.Request) {
	ctx, principal, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	req, err := pageRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, err := h.service.ListManagedJobs(ctx, principal, jobQuery(r), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, newJobSummaryViews(page.Jobs), page.Page)
}

func (h *Handler) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	ctx, principal, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	var req jobRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	created, err := h.service.CreateJob(ctx, principal, req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, newJobView(created))
}

func (h *Handler) handleGetJob(w http.ResponseWriter, r *http.Request) {
	ctx, principal, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	detail, err := h.service.GetJob(ctx, principal, pathID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, newJobDetailView(detail))
}

func (h *Handler) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	ctx, principal, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	var patch jobPatch
	if err := httpx.DecodeJSON(r, &patch); err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := h.service.UpdateJob(ctx, principal, pathID(r), patch.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, newJobView(updated))
}

func (h *Handler) handleSetJobStatus(w http.ResponseWriter, r *http.Request) {
	ctx, principal, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	var req statusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := h.service.SetJobStatus(ctx, principal, pathID(r), req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, newJobView(updated))
}

func (h *Handler) handleToggleJobStatus(w http.ResponseWriter, r *http.Request) {
	ctx, principal, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	updated, err := h.service.ToggleJobStatus(ctx, principal, pathID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, newJobView(updated))
}

func (h *Handler) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	ctx, principal, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteJob(ctx, principal, pathID(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
