package rest

import "net/http"

const (
	PathHealth = "/healthz"

	PathRegister = "/api/auth/register"
	PathLogin    = "/api/auth/login"
	PathLogout   = "/api/auth/logout"
	PathMe       = "/api/auth/me"

	PathCompanies = "/api/companies"
	PathCompany   = "/api/companies/{id}"

	PathUsers    = "/api/users"
	PathUser     = "/api/users/{id}"
	PathUserRole = "/api/users/{id}/role"

	PathJobs            = "/api/jobs"
	PathManagedJobs     = "/api/jobs/manage"
	PathJob             = "/api/jobs/{id}"
	PathJobStatus       = "/api/jobs/{id}/status"
	PathJobStatusToggle = "/api/jobs/{id}/status/toggle"

	PathApplications      = "/api/applications"
	PathApplication       = "/api/applications/{id}"
	PathApplicationStatus = "/api/applications/{id}/status"

	PathStatistics = "/api/stats"
)

func (h *Handler) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc(http.MethodGet+" "+PathHealth, h.handleHealth)

	mux.Handle(http.MethodPost+" "+PathRegister, h.limited(h.handleRegister))
	mux.Handle(http.MethodPost+" "+PathLogin, h.limited(h.handleLogin))
	mux.HandleFunc(http.MethodPost+" "+PathLogout, h.handleLogout)
	mux.HandleFunc(http.MethodGet+" "+PathMe, h.handleMe)

	mux.HandleFunc(http.MethodGet+" "+PathCompanies, h.handleListCompanies)
	mux.HandleFunc(http.MethodPost+" "+PathCompanies, h.handleCreateCompany)
	mux.HandleFunc(http.MethodGet+" "+PathCompany, h.handleGetCompany)
	mux.HandleFunc(http.MethodPut+" "+PathCompany, h.handleUpdateCompany)
	mux.HandleFunc(http.MethodDelete+" "+PathCompany, h.handleDeleteCompany)

	mux.HandleFunc(http.MethodGet+" "+PathUsers, h.handleListUsers)
	mux.HandleFunc(http.MethodPost+" "+PathUsers, h.handleCreateUser)
	mux.HandleFunc(http.MethodGet+" "+PathUser, h.handleGetUser)
	mux.HandleFunc(http.MethodPut+" "+PathUser, h.handleUpdateProfile)
	mux.HandleFunc(http.MethodPatch+" "+PathUser, h.handleUpdateUser)
	mux.HandleFunc(http.MethodPatch+" "+PathUserRole, h.handleUpdateUserRole)
	mux.HandleFunc(http.MethodDelete+" "+PathUser, h.handleDeleteUser)

	mux.HandleFunc(http.MethodGet+" "+PathJobs, h.handleListJobs)
	mux.HandleFunc(http.MethodPost+" "+PathJobs, h.handleCreateJob)
	mux.HandleFunc(http.MethodGet+" "+PathManagedJobs, h.handleListManagedJobs)
	mux.HandleFunc(http.MethodGet+" "+PathJob, h.handleGetJob)
	mux.HandleFunc(http.MethodPut+" "+PathJob, h.handleUpdateJob)
	mux.HandleFunc(http.MethodDelete+" "+PathJob, h.handleDeleteJob)
	mux.HandleFunc(http.MethodPatch+" "+PathJobStatus, h.handleSetJobStatus)
	mux.HandleFunc(http.MethodPost+" "+PathJobStatusToggle, h.handleToggleJobStatus)

	mux.HandleFunc(http.MethodGet+" "+PathApplications, h.handleListApplications)
	mux.HandleFunc(http.MethodPost+" "+PathApplications, h.handleSubmitApplication)
	mux.HandleFunc(http.MethodGet+" "+PathApplication, h.handleGetApplication)
	mux.HandleFunc(http.MethodPatch+" "+PathApplicationStatus, h.handleSetApplicationStatus)
	mux.HandleFunc(http.MethodDelete+" "+PathApplication, h.handleDeleteApplication)

	mux.HandleFunc(http.MethodGet+" "+PathStatistics, h.handleStatistics)
}
