package policy

import "github.com/louisbranch/jobboard/internal/services/jobboard/identity"

// ApplicationScope restricts application listings.
type ApplicationScope struct {
	// All lists every application.
	All bool
	// ApplicantUserID lists applications submitted by this user.
	ApplicantUserID string
	// JobCreatedBy lists applications to jobs created by this user.
	JobCreatedBy string
}

// ApplicationListScope returns the applications principal may list. Callers
// must first check ActionList on ResourceApplication.
func ApplicationListScope(principal identity.Principal) ApplicationScope {
	switch principal.Role {
	case identity.RoleAdmin:
		return ApplicationScope{All: true}
	case identity.RoleRecruiter:
		return ApplicationScope{JobCreatedBy: principal.UserID}
	default:
		return ApplicationScope{ApplicantUserID: principal.UserID}
	}
}

// JobScope restricts managed job listings.
type JobScope struct {
	All       bool
	CreatedBy string
}

// ManagedJobScope returns the jobs principal may manage. Callers must first
// check ActionManage on ResourceJob.
func ManagedJobScope(principal identity.Principal) JobScope {
	if principal.Role == identity.RoleAdmin {
		return JobScope{All: true}
	}
	return JobScope{CreatedBy: principal.UserID}
}
