package storage

import (
	"context"
	"time"

	"github.com/louisbranch/jobboard/internal/platform/pagination"
	"github.com/louisbranch/jobboard/internal/services/jobboard/domain/application"
	"github.com/louisbranch/jobboard/internal/services/jobboard/domain/company"
	"github.com/louisbranch/jobboard/internal/services/jobboard/domain/job"
	"github.com/louisbranch/jobboard/internal/services/jobboard/domain/user"
	"github.com/louisbranch/jobboard/internal/services/jobboard/identity"
)

// Entity names used in ReferenceError and DependencyError.
const (
	EntityCompany     = "company"
	EntityUser        = "user"
	EntityJob         = "job"
	EntityApplication = "application"
)

// Unique fields used in ConflictError.
const (
	FieldCompanyName = "name"
	FieldUserEmail   = "email"
	FieldApplication = "application"
)

// CompanyFilter narrows company listings.
type CompanyFilter struct {
	// Search matches name, place, or info as a case-insensitive substring.
	Search string
}

// CompanyPage is one page of companies ordered by name.
type CompanyPage struct {
	Companies []company.Summary
	Page      pagination.Page
}

// CompanyStore persists companies.
type CompanyStore interface {
	CreateCompany(ctx context.Context, c company.Company) error
	GetCompany(ctx context.Context, id string) (company.Company, error)
	GetCompanyDetail(ctx context.Context, id string) (company.Detail, error)
	ListCompanies(ctx context.Context, filter CompanyFilter, req pagination.Request) (CompanyPage, error)
	// UpdateCompany reads the company, passes it to apply, and writes the
	// result in one transaction. Errors from apply are returned unchanged.
	UpdateCompany(ctx context.Context, id string, apply func(company.Company) (company.Company, error)) (company.Company, error)
	// DeleteCompany returns *DependencyError while jobs or users reference it.
	DeleteCompany(ctx context.Context, id string) error
}

// UserFilter narrows user listings.
type UserFilter struct {
	// Search matches first name, last name, or email.
	Search string
	Role   identity.Role
}

// UserPage is one page of users ordered newest first.
type UserPage struct {
	Users []user.Listing
	Page  pagination.Page
}

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, u user.User) error
	GetUser(ctx context.Context, id string) (user.User, error)
	GetUserByEmail(ctx context.Context, email string) (user.User, error)
	GetUserWithCompany(ctx context.Context, id string) (user.WithCompany, error)
	ListUsers(ctx context.Context, filter UserFilter, req pagination.Request) (UserPage, error)
	// UpdateUser reads the user, passes it to apply, and writes the result
	// in one transaction. Errors from apply are returned unchanged.
	UpdateUser(ctx context.Context, id string, apply func(user.User) (user.User, error)) (user.User, error)
	// DeleteUser returns *DependencyError while the user has created jobs.
	// Applications the user submitted keep their applicant fields.
	DeleteUser(ctx context.Context, id string) error
}

// JobFilter narrows job listings. Zero fields do not filter.
type JobFilter struct {
	// Search matches title, short description, or description.
	Search    string
	Location  string
	Type      job.Type
	Status    job.Status
	CompanyID string
	CreatedBy string
}

// JobPage is one page of jobs ordered newest first.
type JobPage struct {
	Jobs []job.Summary
	Page pagination.Page
}

// JobStore persists jobs.
type JobStore interface {
	CreateJob(ctx context.Context, j job.Job) error
	GetJob(ctx context.Context, id string) (job.Job, error)
	GetJobDetail(ctx context.Context, id string) (job.Detail, error)
	ListJobs(ctx context.Context, filter JobFilter, req pagination.Request) (JobPage, error)
	// UpdateJob reads the job, passes it to apply, and writes the result in
	// one transaction. The creator is never written. Errors from apply are
	// returned unchanged.
	UpdateJob(ctx context.Context, id string, apply func(job.Job) (job.Job, error)) (job.Job, error)
	// DeleteJob removes the job and its applications atomically.
	DeleteJob(ctx context.Context, id string) error
}

// ApplicationFilter narrows application listings. Zero fields do not filter.
type ApplicationFilter struct {
	JobID        string
	UserID       string
	JobCreatedBy string
	Status       application.Status
}

// ApplicationPage is one page of applications ordered newest first.
type ApplicationPage struct {
	Applications []application.Detail
	Page         pagination.Page
}

// ApplicationStore persists job applications.
type ApplicationStore interface {
	// CreateApplication returns *ConflictError when the same identity already
	// applied to the job, and ErrJobNotPublished when the job is archived.
	CreateApplication(ctx context.Context, a application.Application) error
	GetApplication(ctx context.Context, id string) (application.Detail, error)
	ListApplications(ctx context.Context, filter ApplicationFilter, req pagination.Request) (ApplicationPage, error)
	SetApplicationStatus(ctx context.Context, id string, status application.Status, updatedAt time.Time) error
	DeleteApplication(ctx context.Context, id string) error
}

// Statistics summarizes stored records.
type Statistics struct {
	Companies           int
	Users               int
	UsersByRole         map[identity.Role]int
	Jobs                int
	JobsByStatus        map[job.Status]int
	Applications        int
	ApplicationsByStatus map[application.Status]int
}

// StatisticsStore computes dashboard counts.
type StatisticsStore interface {
	GetStatistics(ctx context.Context) (Statistics, error)
}

// Store is the full persistence contract.
type Store interface {
	CompanyStore
	UserStore
	JobStore
	ApplicationStore
	StatisticsStore
	Close() error
}
