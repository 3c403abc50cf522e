package company

import (
	"time"

	"github.com/louisbranch/jobboard/internal/services/jobboard/domain/job"
)

// Summary is a company with dependent counts, as shown in listings.
type Summary struct {
	Company
	JobCount  int
	UserCount int
}

// JobRef is a job as listed on a company page.
type JobRef struct {
	ID               string
	Title            string
	Type             job.Type
	Salary           float64
	Location         string
	Status           job.Status
	CreatedAt        time.Time
	ApplicationCount int
}

// Recruiter is a recruiter account attached to a company.
type Recruiter struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
}

// Detail is a company with its jobs (newest first) and recruiters.
type Detail struct {
	Company
	Jobs       []JobRef
	Recruiters []Recruiter
	JobCount   int
	UserCount  int
}
