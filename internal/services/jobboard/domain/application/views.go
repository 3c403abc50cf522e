package application

import "github.com/louisbranch/jobboard/internal/services/jobboard/domain/user"

// Detail is an application joined with its job, company, and linked user.
type Detail struct {
	Application
	JobTitle     string
	JobCreatedBy string
	CompanyID    string
	CompanyName  string
	User         *user.Summary
}
