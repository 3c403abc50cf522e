package user

import "github.com/louisbranch/jobboard/internal/services/jobboard/identity"

// Summary is the public projection of a user.
type Summary struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Role      identity.Role
}

// Summarize projects u without credentials or timestamps.
func Summarize(u User) Summary {
	return Summary{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email, Role: u.Role}
}

// CompanyRef names the company a user belongs to.
type CompanyRef struct {
	ID   string
	Name string
}

// WithCompany is a user joined with their company, if any.
type WithCompany struct {
	User
	Company *CompanyRef
}

// Listing is a user row in admin listings.
type Listing struct {
	WithCompany
	ApplicationCount int
	JobCount         int
}

