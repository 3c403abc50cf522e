package identity

// Principal is the actor behind a request. The zero value is anonymous.
type Principal struct {
	UserID    string
	Role      Role
	CompanyID string
}

// Anonymous returns the unauthenticated principal.
func Anonymous() Principal {
	return Principal{}
}

// Authenticated reports whether the principal carries a user identity.
func (p Principal) Authenticated() bool {
	return p.UserID != ""
}

// Is reports whether the principal is the given user.
func (p Principal) Is(userID string) bool {
	return p.Authenticated() && userID != "" && p.UserID == userID
}

// HasRole reports whether the principal is authenticated with role.
func (p Principal) HasRole(role Role) bool {
	return p.Authenticated() && p.Role == role
}

// InCompany reports whether the principal belongs to companyID.
func (p Principal) InCompany(companyID string) bool {
	return p.CompanyID != "" && p.CompanyID == companyID
}
