// Package identity defines principals, roles, password hashing, and session
// tokens for the job board.
package identity

import "strings"

// Role is a user's authorization role.
type Role string

const (
	RoleUnspecified Role = ""
	RoleCandidate   Role = "CANDIDATE"
	RoleRecruiter   Role = "RECRUITER"
	RoleAdmin       Role = "ADMIN"
)

// roleAliases maps legacy labels onto canonical roles.
var roleAliases = map[string]Role{
	"USER": RoleCandidate,
}

// ParseRole parses a role label case-insensitively. The legacy USER label
// maps to CANDIDATE.
func ParseRole(value string) (Role, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	switch Role(normalized) {
	case RoleCandidate, RoleRecruiter, RoleAdmin:
		return Role(normalized), true
	}
	if role, ok := roleAliases[normalized]; ok {
		return role, true
	}
	return RoleUnspecified, false
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleCandidate, RoleRecruiter, RoleAdmin:
		return true
	default:
		return false
	}
}

// String returns the role label.
func (r Role) String() string {
	return string(r)
}
