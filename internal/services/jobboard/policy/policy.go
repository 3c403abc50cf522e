package policy

import (
	apperrors "github.com/louisbranch/jobboard/internal/platform/errors"
	"github.com/louisbranch/jobboard/internal/services/jobboard/identity"
)

// Action is an operation verb.
type Action string

const (
	ActionRead          Action = "read"
	ActionList          Action = "list"
	ActionCreate        Action = "create"
	ActionUpdate        Action = "update"
	ActionUpdateProfile Action = "update_profile"
	ActionSetRole       Action = "set_role"
	ActionSetStatus     Action = "set_status"
	ActionManage        Action = "manage"
	ActionDelete        Action = "delete"
	ActionRegister      Action = "register"
)

// Resource is the entity an action applies to.
type Resource string

const (
	ResourceAccount     Resource = "account"
	ResourceCompany     Resource = "company"
	ResourceUser        Resource = "user"
	ResourceJob         Resource = "job"
	ResourceApplication Resource = "application"
	ResourceStatistics  Resource = "statistics"
)

// Scope is the ownership predicate a grant requires.
type Scope int

const (
	// ScopeAny grants the action on every target.
	ScopeAny Scope = iota
	// ScopeSelf requires Target.UserID to be the principal.
	ScopeSelf
	// ScopeOwnCompany requires Target.CompanyID to be the principal's company.
	ScopeOwnCompany
	// ScopeCreator requires Target.CreatedBy to be the principal.
	ScopeCreator
	// ScopeApplicant requires Target.ApplicantUserID to be the principal.
	ScopeApplicant
	// ScopeJobCreator requires Target.JobCreatedBy to be the principal.
	ScopeJobCreator
)

// Anyone marks rows that apply to every principal, including anonymous.
const Anyone identity.Role = ""

// Reason codes explain a decision.
const (
	ReasonAllowPublic          = "ALLOW_PUBLIC"
	ReasonAllowRole            = "ALLOW_ROLE"
	ReasonAllowOwner           = "ALLOW_OWNER"
	ReasonDenyUnauthenticated  = "DENY_UNAUTHENTICATED"
	ReasonDenyRoleRequired     = "DENY_ROLE_REQUIRED"
	ReasonDenyNotResourceOwner = "DENY_NOT_RESOURCE_OWNER"
	ReasonDenySelfDelete       = "DENY_SELF_DELETE"
)

// Target carries the ownership fields of the entity acted on.
type Target struct {
	UserID          string
	CompanyID       string
	CreatedBy       string
	ApplicantUserID string
	JobCreatedBy    string
}

// Rule grants Role the Action on Resource within Scope.
type Rule struct {
	Role     identity.Role
	Action   Action
	Resource Resource
	Scope    Scope
}

// Decision is the result of a policy evaluation.
type Decision struct {
	Allowed    bool
	ReasonCode string
}

// Err converts a denial into a typed error. Allowed decisions return nil.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	switch d.ReasonCode {
	case ReasonDenyUnauthenticated:
		return apperrors.New(apperrors.CodeAuthRequired, "authentication required")
	case ReasonDenyNotResourceOwner:
		return apperrors.New(apperrors.CodeForbiddenNotOwner, "not the resource owner")
	case ReasonDenySelfDelete:
		return apperrors.New(apperrors.CodeUserCannotDeleteSelf, "cannot delete own account")
	default:
		return apperrors.New(apperrors.CodeForbiddenRole, "role not allowed")
	}
}

var table = buildTable()

func buildTable() []Rule {
	rules := []Rule{
		{Anyone, ActionRead, ResourceJob, ScopeAny},
		{Anyone, ActionList, ResourceJob, ScopeAny},
		{Anyone, ActionRead, ResourceCompany, ScopeAny},
		{Anyone, ActionList, ResourceCompany, ScopeAny},
		{Anyone, ActionCreate, ResourceApplication, ScopeAny},
		{Anyone, ActionRegister, ResourceAccount, ScopeAny},

		{identity.RoleCandidate, ActionRead, ResourceUser, ScopeSelf},
		{identity.RoleCandidate, ActionUpdateProfile, ResourceUser, ScopeSelf},
		{identity.RoleCandidate, ActionList, ResourceApplication, ScopeAny},
		{identity.RoleCandidate, ActionRead, ResourceApplication, ScopeApplicant},

		{identity.RoleRecruiter, ActionRead, ResourceUser, ScopeSelf},
		{identity.RoleRecruiter, ActionUpdateProfile, ResourceUser, ScopeSelf},
		{identity.RoleRecruiter, ActionUpdate, ResourceCompany, ScopeOwnCompany},
		{identity.RoleRecruiter, ActionCreate, ResourceJob, ScopeOwnCompany},
		{identity.RoleRecruiter, ActionUpdate, ResourceJob, ScopeCreator},
		{identity.RoleRecruiter, ActionSetStatus, ResourceJob, ScopeCreator},
		{identity.RoleRecruiter, ActionDelete, ResourceJob, ScopeCreator},
		{identity.RoleRecruiter, ActionManage, ResourceJob, ScopeAny},
		{identity.RoleRecruiter, ActionList, ResourceApplication, ScopeAny},
		{identity.RoleRecruiter, ActionRead, ResourceApplication, ScopeJobCreator},
		{identity.RoleRecruiter, ActionSetStatus, ResourceApplication, ScopeJobCreator},
		{identity.RoleRecruiter, ActionRead, ResourceStatistics, ScopeAny},

		{identity.RoleAdmin, ActionUpdateProfile, ResourceUser, ScopeSelf},
	}
	for _, grant := range adminGrants {
		rules = append(rules, Rule{identity.RoleAdmin, grant.action, grant.resource, ScopeAny})
	}
	return rules
}

var adminGrants = []struct {
	action   Action
	resource Resource
}{
	{ActionCreate, ResourceCompany},
	{ActionUpdate, ResourceCompany},
	{ActionDelete, ResourceCompany},
	{ActionRead, ResourceUser},
	{ActionList, ResourceUser},
	{ActionCreate, ResourceUser},
	{ActionUpdate, ResourceUser},
	{ActionSetRole, ResourceUser},
	{ActionDelete, ResourceUser},
	{ActionCreate, ResourceJob},
	{ActionUpdate, ResourceJob},
	{ActionSetStatus, ResourceJob},
	{ActionDelete, ResourceJob},
	{ActionManage, ResourceJob},
	{ActionList, ResourceApplication},
	{ActionRead, ResourceApplication},
	{ActionSetStatus, ResourceApplication},
	{ActionDelete, ResourceApplication},
	{ActionRead, ResourceStatistics},
}

// PolicyTable returns a copy of the authorization matrix.
func PolicyTable() []Rule {
	out := make([]Rule, len(table))
	copy(out, table)
	return out
}

// Can decides whether principal may perform action on resource for target.
func Can(principal identity.Principal, action Action, resource Resource, target Target) Decision {
	var granted []Rule
	for _, rule := range table {
		if rule.Action != action || rule.Resource != resource {
			continue
		}
		if rule.Role == Anyone {
			return Decision{Allowed: true, ReasonCode: ReasonAllowPublic}
		}
		granted = append(granted, rule)
	}

	if !principal.Authenticated() {
		return Decision{ReasonCode: ReasonDenyUnauthenticated}
	}

	roleMatched := false
	for _, rule := range granted {
		if rule.Role != principal.Role {
			continue
		}
		roleMatched = true
		if !scopeSatisfied(rule.Scope, principal, target) {
			continue
		}
		if action == ActionDelete && resource == ResourceUser && principal.Is(target.UserID) {
			return Decision{ReasonCode: ReasonDenySelfDelete}
		}
		if rule.Scope == ScopeAny {
			return Decision{Allowed: true, ReasonCode: ReasonAllowRole}
		}
		return Decision{Allowed: true, ReasonCode: ReasonAllowOwner}
	}
	if roleMatched {
		return Decision{ReasonCode: ReasonDenyNotResourceOwner}
	}
	return Decision{ReasonCode: ReasonDenyRoleRequired}
}

func scopeSatisfied(scope Scope, principal identity.Principal, target Target) bool {
	switch scope {
	case ScopeAny:
		return true
	case ScopeSelf:
		return principal.Is(target.UserID)
	case ScopeOwnCompany:
		return principal.InCompany(target.CompanyID)
	case ScopeCreator:
		return principal.Is(target.CreatedBy)
	case ScopeApplicant:
		return principal.Is(target.ApplicantUserID)
	case ScopeJobCreator:
		return principal.Is(target.JobCreatedBy)
	default:
		return false
	}
}
