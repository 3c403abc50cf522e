// Package user provides user accounts and input validation.
package user

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/louisbranch/jobboard/internal/platform/errors"
	"github.com/louisbranch/jobboard/internal/platform/id"
	"github.com/louisbranch/jobboard/internal/services/jobboard/domain/validate"
	"github.com/louisbranch/jobboard/internal/services/jobboard/identity"
)

const (
	// MinNameLength is the shortest accepted first or last name.
	MinNameLength = 2
	// MinRegisterPasswordLength applies to self-registration.
	MinRegisterPasswordLength = 8
	// MinAdminPasswordLength applies to accounts created by an admin.
	MinAdminPasswordLength = 6
)

var (
	ErrFirstNameTooShort = apperrors.New(apperrors.CodeUserFirstNameTooShort, "first name is too short")
	ErrLastNameTooShort  = apperrors.New(apperrors.CodeUserLastNameTooShort, "last name is too short")
	ErrEmailInvalid      = apperrors.New(apperrors.CodeUserEmailInvalid, "email is invalid")
)

// User is an account. PasswordHash is never exposed to callers.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	PasswordHash string
	Role         identity.Role
	CompanyID    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal returns the identity a session for u carries.
func (u User) Principal() identity.Principal {
	return identity.Principal{UserID: u.ID, Role: u.Role, CompanyID: u.CompanyID}
}

// CreateUserInput describes a new account. An empty Role defaults to
// CANDIDATE.
type CreateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
	Role      string
	CompanyID string
}

// ProfileUpdate is a self-service partial update. Nil fields are left
// unchanged.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
}

// AdminUpdate is an admin partial update. An empty CompanyID clears the
// company link.
type AdminUpdate struct {
	ProfileUpdate
	Role      *string
	CompanyID *string
}

// CreateUser validates input, hashes the password, and returns a new user.
// minPassword is the shortest accepted password for the calling flow.
func CreateUser(input CreateUserInput, minPassword int, hash func(string) (string, error), now func() time.Time, idGenerator func() (string, error)) (User, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}
	if hash == nil {
		return User{}, fmt.Errorf("password hasher is required")
	}

	normalized, role, err := normalizeCreateUserInput(input, minPassword)
	if err != nil {
		return User{}, err
	}

	passwordHash, err := hash(normalized.Password)
	if err != nil {
		return User{}, err
	}

	userID, err := idGenerator()
	if err != nil {
		return User{}, fmt.Errorf("generate user id: %w", err)
	}

	createdAt := now().UTC()
	return User{
		ID:           userID,
		FirstName:    normalized.FirstName,
		LastName:     normalized.LastName,
		Email:        normalized.Email,
		Phone:        normalized.Phone,
		PasswordHash: passwordHash,
		Role:         role,
		CompanyID:    normalized.CompanyID,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}, nil
}

// NormalizeCreateUserInput trims, lower-cases the email, and validates input.
func NormalizeCreateUserInput(input CreateUserInput, minPassword int) (CreateUserInput, error) {
	normalized, _, err := normalizeCreateUserInput(input, minPassword)
	return normalized, err
}

func normalizeCreateUserInput(input CreateUserInput, minPassword int) (CreateUserInput, identity.Role, error) {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = validate.NormalizeEmail(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)
	input.CompanyID = strings.TrimSpace(input.CompanyID)

	if err := validateNames(input.FirstName, input.LastName); err != nil {
		return CreateUserInput{}, "", err
	}
	if !validate.Email(input.Email) {
		return CreateUserInput{}, "", ErrEmailInvalid
	}
	if err := ValidatePassword(input.Password, minPassword); err != nil {
		return CreateUserInput{}, "", err
	}
	role := identity.RoleCandidate
	if strings.TrimSpace(input.Role) != "" {
		parsed, err := ParseRoleInput(input.Role)
		if err != nil {
			return CreateUserInput{}, "", err
		}
		role = parsed
	}
	input.Role = role.String()
	return input, role, nil
}

// ValidatePassword checks that password has at least min characters.
func ValidatePassword(password string, min int) error {
	if validate.MinRunes(password, min) {
		return nil
	}
	return apperrors.WithMetadata(
		apperrors.CodeUserPasswordTooShort,
		"password is too short",
		map[string]string{"Min": strconv.Itoa(min)},
	)
}

// ParseRoleInput parses a role label into a typed validation error.
func ParseRoleInput(value string) (identity.Role, error) {
	role, ok := identity.ParseRole(value)
	if !ok {
		return "", apperrors.WithMetadata(
			apperrors.CodeUserInvalidRole,
			"role is invalid",
			map[string]string{"Role": value},
		)
	}
	return role, nil
}

// ApplyProfileUpdate returns u with the non-nil profile fields applied.
func ApplyProfileUpdate(u User, input ProfileUpdate, now func() time.Time) (User, error) {
	if now == nil {
		now = time.Now
	}
	if value := validate.TrimPtr(input.FirstName); value != nil {
		if !validate.MinRunes(*value, MinNameLength) {
			return User{}, ErrFirstNameTooShort
		}
		u.FirstName = *value
	}
	if value := validate.TrimPtr(input.LastName); value != nil {
		if !validate.MinRunes(*value, MinNameLength) {
			return User{}, ErrLastNameTooShort
		}
		u.LastName = *value
	}
	if input.Email != nil {
		email := validate.NormalizeEmail(*input.Email)
		if !validate.Email(email) {
			return User{}, ErrEmailInvalid
		}
		u.Email = email
	}
	if value := validate.TrimPtr(input.Phone); value != nil {
		u.Phone = *value
	}
	u.UpdatedAt = now().UTC()
	return u, nil
}

// ApplyAdminUpdate returns u with the non-nil profile, role, and company
// fields applied.
func ApplyAdminUpdate(u User, input AdminUpdate, now func() time.Time) (User, error) {
	updated, err := ApplyProfileUpdate(u, input.ProfileUpdate, now)
	if err != nil {
		return User{}, err
	}
	if input.Role != nil {
		role, err := ParseRoleInput(*input.Role)
		if err != nil {
			return User{}, err
		}
		updated.Role = role
	}
	if value := validate.TrimPtr(input.CompanyID); value != nil {
		updated.CompanyID = *value
	}
	return updated, nil
}

func validateNames(first, last string) error {
	if !validate.MinRunes(first, MinNameLength) {
		return ErrFirstNameTooShort
	}
	if !validate.MinRunes(last, MinNameLength) {
		return ErrLastNameTooShort
	}
	return nil
}
