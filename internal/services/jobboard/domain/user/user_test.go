package user

import (
	"errors"
	"testing"
	"time"

	apperrors "github.com/louisbranch/jobboard/internal/platform/errors"
	"github.com/louisbranch/jobboard/internal/services/jobboard/identity"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func fixedID() (string, error) { return "user-1", nil }

func fakeHash(password string) (string, error) { return "hashed:" + password, nil }

func validInput() CreateUserInput {
	return CreateUserInput{
		FirstName: " Ada ",
		LastName:  " Lovelace ",
		Email:     " Ada@Example.COM ",
		Phone:     " 0102030405 ",
		Password:  "pw123456",
	}
}

func TestCreateUserDefaultsToCandidate(t *testing.T) {
	u, err := CreateUser(validInput(), MinRegisterPasswordLength, fakeHash, fixedNow, fixedID)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.ID != "user-1" || u.FirstName != "Ada" || u.LastName != "Lovelace" || u.Phone != "0102030405" {
		t.Fatalf("unexpected user %+v", u)
	}
	if u.Email != "ada@example.com" {
		t.Fatalf("email = %q, want lower-cased", u.Email)
	}
	if u.Role != identity.RoleCandidate {
		t.Fatalf("role = %q, want CANDIDATE", u.Role)
	}
	if u.PasswordHash != "hashed:pw123456" {
		t.Fatalf("password hash = %q", u.PasswordHash)
	}
}

func TestCreateUserParsesRoleAlias(t *testing.T) {
	input := validInput()
	input.Role = "user"
	u, err := CreateUser(input, MinAdminPasswordLength, fakeHash, fixedNow, fixedID)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.Role != identity.RoleCandidate {
		t.Fatalf("role = %q, want CANDIDATE", u.Role)
	}

	input.Role = "recruiter"
	input.CompanyID = " company-1 "
	u, err = CreateUser(input, MinAdminPasswordLength, fakeHash, fixedNow, fixedID)
	if err != nil {
		t.Fatalf("create recruiter: %v", err)
	}
	if u.Role != identity.RoleRecruiter || u.CompanyID != "company-1" {
		t.Fatalf("unexpected recruiter %+v", u)
	}
}

func TestCreateUserValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateUserInput)
		min    int
		code   apperrors.Code
	}{
		{"short first name", func(in *CreateUserInput) { in.FirstName = "A" }, 8, apperrors.CodeUserFirstNameTooShort},
		{"short last name", func(in *CreateUserInput) { in.LastName = " " }, 8, apperrors.CodeUserLastNameTooShort},
		{"bad email", func(in *CreateUserInput) { in.Email = "not-an-email" }, 8, apperrors.CodeUserEmailInvalid},
		{"short register password", func(in *CreateUserInput) { in.Password = "pw1234" }, MinRegisterPasswordLength, apperrors.CodeUserPasswordTooShort},
		{"short admin password", func(in *CreateUserInput) { in.Password = "pw123" }, MinAdminPasswordLength, apperrors.CodeUserPasswordTooShort},
		{"unknown role", func(in *CreateUserInput) { in.Role = "owner" }, 8, apperrors.CodeUserInvalidRole},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)
			_, err := CreateUser(input, tc.min, fakeHash, fixedNow, fixedID)
			if got := apperrors.CodeOf(err); got != tc.code {
				t.Fatalf("code = %q, want %q", got, tc.code)
			}
			if apperrors.KindOf(err) != apperrors.KindValidation {
				t.Fatalf("kind = %q, want validation", apperrors.KindOf(err))
			}
		})
	}
}

func TestCreateUserAdminPasswordMinimum(t *testing.T) {
	input := validInput()
	input.Password = "pw1234"
	if _, err := CreateUser(input, MinAdminPasswordLength, fakeHash, fixedNow, fixedID); err != nil {
		t.Fatalf("six character admin password rejected: %v", err)
	}
}

func TestCreateUserHashError(t *testing.T) {
	boom := errors.New("boom")
	_, err := CreateUser(validInput(), MinRegisterPasswordLength, func(string) (string, error) { return "", boom }, fixedNow, fixedID)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
}

func TestApplyProfileUpdate(t *testing.T) {
	u, err := CreateUser(validInput(), MinRegisterPasswordLength, fakeHash, fixedNow, fixedID)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	later := func() time.Time { return fixedNow().Add(time.Hour) }
	email := " NEW@Example.com "
	phone := ""
	updated, err := ApplyProfileUpdate(u, ProfileUpdate{Email: &email, Phone: &phone}, later)
	if err != nil {
		t.Fatalf("apply profile update: %v", err)
	}
	if updated.Email != "new@example.com" || updated.Phone != "" || updated.FirstName != "Ada" {
		t.Fatalf("unexpected user %+v", updated)
	}
	if !updated.UpdatedAt.Equal(later()) || !updated.CreatedAt.Equal(u.CreatedAt) {
		t.Fatalf("timestamps = %v / %v", updated.CreatedAt, updated.UpdatedAt)
	}

	short := "B"
	if _, err := ApplyProfileUpdate(u, ProfileUpdate{LastName: &short}, later); !errors.Is(err, ErrLastNameTooShort) {
		t.Fatalf("err = %v, want ErrLastNameTooShort", err)
	}
}

func TestApplyAdminUpdate(t *testing.T) {
	u, err := CreateUser(validInput(), MinRegisterPasswordLength, fakeHash, fixedNow, fixedID)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	role := "ADMIN"
	company := " company-9 "
	updated, err := ApplyAdminUpdate(u, AdminUpdate{Role: &role, CompanyID: &company}, fixedNow)
	if err != nil {
		t.Fatalf("apply admin update: %v", err)
	}
	if updated.Role != identity.RoleAdmin || updated.CompanyID != "company-9" {
		t.Fatalf("unexpected user %+v", updated)
	}

	none := ""
	updated, err = ApplyAdminUpdate(updated, AdminUpdate{CompanyID: &none}, fixedNow)
	if err != nil {
		t.Fatalf("clear company: %v", err)
	}
	if updated.CompanyID != "" {
		t.Fatalf("company = %q, want cleared", updated.CompanyID)
	}

	bad := "root"
	if _, err := ApplyAdminUpdate(u, AdminUpdate{Role: &bad}, fixedNow); apperrors.CodeOf(err) != apperrors.CodeUserInvalidRole {
		t.Fatalf("err = %v, want invalid role", err)
	}
}

func TestSummarizeOmitsCredentials(t *testing.T) {
	u := User{ID: "u1", FirstName: "Ada", LastName: "L", Email: "a@x.com", PasswordHash: "secret", Role: identity.RoleAdmin}
	got := Summarize(u)
	want := Summary{ID: "u1", FirstName: "Ada", LastName: "L", Email: "a@x.com", Role: identity.RoleAdmin}
	if got != want {
		t.Fatalf("summary = %+v, want %+v", got, want)
	}
	if p := u.Principal(); p.UserID != "u1" || p.Role != identity.RoleAdmin {
		t.Fatalf("principal = %+v", p)
	}
}
