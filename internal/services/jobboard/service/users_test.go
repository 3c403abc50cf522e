package service

import (
	"context"
	"testing"

	apperrors "github.com/louisbranch/jobboard/internal/platform/errors"
	"github.com/louisbranch/jobboard/internal/services/jobboard/domain/user"
	"github.com/louisbranch/jobboard/internal/services/jobboard/identity"
)

func adminUpdateCompany(companyID *string) user.AdminUpdate {
	return user.AdminUpdate{CompanyID: companyID}
}

func TestAdminCannotDeleteSelf(t *testing.T) {
	w := newWorld(t)

	err := w.svc.DeleteUser(context.Background(), w.admin, w.admin.UserID)
	requireCode(t, err, apperrors.CodeUserCannotDeleteSelf)
	requireStatus(t, err, 400)
}

func TestDeleteUser(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	posted := w.postJob(t, w.alice, "Go Engineer")
	submitted := w.apply(t, w.candidate, posted.ID, "carol@mail.test")

	err := w.svc.DeleteUser(ctx, w.admin, w.alice.UserID)
	requireCode(t, err, apperrors.CodeUserHasJobs)
	requireStatus(t, err, 409)

	err = w.svc.DeleteUser(ctx, w.alice, w.bob.UserID)
	requireCode(t, err, apperrors.CodeForbiddenRole)

	if err := w.svc.DeleteUser(ctx, w.admin, w.candidate.UserID); err != nil {
		t.Fatalf("delete candidate: %v", err)
	}
	kept, err := w.svc.GetApplication(ctx, w.admin, submitted.ID)
	if err != nil {
		t.Fatalf("application should survive its applicant: %v", err)
	}
	if kept.UserID != "" || kept.User != nil {
		t.Fatalf("application still linked: %+v", kept)
	}
	err = w.svc.DeleteUser(ctx, w.admin, w.candidate.UserID)
	requireCode(t, err, apperrors.CodeUserNotFound)
}

func TestDeleteUserCollidingWithAnonymousApplication(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	posted := w.postJob(t, w.alice, "Go Engineer")
	w.apply(t, identity.Anonymous(), posted.ID, "carol@mail.test")
	w.apply(t, w.candidate, posted.ID, "carol@mail.test")

	err := w.svc.DeleteUser(ctx, w.admin, w.candidate.UserID)
	requireCode(t, err, apperrors.CodeApplicationDuplicate)
	requireStatus(t, err, 409)

	if _, err := w.svc.GetUser(ctx, w.admin, w.candidate.UserID); err != nil {
		t.Fatalf("user should survive the failed delete: %v", err)
	}
}

func TestUserAccess(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	self, err := w.svc.GetUser(ctx, w.candidate, w.candidate.UserID)
	if err != nil {
		t.Fatalf("read self: %v", err)
	}
	if self.Email != "carol@mail.test" || self.Company != nil {
		t.Fatalf("self = %+v", self)
	}
	_, err = w.svc.GetUser(ctx, w.candidate, w.alice.UserID)
	requireCode(t, err, apperrors.CodeForbiddenNotOwner)
	_, err = w.svc.ListUsers(ctx, w.alice, UserQuery{}, firstPage())
	requireCode(t, err, apperrors.CodeForbiddenRole)

	name := "Caroline"
	updated, err := w.svc.UpdateOwnProfile(ctx, w.candidate, w.candidate.UserID, user.ProfileUpdate{FirstName: &name})
	if err != nil {
		t.Fatalf("update own profile: %v", err)
	}
	if updated.FirstName != name || updated.Role != identity.RoleCandidate {
		t.Fatalf("updated = %+v", updated)
	}
	_, err = w.svc.UpdateOwnProfile(ctx, w.candidate, w.alice.UserID, user.ProfileUpdate{FirstName: &name})
	requireCode(t, err, apperrors.CodeForbiddenNotOwner)

	taken := "ALICE@acme.test"
	_, err = w.svc.UpdateOwnProfile(ctx, w.candidate, w.candidate.UserID, user.ProfileUpdate{Email: &taken})
	requireCode(t, err, apperrors.CodeUserEmailTaken)
}

func TestAdminUserManagement(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	_, err := w.svc.CreateUser(ctx, w.admin, user.CreateUserInput{
		FirstName: "Mo", LastName: "Lee", Email: "mo@x.com", Password: "secret1", Role: "RECRUITER", CompanyID: "missing",
	})
	requireCode(t, err, apperrors.CodeCompanyNotFound)

	_, err = w.svc.UpdateUserRole(ctx, w.admin, w.candidate.UserID, "boss")
	requireCode(t, err, apperrors.CodeUserInvalidRole)
	promoted, err := w.svc.UpdateUserRole(ctx, w.admin, w.candidate.UserID, "recruiter")
	if err != nil {
		t.Fatalf("update role: %v", err)
	}
	if promoted.Role != identity.RoleRecruiter {
		t.Fatalf("role = %s, want RECRUITER", promoted.Role)
	}

	companyID := w.globex.ID
	moved, err := w.svc.UpdateUser(ctx, w.admin, w.candidate.UserID, adminUpdateCompany(&companyID))
	if err != nil {
		t.Fatalf("update user: %v", err)
	}
	if moved.CompanyID != w.globex.ID {
		t.Fatalf("company = %q, want %q", moved.CompanyID, w.globex.ID)
	}

	recruiters, err := w.svc.ListUsers(ctx, w.admin, UserQuery{Role: "RECRUITER"}, firstPage())
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if recruiters.Page.Total != 4 {
		t.Fatalf("recruiters = %d, want 4", recruiters.Page.Total)
	}
	_, err = w.svc.ListUsers(ctx, w.admin, UserQuery{Role: "boss"}, firstPage())
	requireCode(t, err, apperrors.CodeUserInvalidRole)
}

func TestGetStatistics(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	posted := w.postJob(t, w.alice, "Go Engineer")
	w.apply(t, w.candidate, posted.ID, "carol@mail.test")

	stats, err := w.svc.GetStatistics(ctx, w.alice)
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if stats.Companies != 2 || stats.Users != 5 || stats.Jobs != 1 || stats.Applications != 1 {
		t.Fatalf("stats = %+v", stats)
	}
	if stats.UsersByRole[identity.RoleRecruiter] != 3 {
		t.Fatalf("recruiters = %d, want 3", stats.UsersByRole[identity.RoleRecruiter])
	}
	_, err = w.svc.GetStatistics(ctx, w.candidate)
	requireCode(t, err, apperrors.CodeForbiddenRole)
}
