package service

import (
	"context"
	"strings"

	apperrors "github.com/louisbranch/jobboard/internal/platform/errors"
	"github.com/louisbranch/jobboard/internal/platform/pagination"
	"github.com/louisbranch/jobboard/internal/services/jobboard/domain/user"
	"github.com/louisbranch/jobboard/internal/services/jobboard/identity"
	"github.com/louisbranch/jobboard/internal/services/jobboard/policy"
	"github.com/louisbranch/jobboard/internal/services/jobboard/storage"
)

// UserQuery filters user listings. Role accepts any label ParseRole does.
type UserQuery struct {
	Search string
	Role   string
}

// ListUsers returns users with their company and activity counts.
func (s *Service) ListUsers(ctx context.Context, principal identity.Principal, query UserQuery, req pagination.Request) (_ storage.UserPage, err error) {
	ctx, finish := s.start(ctx, "ListUsers", principal)
	defer finish(&err)

	if err := authorize(principal, policy.ActionList, policy.ResourceUser, policy.Target{}); err != nil {
		return storage.UserPage{}, err
	}
	filter := storage.UserFilter{Search: query.Search}
	if strings.TrimSpace(query.Role) != "" {
		if filter.Role, err = user.ParseRoleInput(query.Role); err != nil {
			return storage.UserPage{}, err
		}
	}
	page, err := s.store.ListUsers(ctx, filter, normalizePage(req))
	if err != nil {
		return storage.UserPage{}, storageError("list users", err, apperrors.CodeNotFound)
	}
	return page, nil
}

// GetUser returns a user with their company. Non-admins may only read
// themselves.
func (s *Service) GetUser(ctx context.Context, principal identity.Principal, id string) (_ user.WithCompany, err error) {
	ctx, finish := s.start(ctx, "GetUser", principal)
	defer finish(&err)

	if err := authorize(principal, policy.ActionRead, policy.ResourceUser, policy.Target{UserID: id}); err != nil {
		return user.WithCompany{}, err
	}
	found, err := s.store.GetUserWithCompany(ctx, id)
	if err != nil {
		return user.WithCompany{}, storageError("get user", err, apperrors.CodeUserNotFound)
	}
	return found, nil
}

// CreateUser creates an account with any role. The referenced company must
// exist.
func (s *Service) CreateUser(ctx context.Context, principal identity.Principal, input user.CreateUserInput) (_ user.User, err error) {
	ctx, finish := s.start(ctx, "CreateUser", principal)
	defer finish(&err)

	if err := authorize(principal, policy.ActionCreate, policy.ResourceUser, policy.Target{}); err != nil {
		return user.User{}, err
	}
	created, err := user.CreateUser(input, user.MinAdminPasswordLength, s.hasher.Hash, s.clock, s.idGenerator)
	if err != nil {
		return user.User{}, err
	}
	if err := s.store.CreateUser(ctx, created); err != nil {
		return user.User{}, storageError("create user", err, apperrors.CodeUserNotFound)
	}
	return created, nil
}

// UpdateOwnProfile updates the caller's name, email, and phone.
func (s *Service) UpdateOwnProfile(ctx context.Context, principal identity.Principal, id string, input user.ProfileUpdate) (_ user.User, err error) {
	ctx, finish := s.start(ctx, "UpdateOwnProfile", principal)
	defer finish(&err)

	if err := authorize(principal, policy.ActionUpdateProfile, policy.ResourceUser, policy.Target{UserID: id}); err != nil {
		return user.User{}, err
	}
	return s.updateUser(ctx, "update profile", id, func(current user.User) (user.User, error) {
		return user.ApplyProfileUpdate(current, input, s.clock)
	})
}

// UpdateUser applies an admin update, including role and company.
func (s *Service) UpdateUser(ctx context.Context, principal identity.Principal, id string, input user.AdminUpdate) (_ user.User, err error) {
	ctx, finish := s.start(ctx, "UpdateUser", principal)
	defer finish(&err)

	if err := authorize(principal, policy.ActionUpdate, policy.ResourceUser, policy.Target{UserID: id}); err != nil {
		return user.User{}, err
	}
	return s.updateUser(ctx, "update user", id, func(current user.User) (user.User, error) {
		return user.ApplyAdminUpdate(current, input, s.clock)
	})
}

// UpdateUserRole changes a user's role.
func (s *Service) UpdateUserRole(ctx context.Context, principal identity.Principal, id, role string) (_ user.User, err error) {
	ctx, finish := s.start(ctx, "UpdateUserRole", principal)
	defer finish(&err)

	if err := authorize(principal, policy.ActionSetRole, policy.ResourceUser, policy.Target{UserID: id}); err != nil {
		return user.User{}, err
	}
	parsed, err := user.ParseRoleInput(role)
	if err != nil {
		return user.User{}, err
	}
	return s.updateUser(ctx, "update user role", id, func(current user.User) (user.User, error) {
		current.Role = parsed
		current.UpdatedAt = s.now()
		return current, nil
	})
}

// updateUser applies apply to the stored row inside the store's write
// transaction, so fields apply leaves alone keep their latest values.
func (s *Service) updateUser(ctx context.Context, op, id string, apply func(user.User) (user.User, error)) (user.User, error) {
	updated, err := s.store.UpdateUser(ctx, id, apply)
	if err != nil {
		return user.User{}, storageError(op, err, apperrors.CodeUserNotFound)
	}
	return updated, nil
}

// DeleteUser deletes an account. Admins cannot delete themselves and users
// who created jobs cannot be deleted.
func (s *Service) DeleteUser(ctx context.Context, principal identity.Principal, id string) (err error) {
	ctx, finish := s.start(ctx, "DeleteUser", principal)
	defer finish(&err)

	if err := authorize(principal, policy.ActionDelete, policy.ResourceUser, policy.Target{UserID: id}); err != nil {
		return err
	}
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return storageError("delete user", err, apperrors.CodeUserNotFound)
	}
	return nil
}
