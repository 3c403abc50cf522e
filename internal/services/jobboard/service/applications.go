package service

import (
	"context"
	"strings"

	apperrors "github.com/louisbranch/jobboard/internal/platform/errors"
	"github.com/louisbranch/jobboard/internal/platform/pagination"
	"github.com/louisbranch/jobboard/internal/services/jobboard/domain/application"
	"github.com/louisbranch/jobboard/internal/services/jobboard/identity"
	"github.com/louisbranch/jobboard/internal/services/jobboard/policy"
	"github.com/louisbranch/jobboard/internal/services/jobboard/storage"
)

// ApplicationQuery filters application listings within the caller's scope.
type ApplicationQuery struct {
	JobID  string
	Status string
}

// SubmitApplication applies to a published job. Authenticated applicants
// are linked to the application; the same identity may apply once per job.
func (s *Service) SubmitApplication(ctx context.Context, principal identity.Principal, input application.SubmitInput) (_ application.Application, err error) {
	ctx, finish := s.start(ctx, "SubmitApplication", principal)
	defer finish(&err)

	if err := authorize(principal, policy.ActionCreate, policy.ResourceApplication, policy.Target{}); err != nil {
		return application.Application{}, err
	}
	input.UserID = principal.UserID
	created, err := application.CreateApplication(input, s.clock, s.idGenerator)
	if err != nil {
		return application.Application{}, err
	}
	if err := s.store.CreateApplication(ctx, created); err != nil {
		return application.Application{}, storageError("submit application", err, apperrors.CodeJobNotFound)
	}
	return created, nil
}

// ListApplications returns the applications principal may see: admins see
// all, recruiters those to jobs they created, candidates their own.
func (s *Service) ListApplications(ctx context.Context, principal identity.Principal, query ApplicationQuery, req pagination.Request) (_ storage.ApplicationPage, err error) {
	ctx, finish := s.start(ctx, "ListApplications", principal)
	defer finish(&err)

	if err := authorize(principal, policy.ActionList, policy.ResourceApplication, policy.Target{}); err != nil {
		return storage.ApplicationPage{}, err
	}
	scope := policy.ApplicationListScope(principal)
	filter := storage.ApplicationFilter{
		JobID:        strings.TrimSpace(query.JobID),
		UserID:       scope.ApplicantUserID,
		JobCreatedBy: scope.JobCreatedBy,
	}
	if strings.TrimSpace(query.Status) != "" {
		if filter.Status, err = application.ParseStatusInput(query.Status); err != nil {
			return storage.ApplicationPage{}, err
		}
	}
	page, err := s.store.ListApplications(ctx, filter, normalizePage(req))
	if err != nil {
		return storage.ApplicationPage{}, storageError("list applications", err, apperrors.CodeNotFound)
	}
	return page, nil
}

// GetApplication returns one application.
func (s *Service) GetApplication(ctx context.Context, principal identity.Principal, id string) (_ application.Detail, err error) {
	ctx, finish := s.start(ctx, "GetApplication", principal)
	defer finish(&err)

	return s.loadApplication(ctx, principal, policy.ActionRead, id)
}

// SetApplicationStatus moves an application to any status.
func (s *Service) SetApplicationStatus(ctx context.Context, principal identity.Principal, id, status string) (_ application.Detail, err error) {
	ctx, finish := s.start(ctx, "SetApplicationStatus", principal)
	defer finish(&err)

	current, err := s.loadApplication(ctx, principal, policy.ActionSetStatus, id)
	if err != nil {
		return application.Detail{}, err
	}
	parsed, err := application.ParseStatusInput(status)
	if err != nil {
		return application.Detail{}, err
	}
	current.Status = parsed
	current.UpdatedAt = s.now()
	if err := s.store.SetApplicationStatus(ctx, id, parsed, current.UpdatedAt); err != nil {
		return application.Detail{}, storageError("set application status", err, apperrors.CodeApplicationNotFound)
	}
	return current, nil
}

// DeleteApplication deletes one application.
func (s *Service) DeleteApplication(ctx context.Context, principal identity.Principal, id string) (err error) {
	ctx, finish := s.start(ctx, "DeleteApplication", principal)
	defer finish(&err)

	if err := authorize(principal, policy.ActionDelete, policy.ResourceApplication, policy.Target{}); err != nil {
		return err
	}
	if err := s.store.DeleteApplication(ctx, id); err != nil {
		return storageError("delete application", err, apperrors.CodeApplicationNotFound)
	}
	return nil
}

func (s *Service) loadApplication(ctx context.Context, principal identity.Principal, action policy.Action, id string) (application.Detail, error) {
	if err := precheck(principal, action, policy.ResourceApplication); err != nil {
		return application.Detail{}, err
	}
	current, err := s.store.GetApplication(ctx, id)
	if err != nil {
		return application.Detail{}, storageError("load application", err, apperrors.CodeApplicationNotFound)
	}
	target := policy.Target{
		ApplicantUserID: current.UserID,
		JobCreatedBy:    current.JobCreatedBy,
		CompanyID:       current.CompanyID,
	}
	if err := authorize(principal, action, policy.ResourceApplication, target); err != nil {
		return application.Detail{}, err
	}
	return current, nil
}
