package service

import (
	"context"
	"strings"

	apperrors "github.com/louisbranch/jobboard/internal/platform/errors"
	"github.com/louisbranch/jobboard/internal/platform/pagination"
	"github.com/louisbranch/jobboard/internal/services/jobboard/domain/job"
	"github.com/louisbranch/jobboard/internal/services/jobboard/identity"
	"github.com/louisbranch/jobboard/internal/services/jobboard/policy"
	"github.com/louisbranch/jobboard/internal/services/jobboard/storage"
)

// JobQuery filters job listings. Type and Status accept any label the
// parsers do; Status is ignored for public listings.
type JobQuery struct {
	Search   string
	Location string
	Type     string
	Status   string
}

func (q JobQuery) filter() (storage.JobFilter, error) {
	filter := storage.JobFilter{Search: q.Search, Location: q.Location}
	if strings.TrimSpace(q.Type) != "" {
		jobType, ok := job.ParseType(q.Type)
		if !ok {
			return storage.JobFilter{}, apperrors.WithMetadata(apperrors.CodeJobInvalidType, "job type is invalid", map[string]string{"Type": q.Type})
		}
		filter.Type = jobType
	}
	if strings.TrimSpace(q.Status) != "" {
		status, err := job.ParseStatusInput(q.Status)
		if err != nil {
			return storage.JobFilter{}, err
		}
		filter.Status = status
	}
	return filter, nil
}

// ListJobs returns published jobs, newest first.
func (s *Service) ListJobs(ctx context.Context, principal identity.Principal, query JobQuery, req pagination.Request) (_ storage.JobPage, err error) {
	ctx, finish := s.start(ctx, "ListJobs", principal)
	defer finish(&err)

	if err := authorize(principal, policy.ActionList, policy.ResourceJob, policy.Target{}); err != nil {
		return storage.JobPage{}, err
	}
	query.Status = ""
	filter, err := query.filter()
	if err != nil {
		return storage.JobPage{}, err
	}
	filter.Status = job.StatusPublished
	page, err := s.store.ListJobs(ctx, filter, normalizePage(req))
	if err != nil {
		return storage.JobPage{}, storageError("list jobs", err, apperrors.CodeNotFound)
	}
	return page, nil
}

// ListManagedJobs returns the jobs principal manages, archived included.
// Recruiters see the jobs they created; admins see all.
func (s *Service) ListManagedJobs(ctx context.Context, principal identity.Principal, query JobQuery, req pagination.Request) (_ storage.JobPage, err error) {
	ctx, finish := s.start(ctx, "ListManagedJobs", principal)
	defer finish(&err)

	if err := authorize(principal, policy.ActionManage, policy.ResourceJob, policy.Target{}); err != nil {
		return storage.JobPage{}, err
	}
	filter, err := query.filter()
	if err != nil {
		return storage.JobPage{}, err
	}
	if scope := policy.ManagedJobScope(principal); !scope.All {
		filter.CreatedBy = scope.CreatedBy
	}
	page, err := s.store.ListJobs(ctx, filter, normalizePage(req))
	if err != nil {
		return storage.JobPage{}, storageError("list managed jobs", err, apperrors.CodeNotFound)
	}
	return page, nil
}

// GetJob returns a job with its company and creator. Archived jobs remain
// readable.
func (s *Service) GetJob(ctx context.Context, principal identity.Principal, id string) (_ job.Detail, err error) {
	ctx, finish := s.start(ctx, "GetJob", principal)
	defer finish(&err)

	if err := authorize(principal, policy.ActionRead, policy.ResourceJob, policy.Target{}); err != nil {
		return job.Detail{}, err
	}
	detail, err := s.store.GetJobDetail(ctx, id)
	if err != nil {
		return job.Detail{}, storageError("get job", err, apperrors.CodeJobNotFound)
	}
	return detail, nil
}

// CreateJob creates a published job created by principal. A recruiter that
// omits the company posts for their own.
func (s *Service) CreateJob(ctx context.Context, principal identity.Principal, input job.CreateJobInput) (_ job.Job, err error) {
	ctx, finish := s.start(ctx, "CreateJob", principal)
	defer finish(&err)

	if principal.HasRole(identity.RoleRecruiter) && strings.TrimSpace(input.CompanyID) == "" {
		input.CompanyID = principal.CompanyID
	}
	target := policy.Target{CompanyID: strings.TrimSpace(input.CompanyID)}
	if err := authorize(principal, policy.ActionCreate, policy.ResourceJob, target); err != nil {
		return job.Job{}, err
	}
	input.CreatedBy = principal.UserID
	created, err := job.CreateJob(input, s.clock, s.idGenerator)
	if err != nil {
		return job.Job{}, err
	}
	if err := s.store.CreateJob(ctx, created); err != nil {
		return job.Job{}, storageError("create job", err, apperrors.CodeJobNotFound)
	}
	return created, nil
}

// UpdateJob applies a partial update. Status and creator never change here,
// and recruiters cannot move a job to another company.
func (s *Service) UpdateJob(ctx context.Context, principal identity.Principal, id string, input job.UpdateJobInput) (_ job.Job, err error) {
	ctx, finish := s.start(ctx, "UpdateJob", principal)
	defer finish(&err)

	return s.updateJob(ctx, principal, policy.ActionUpdate, "update job", id, func(current job.Job) (job.Job, error) {
		updated, err := job.ApplyUpdate(current, input, s.clock)
		if err != nil {
			return job.Job{}, err
		}
		if updated.CompanyID != current.CompanyID && !principal.HasRole(identity.RoleAdmin) {
			if err := authorize(principal, policy.ActionCreate, policy.ResourceJob, policy.Target{CompanyID: updated.CompanyID}); err != nil {
				return job.Job{}, err
			}
		}
		return updated, nil
	})
}

// SetJobStatus publishes or archives a job.
func (s *Service) SetJobStatus(ctx context.Context, principal identity.Principal, id, status string) (_ job.Job, err error) {
	ctx, finish := s.start(ctx, "SetJobStatus", principal)
	defer finish(&err)

	return s.updateJob(ctx, principal, policy.ActionSetStatus, "set job status", id, func(current job.Job) (job.Job, error) {
		parsed, err := job.ParseStatusInput(status)
		if err != nil {
			return job.Job{}, err
		}
		current.Status = parsed
		current.UpdatedAt = s.now()
		return current, nil
	})
}

// ToggleJobStatus flips a job between PUBLISHED and ARCHIVED.
func (s *Service) ToggleJobStatus(ctx context.Context, principal identity.Principal, id string) (_ job.Job, err error) {
	ctx, finish := s.start(ctx, "ToggleJobStatus", principal)
	defer finish(&err)

	return s.updateJob(ctx, principal, policy.ActionSetStatus, "toggle job status", id, func(current job.Job) (job.Job, error) {
		current.Status = current.Status.Toggle()
		current.UpdatedAt = s.now()
		return current, nil
	})
}

// updateJob authorizes action against the stored job and applies change to
// it within a single store transaction.
func (s *Service) updateJob(ctx context.Context, principal identity.Principal, action policy.Action, op, id string, change func(job.Job) (job.Job, error)) (job.Job, error) {
	if err := precheck(principal, action, policy.ResourceJob); err != nil {
		return job.Job{}, err
	}
	updated, err := s.store.UpdateJob(ctx, id, func(current job.Job) (job.Job, error) {
		target := policy.Target{CompanyID: current.CompanyID, CreatedBy: current.CreatedBy}
		if err := authorize(principal, action, policy.ResourceJob, target); err != nil {
			return job.Job{}, err
		}
		return change(current)
	})
	if err != nil {
		return job.Job{}, storageError(op, err, apperrors.CodeJobNotFound)
	}
	return updated, nil
}

// DeleteJob deletes a job and its applications.
func (s *Service) DeleteJob(ctx context.Context, principal identity.Principal, id string) (err error) {
	ctx, finish := s.start(ctx, "DeleteJob", principal)
	defer finish(&err)

	if _, err := s.loadJob(ctx, principal, policy.ActionDelete, id); err != nil {
		return err
	}
	if err := s.store.DeleteJob(ctx, id); err != nil {
		return storageError("delete job", err, apperrors.CodeJobNotFound)
	}
	return nil
}

// loadJob reads a job and checks that principal may perform action on it.
func (s *Service) loadJob(ctx context.Context, principal identity.Principal, action policy.Action, id string) (job.Job, error) {
	if err := precheck(principal, action, policy.ResourceJob); err != nil {
		return job.Job{}, err
	}
	current, err := s.store.GetJob(ctx, id)
	if err != nil {
		return job.Job{}, storageError("load job", err, apperrors.CodeJobNotFound)
	}
	target := policy.Target{CompanyID: current.CompanyID, CreatedBy: current.CreatedBy}
	if err := authorize(principal, action, policy.ResourceJob, target); err != nil {
		return job.Job{}, err
	}
	return current, nil
}
