package service

import (
	"context"

	apperrors "github.com/louisbranch/jobboard/internal/platform/errors"
	"github.com/louisbranch/jobboard/internal/platform/pagination"
	"github.com/louisbranch/jobboard/internal/services/jobboard/domain/company"
	"github.com/louisbranch/jobboard/internal/services/jobboard/identity"
	"github.com/louisbranch/jobboard/internal/services/jobboard/policy"
	"github.com/louisbranch/jobboard/internal/services/jobboard/storage"
)

// ListCompanies returns companies matching search, ordered by name.
func (s *Service) ListCompanies(ctx context.Context, principal identity.Principal, search string, req pagination.Request) (_ storage.CompanyPage, err error) {
	ctx, finish := s.start(ctx, "ListCompanies", principal)
	defer finish(&err)

	if err := authorize(principal, policy.ActionList, policy.ResourceCompany, policy.Target{}); err != nil {
		return storage.CompanyPage{}, err
	}
	page, err := s.store.ListCompanies(ctx, storage.CompanyFilter{Search: search}, normalizePage(req))
	if err != nil {
		return storage.CompanyPage{}, storageError("list companies", err, apperrors.CodeNotFound)
	}
	return page, nil
}

// GetCompany returns a company with its jobs and recruiters.
func (s *Service) GetCompany(ctx context.Context, principal identity.Principal, id string) (_ company.Detail, err error) {
	ctx, finish := s.start(ctx, "GetCompany", principal)
	defer finish(&err)

	if err := authorize(principal, policy.ActionRead, policy.ResourceCompany, policy.Target{CompanyID: id}); err != nil {
		return company.Detail{}, err
	}
	detail, err := s.store.GetCompanyDetail(ctx, id)
	if err != nil {
		return company.Detail{}, storageError("get company", err, apperrors.CodeCompanyNotFound)
	}
	return detail, nil
}

// CreateCompany creates a company with a unique name.
func (s *Service) CreateCompany(ctx context.Context, principal identity.Principal, input company.CreateCompanyInput) (_ company.Company, err error) {
	ctx, finish := s.start(ctx, "CreateCompany", principal)
	defer finish(&err)

	if err := authorize(principal, policy.ActionCreate, policy.ResourceCompany, policy.Target{}); err != nil {
		return company.Company{}, err
	}
	created, err := company.CreateCompany(input, s.clock, s.idGenerator)
	if err != nil {
		return company.Company{}, err
	}
	if err := s.store.CreateCompany(ctx, created); err != nil {
		return company.Company{}, withName(storageError("create company", err, apperrors.CodeCompanyNotFound), created.Name)
	}
	return created, nil
}

// UpdateCompany applies a partial update. Recruiters may only update their
// own company.
func (s *Service) UpdateCompany(ctx context.Context, principal identity.Principal, id string, input company.UpdateCompanyInput) (_ company.Company, err error) {
	ctx, finish := s.start(ctx, "UpdateCompany", principal)
	defer finish(&err)

	if err := authorize(principal, policy.ActionUpdate, policy.ResourceCompany, policy.Target{CompanyID: id}); err != nil {
		return company.Company{}, err
	}
	var name string
	updated, err := s.store.UpdateCompany(ctx, id, func(current company.Company) (company.Company, error) {
		next, err := company.ApplyUpdate(current, input, s.clock)
		name = next.Name
		return next, err
	})
	if err != nil {
		return company.Company{}, withName(storageError("update company", err, apperrors.CodeCompanyNotFound), name)
	}
	return updated, nil
}

// DeleteCompany deletes a company no job or user references.
func (s *Service) DeleteCompany(ctx context.Context, principal identity.Principal, id string) (err error) {
	ctx, finish := s.start(ctx, "DeleteCompany", principal)
	defer finish(&err)

	if err := authorize(principal, policy.ActionDelete, policy.ResourceCompany, policy.Target{CompanyID: id}); err != nil {
		return err
	}
	if err := s.store.DeleteCompany(ctx, id); err != nil {
		return storageError("delete company", err, apperrors.CodeCompanyNotFound)
	}
	return nil
}

// withName adds the company name to a name conflict for message templating.
func withName(err error, name string) error {
	domainErr, ok := apperrors.As(err)
	if !ok || domainErr.Code != apperrors.CodeCompanyNameTaken {
		return err
	}
	return apperrors.WrapWithMetadata(domainErr.Code, domainErr.Message, map[string]string{"Name": name}, domainErr.Cause)
}

func normalizePage(req pagination.Request) pagination.Request {
	return pagination.NewRequest(req.Page, req.Limit, pagination.DefaultPageSize)
}
