package service

import (
	"context"
	"testing"

	apperrors "github.com/louisbranch/jobboard/internal/platform/errors"
	"github.com/louisbranch/jobboard/internal/services/jobboard/domain/company"
	"github.com/louisbranch/jobboard/internal/services/jobboard/identity"
)

func TestCreateCompanyRejectsDuplicateName(t *testing.T) {
	w := newWorld(t)

	_, err := w.svc.CreateCompany(context.Background(), w.admin, company.CreateCompanyInput{Name: "acme", Place: "Nantes"})
	requireCode(t, err, apperrors.CodeCompanyNameTaken)
	requireStatus(t, err, 409)
	domainErr, _ := apperrors.As(err)
	if domainErr.Metadata["Name"] != "acme" {
		t.Fatalf("metadata = %v, want Name=acme", domainErr.Metadata)
	}
}

func TestCompanyAccess(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	info := "We make anvils."

	tests := []struct {
		name      string
		principal identity.Principal
		run       func(identity.Principal) error
		want      apperrors.Code
	}{
		{
			name:      "anonymous create",
			principal: identity.Anonymous(),
			run: func(p identity.Principal) error {
				_, err := w.svc.CreateCompany(ctx, p, company.CreateCompanyInput{Name: "Initech", Place: "Austin"})
				return err
			},
			want: apperrors.CodeAuthRequired,
		},
		{
			name:      "recruiter create",
			principal: w.alice,
			run: func(p identity.Principal) error {
				_, err := w.svc.CreateCompany(ctx, p, company.CreateCompanyInput{Name: "Initech", Place: "Austin"})
				return err
			},
			want: apperrors.CodeForbiddenRole,
		},
		{
			name:      "recruiter updates other company",
			principal: w.alice,
			run: func(p identity.Principal) error {
				_, err := w.svc.UpdateCompany(ctx, p, w.globex.ID, company.UpdateCompanyInput{Info: &info})
				return err
			},
			want: apperrors.CodeForbiddenNotOwner,
		},
		{
			name:      "candidate updates company",
			principal: w.candidate,
			run: func(p identity.Principal) error {
				_, err := w.svc.UpdateCompany(ctx, p, w.acme.ID, company.UpdateCompanyInput{Info: &info})
				return err
			},
			want: apperrors.CodeForbiddenRole,
		},
		{
			name:      "recruiter deletes company",
			principal: w.alice,
			run: func(p identity.Principal) error {
				return w.svc.DeleteCompany(ctx, p, w.acme.ID)
			},
			want: apperrors.CodeForbiddenRole,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireCode(t, tt.run(tt.principal), tt.want)
		})
	}

	updated, err := w.svc.UpdateCompany(ctx, w.alice, w.acme.ID, company.UpdateCompanyInput{Info: &info})
	if err != nil {
		t.Fatalf("recruiter updates own company: %v", err)
	}
	if updated.Info != info || updated.Name != "Acme" {
		t.Fatalf("company = %+v, want info updated and name kept", updated)
	}
}

func TestDeleteCompanyIsGuarded(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	posted := w.postJob(t, w.gina, "Sales Lead")

	err := w.svc.DeleteCompany(ctx, w.admin, w.globex.ID)
	requireCode(t, err, apperrors.CodeCompanyHasDependents)
	requireStatus(t, err, 409)
	domainErr, _ := apperrors.As(err)
	if domainErr.Metadata["Jobs"] != "1" || domainErr.Metadata["Users"] != "1" {
		t.Fatalf("metadata = %v, want Jobs=1 Users=1", domainErr.Metadata)
	}

	if err := w.svc.DeleteJob(ctx, w.gina, posted.ID); err != nil {
		t.Fatalf("delete job: %v", err)
	}
	empty := ""
	if _, err := w.svc.UpdateUser(ctx, w.admin, w.gina.UserID, adminUpdateCompany(&empty)); err != nil {
		t.Fatalf("unlink recruiter: %v", err)
	}
	if err := w.svc.DeleteCompany(ctx, w.admin, w.globex.ID); err != nil {
		t.Fatalf("delete company: %v", err)
	}
	_, err = w.svc.GetCompany(ctx, identity.Anonymous(), w.globex.ID)
	requireCode(t, err, apperrors.CodeCompanyNotFound)
	requireStatus(t, err, 404)
}

func TestGetCompanyDetailAndList(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	w.postJob(t, w.alice, "Go Engineer")

	detail, err := w.svc.GetCompany(ctx, identity.Anonymous(), w.acme.ID)
	if err != nil {
		t.Fatalf("get company: %v", err)
	}
	if len(detail.Jobs) != 1 || detail.Jobs[0].Title != "Go Engineer" {
		t.Fatalf("jobs = %+v, want Go Engineer", detail.Jobs)
	}
	if len(detail.Recruiters) != 2 {
		t.Fatalf("recruiters = %d, want 2", len(detail.Recruiters))
	}

	page, err := w.svc.ListCompanies(ctx, identity.Anonymous(), "glo", firstPage())
	if err != nil {
		t.Fatalf("list companies: %v", err)
	}
	if len(page.Companies) != 1 || page.Companies[0].Name != "Globex" {
		t.Fatalf("companies = %+v, want Globex", page.Companies)
	}
}
