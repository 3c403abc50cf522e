package service

import (
	"context"
	"sync"
	"testing"

	apperrors "github.com/louisbranch/jobboard/internal/platform/errors"
	"github.com/louisbranch/jobboard/internal/services/jobboard/domain/job"
	"github.com/louisbranch/jobboard/internal/services/jobboard/identity"
)

func TestCreateJobRoundTrip(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	created := w.postJob(t, w.alice, "Go Engineer")
	if created.CompanyID != w.acme.ID {
		t.Fatalf("company = %q, want recruiter company %q", created.CompanyID, w.acme.ID)
	}
	if created.CreatedBy != w.alice.UserID {
		t.Fatalf("created by = %q, want %q", created.CreatedBy, w.alice.UserID)
	}
	if created.Status != job.StatusPublished {
		t.Fatalf("status = %s, want PUBLISHED", created.Status)
	}

	detail, err := w.svc.GetJob(ctx, identity.Anonymous(), created.ID)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if detail.Job != created {
		t.Fatalf("job = %+v, want %+v", detail.Job, created)
	}
	if detail.Company.Name != "Acme" || detail.Creator.Email != "alice@acme.test" {
		t.Fatalf("detail refs = %+v / %+v", detail.Company, detail.Creator)
	}
}

func TestCreateJobAccess(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	input := jobInput("Go Engineer")
	input.CompanyID = w.globex.ID
	_, err := w.svc.CreateJob(ctx, w.alice, input)
	requireCode(t, err, apperrors.CodeForbiddenNotOwner)

	_, err = w.svc.CreateJob(ctx, w.candidate, jobInput("Go Engineer"))
	requireCode(t, err, apperrors.CodeForbiddenRole)

	_, err = w.svc.CreateJob(ctx, identity.Anonymous(), jobInput("Go Engineer"))
	requireCode(t, err, apperrors.CodeAuthRequired)
	requireStatus(t, err, 401)

	_, err = w.svc.CreateJob(ctx, w.admin, jobInput("Go Engineer"))
	requireCode(t, err, apperrors.CodeJobCompanyEmpty)

	input.CompanyID = "missing"
	_, err = w.svc.CreateJob(ctx, w.admin, input)
	requireCode(t, err, apperrors.CodeCompanyNotFound)

	input.CompanyID = w.globex.ID
	input.Type = "temp"
	_, err = w.svc.CreateJob(ctx, w.admin, input)
	requireCode(t, err, apperrors.CodeJobInvalidType)
}

func TestToggleJobStatusTwice(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	posted := w.postJob(t, w.alice, "Go Engineer")

	archived, err := w.svc.ToggleJobStatus(ctx, w.alice, posted.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if archived.Status != job.StatusArchived {
		t.Fatalf("status = %s, want ARCHIVED", archived.Status)
	}

	public, err := w.svc.ListJobs(ctx, identity.Anonymous(), JobQuery{}, firstPage())
	if err != nil {
		t.Fatalf("list jobs: %v", err)
	}
	if len(public.Jobs) != 0 {
		t.Fatalf("public jobs = %d, want 0", len(public.Jobs))
	}
	managed, err := w.svc.ListManagedJobs(ctx, w.alice, JobQuery{}, firstPage())
	if err != nil {
		t.Fatalf("list managed jobs: %v", err)
	}
	if len(managed.Jobs) != 1 {
		t.Fatalf("managed jobs = %d, want 1", len(managed.Jobs))
	}
	if _, err := w.svc.GetJob(ctx, identity.Anonymous(), posted.ID); err != nil {
		t.Fatalf("archived job should stay readable: %v", err)
	}
	_, err = w.svc.SubmitApplication(ctx, identity.Anonymous(), applicationInput(posted.ID, "jane@x.com"))
	requireCode(t, err, apperrors.CodeJobNotPublished)
	requireStatus(t, err, 409)

	republished, err := w.svc.ToggleJobStatus(ctx, w.alice, posted.ID)
	if err != nil {
		t.Fatalf("toggle again: %v", err)
	}
	if republished.Status != job.StatusPublished {
		t.Fatalf("status = %s, want PUBLISHED", republished.Status)
	}
}

func TestConcurrentTogglesAllApply(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	posted := w.postJob(t, w.alice, "Go Engineer")

	const toggles = 6
	var wg sync.WaitGroup
	errs := make([]error, toggles)
	for i := 0; i < toggles; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = w.svc.ToggleJobStatus(ctx, w.alice, posted.ID)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}
	}
	stored, err := w.store.GetJob(ctx, posted.ID)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if stored.Status != job.StatusPublished {
		t.Fatalf("status = %s, want PUBLISHED after %d toggles", stored.Status, toggles)
	}
}

func TestSetJobStatus(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	posted := w.postJob(t, w.alice, "Go Engineer")

	got, err := w.svc.SetJobStatus(ctx, w.admin, posted.ID, "archived")
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if got.Status != job.StatusArchived {
		t.Fatalf("status = %s, want ARCHIVED", got.Status)
	}
	_, err = w.svc.SetJobStatus(ctx, w.alice, posted.ID, "closed")
	requireCode(t, err, apperrors.CodeJobInvalidStatus)
	_, err = w.svc.SetJobStatus(ctx, w.bob, posted.ID, "published")
	requireCode(t, err, apperrors.CodeForbiddenNotOwner)
}

func TestJobOwnership(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	posted := w.postJob(t, w.alice, "Go Engineer")
	title := "Senior Go Engineer"

	err := w.svc.DeleteJob(ctx, w.bob, posted.ID)
	requireCode(t, err, apperrors.CodeForbiddenNotOwner)
	requireStatus(t, err, 403)

	_, err = w.svc.UpdateJob(ctx, w.bob, posted.ID, job.UpdateJobInput{Title: &title})
	requireCode(t, err, apperrors.CodeForbiddenNotOwner)

	// Missing records are only reported to principals allowed to ask.
	err = w.svc.DeleteJob(ctx, w.bob, "missing")
	requireCode(t, err, apperrors.CodeJobNotFound)
	err = w.svc.DeleteJob(ctx, w.candidate, "missing")
	requireCode(t, err, apperrors.CodeForbiddenRole)

	moved := w.globex.ID
	_, err = w.svc.UpdateJob(ctx, w.alice, posted.ID, job.UpdateJobInput{CompanyID: &moved})
	requireCode(t, err, apperrors.CodeForbiddenNotOwner)

	updated, err := w.svc.UpdateJob(ctx, w.alice, posted.ID, job.UpdateJobInput{Title: &title})
	if err != nil {
		t.Fatalf("update job: %v", err)
	}
	if updated.Title != title || updated.Status != job.StatusPublished || updated.CreatedBy != w.alice.UserID {
		t.Fatalf("job = %+v", updated)
	}

	adminMoved, err := w.svc.UpdateJob(ctx, w.admin, posted.ID, job.UpdateJobInput{CompanyID: &moved})
	if err != nil {
		t.Fatalf("admin moves job: %v", err)
	}
	if adminMoved.CompanyID != w.globex.ID {
		t.Fatalf("company = %q, want %q", adminMoved.CompanyID, w.globex.ID)
	}

	if err := w.svc.DeleteJob(ctx, w.alice, posted.ID); err != nil {
		t.Fatalf("delete job: %v", err)
	}
	_, err = w.svc.GetJob(ctx, identity.Anonymous(), posted.ID)
	requireCode(t, err, apperrors.CodeJobNotFound)
}

func TestListJobsFilters(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	w.postJob(t, w.alice, "Go Engineer")
	intern := jobInput("Data Intern")
	intern.Type = "stage"
	intern.Location = "Lyon"
	if _, err := w.svc.CreateJob(ctx, w.bob, intern); err != nil {
		t.Fatalf("create intern job: %v", err)
	}
	w.postJob(t, w.gina, "Account Manager")

	tests := []struct {
		name  string
		query JobQuery
		want  int
	}{
		{name: "all", query: JobQuery{}, want: 3},
		{name: "search", query: JobQuery{Search: "intern"}, want: 1},
		{name: "location", query: JobQuery{Location: "lyon"}, want: 1},
		{name: "type alias", query: JobQuery{Type: "INTERNSHIP"}, want: 1},
		{name: "status ignored", query: JobQuery{Status: "ARCHIVED"}, want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := w.svc.ListJobs(ctx, identity.Anonymous(), tt.query, firstPage())
			if err != nil {
				t.Fatalf("list jobs: %v", err)
			}
			if page.Page.Total != tt.want {
				t.Fatalf("total = %d, want %d", page.Page.Total, tt.want)
			}
		})
	}

	_, err := w.svc.ListJobs(ctx, identity.Anonymous(), JobQuery{Type: "gig"}, firstPage())
	requireCode(t, err, apperrors.CodeJobInvalidType)

	managed, err := w.svc.ListManagedJobs(ctx, w.bob, JobQuery{}, firstPage())
	if err != nil {
		t.Fatalf("list managed: %v", err)
	}
	if managed.Page.Total != 1 || managed.Jobs[0].Title != "Data Intern" {
		t.Fatalf("managed = %+v, want only bob's job", managed.Jobs)
	}
	all, err := w.svc.ListManagedJobs(ctx, w.admin, JobQuery{}, firstPage())
	if err != nil {
		t.Fatalf("list managed as admin: %v", err)
	}
	if all.Page.Total != 3 {
		t.Fatalf("admin managed total = %d, want 3", all.Page.Total)
	}
	_, err = w.svc.ListManagedJobs(ctx, w.candidate, JobQuery{}, firstPage())
	requireCode(t, err, apperrors.CodeForbiddenRole)
}
