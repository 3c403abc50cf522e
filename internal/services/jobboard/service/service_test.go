package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/louisbranch/jobboard/internal/platform/errors"
	"github.com/louisbranch/jobboard/internal/platform/pagination"
	"github.com/louisbranch/jobboard/internal/services/jobboard/domain/application"
	"github.com/louisbranch/jobboard/internal/services/jobboard/domain/company"
	"github.com/louisbranch/jobboard/internal/services/jobboard/domain/job"
	"github.com/louisbranch/jobboard/internal/services/jobboard/domain/user"
	"github.com/louisbranch/jobboard/internal/services/jobboard/identity"
	"github.com/louisbranch/jobboard/internal/services/jobboard/storage"
	"github.com/louisbranch/jobboard/internal/services/jobboard/storage/sqlite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"
)

var testNow = time.Date(2026, time.March, 1, 9, 30, 0, 0, time.UTC)

var testSecret = []byte(strings.Repeat("s", identity.MinSecretBytes))

func fixedClock() time.Time { return testNow }

func testHasher() identity.PasswordHasher {
	return identity.NewPasswordHasher(bcrypt.MinCost)
}

func newTestService(t *testing.T, opts ...Option) (*Service, *sqlite.Store) {
	t.Helper()

	store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "jobboard.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	issuer, err := identity.NewTokenIssuer(identity.TokenConfig{Secret: testSecret, Issuer: "jobboard", TTL: time.Hour, Now: fixedClock})
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	var seq atomic.Int64
	base := []Option{
		WithClock(fixedClock),
		WithIDGenerator(func() (string, error) {
			return fmt.Sprintf("id-%03d", seq.Add(1)), nil
		}),
		WithPasswordHasher(testHasher()),
	}
	return New(store, issuer, append(base, opts...)...), store
}

// world is a small populated board: two companies, two recruiters at Acme,
// one at Globex, and a candidate.
type world struct {
	svc       *Service
	store     *sqlite.Store
	admin     identity.Principal
	acme      company.Company
	globex    company.Company
	alice     identity.Principal
	bob       identity.Principal
	gina      identity.Principal
	candidate identity.Principal
}

func newWorld(t *testing.T) *world {
	t.Helper()

	svc, store := newTestService(t)
	w := &world{svc: svc, store: store}
	w.admin = seedAdmin(t, store)
	w.acme = w.createCompany(t, "Acme")
	w.globex = w.createCompany(t, "Globex")
	w.alice = w.createUser(t, "Alice", "alice@acme.test", "RECRUITER", w.acme.ID)
	w.bob = w.createUser(t, "Bob", "bob@acme.test", "RECRUITER", w.acme.ID)
	w.gina = w.createUser(t, "Gina", "gina@globex.test", "RECRUITER", w.globex.ID)
	w.candidate = w.createUser(t, "Carol", "carol@mail.test", "CANDIDATE", "")
	return w
}

func seedAdmin(t *testing.T, store storage.Store) identity.Principal {
	t.Helper()

	admin, err := user.CreateUser(user.CreateUserInput{
		FirstName: "Ada",
		LastName:  "Admin",
		Email:     "admin@jobboard.test",
		Password:  "secret1",
		Role:      "ADMIN",
	}, user.MinAdminPasswordLength, testHasher().Hash, fixedClock, func() (string, error) { return "admin-1", nil })
	if err != nil {
		t.Fatalf("build admin: %v", err)
	}
	if err := store.CreateUser(context.Background(), admin); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	return admin.Principal()
}

func (w *world) createCompany(t *testing.T, name string) company.Company {
	t.Helper()

	created, err := w.svc.CreateCompany(context.Background(), w.admin, company.CreateCompanyInput{
		Name:    name,
		Place:   "Lyon",
		Website: "https://" + strings.ToLower(name) + ".test",
	})
	if err != nil {
		t.Fatalf("create company %q: %v", name, err)
	}
	return created
}

func (w *world) createUser(t *testing.T, firstName, email, role, companyID string) identity.Principal {
	t.Helper()

	created, err := w.svc.CreateUser(context.Background(), w.admin, user.CreateUserInput{
		FirstName: firstName,
		LastName:  "Tester",
		Email:     email,
		Password:  "secret1",
		Role:      role,
		CompanyID: companyID,
	})
	if err != nil {
		t.Fatalf("create user %q: %v", email, err)
	}
	return created.Principal()
}

func (w *world) postJob(t *testing.T, principal identity.Principal, title string) job.Job {
	t.Helper()

	created, err := w.svc.CreateJob(context.Background(), principal, jobInput(title))
	if err != nil {
		t.Fatalf("create job %q: %v", title, err)
	}
	return created
}

func (w *world) apply(t *testing.T, principal identity.Principal, jobID, email string) application.Application {
	t.Helper()

	created, err := w.svc.SubmitApplication(context.Background(), principal, applicationInput(jobID, email))
	if err != nil {
		t.Fatalf("submit application: %v", err)
	}
	return created
}

func jobInput(title string) job.CreateJobInput {
	salary := "42000"
	return job.CreateJobInput{
		Title:            title,
		Type:             "PERMANENT",
		ShortDescription: "Build things",
		Description:      "Build many things with care.",
		Salary:           &salary,
		Location:         "Paris",
	}
}

func applicationInput(jobID, email string) application.SubmitInput {
	return application.SubmitInput{
		JobID:          jobID,
		Message:        "I would love to join.",
		ApplicantName:  "Jane Doe",
		ApplicantEmail: email,
	}
}

func firstPage() pagination.Request {
	return pagination.Request{Page: 1, Limit: 50}
}

func requireCode(t *testing.T, err error, code apperrors.Code) {
	t.Helper()

	if err == nil {
		t.Fatalf("error = nil, want %s", code)
	}
	if got := apperrors.CodeOf(err); got != code {
		t.Fatalf("code = %s, want %s (err: %v)", got, code, err)
	}
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()

	domainErr, ok := apperrors.As(err)
	if !ok {
		t.Fatalf("error %v is not a domain error", err)
	}
	if got := domainErr.HTTPStatus(); got != status {
		t.Fatalf("status = %d, want %d", got, status)
	}
}

type failingStore struct {
	storage.Store
	err error
}

func (s failingStore) ListCompanies(context.Context, storage.CompanyFilter, pagination.Request) (storage.CompanyPage, error) {
	return storage.CompanyPage{}, s.err
}

func (s failingStore) GetStatistics(context.Context) (storage.Statistics, error) {
	return storage.Statistics{}, s.err
}

// interleavingStore runs a competing write once, just before the next
// update reaches the underlying store.
type interleavingStore struct {
	storage.Store
	mu    sync.Mutex
	write func()
}

func (s *interleavingStore) competingWrite() {
	s.mu.Lock()
	write := s.write
	s.write = nil
	s.mu.Unlock()
	if write != nil {
		write()
	}
}

func (s *interleavingStore) UpdateCompany(ctx context.Context, id string, apply func(company.Company) (company.Company, error)) (company.Company, error) {
	s.competingWrite()
	return s.Store.UpdateCompany(ctx, id, apply)
}

func (s *interleavingStore) UpdateUser(ctx context.Context, id string, apply func(user.User) (user.User, error)) (user.User, error) {
	s.competingWrite()
	return s.Store.UpdateUser(ctx, id, apply)
}

func (s *interleavingStore) UpdateJob(ctx context.Context, id string, apply func(job.Job) (job.Job, error)) (job.Job, error) {
	s.competingWrite()
	return s.Store.UpdateJob(ctx, id, apply)
}

// interleaved returns a service whose next update first runs write through
// w.svc.
func (w *world) interleaved(write func()) *Service {
	return New(&interleavingStore{Store: w.store, write: write}, nil, WithClock(fixedClock))
}

func TestUpdateKeepsConcurrentChanges(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	phone := "+33 6 12 34 56 78"
	svc := w.interleaved(func() {
		if _, err := w.svc.UpdateUserRole(ctx, w.admin, w.candidate.UserID, "RECRUITER"); err != nil {
			t.Errorf("concurrent role change: %v", err)
		}
	})
	edited, err := svc.UpdateOwnProfile(ctx, w.candidate, w.candidate.UserID, user.ProfileUpdate{Phone: &phone})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if edited.Role != identity.RoleRecruiter || edited.Phone != phone {
		t.Fatalf("edited = %+v, want RECRUITER with new phone", edited)
	}
	stored, err := w.store.GetUser(ctx, w.candidate.UserID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if stored.Role != identity.RoleRecruiter {
		t.Fatalf("stored role = %s, want RECRUITER", stored.Role)
	}

	posted := w.postJob(t, w.alice, "Go Engineer")
	title := "Staff Go Engineer"
	svc = w.interleaved(func() {
		if _, err := w.svc.SetJobStatus(ctx, w.admin, posted.ID, "ARCHIVED"); err != nil {
			t.Errorf("concurrent archive: %v", err)
		}
	})
	renamed, err := svc.UpdateJob(ctx, w.alice, posted.ID, job.UpdateJobInput{Title: &title})
	if err != nil {
		t.Fatalf("update job: %v", err)
	}
	if renamed.Title != title || renamed.Status != job.StatusArchived {
		t.Fatalf("renamed = %+v, want new title and ARCHIVED", renamed)
	}

	info := "We build rockets."
	website := "https://acme.example"
	svc = w.interleaved(func() {
		if _, err := w.svc.UpdateCompany(ctx, w.admin, w.acme.ID, company.UpdateCompanyInput{Website: &website}); err != nil {
			t.Errorf("concurrent company update: %v", err)
		}
	})
	updated, err := svc.UpdateCompany(ctx, w.alice, w.acme.ID, company.UpdateCompanyInput{Info: &info})
	if err != nil {
		t.Fatalf("update company: %v", err)
	}
	if updated.Info != info || updated.Website != website {
		t.Fatalf("company = %+v, want both edits kept", updated)
	}
}

func TestConcurrentProfileEditsKeepRoleChange(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	const editors = 5
	var wg sync.WaitGroup
	errs := make([]error, editors+1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, errs[editors] = w.svc.UpdateUserRole(ctx, w.admin, w.candidate.UserID, "RECRUITER")
	}()
	for i := 0; i < editors; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			phone := fmt.Sprintf("+33 6 00 00 00 %02d", i)
			_, errs[i] = w.svc.UpdateOwnProfile(ctx, w.candidate, w.candidate.UserID, user.ProfileUpdate{Phone: &phone})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("update %d: %v", i, err)
		}
	}
	stored, err := w.store.GetUser(ctx, w.candidate.UserID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if stored.Role != identity.RoleRecruiter {
		t.Fatalf("role = %s, want RECRUITER", stored.Role)
	}
}

func TestStorageErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperrors.Code
	}{
		{name: "not found", err: storage.ErrNotFound, want: apperrors.CodeJobNotFound},
		{name: "wrapped not found", err: fmt.Errorf("get: %w", storage.ErrNotFound), want: apperrors.CodeJobNotFound},
		{name: "company name", err: &storage.ConflictError{Field: storage.FieldCompanyName}, want: apperrors.CodeCompanyNameTaken},
		{name: "email", err: &storage.ConflictError{Field: storage.FieldUserEmail}, want: apperrors.CodeUserEmailTaken},
		{name: "application", err: &storage.ConflictError{Field: storage.FieldApplication}, want: apperrors.CodeApplicationDuplicate},
		{name: "other conflict", err: &storage.ConflictError{Field: "slug"}, want: apperrors.CodeConflict},
		{name: "bare conflict", err: storage.ErrAlreadyExists, want: apperrors.CodeConflict},
		{name: "company reference", err: &storage.ReferenceError{Entity: storage.EntityCompany}, want: apperrors.CodeCompanyNotFound},
		{name: "job reference", err: &storage.ReferenceError{Entity: storage.EntityJob}, want: apperrors.CodeJobNotFound},
		{name: "job not published", err: storage.ErrJobNotPublished, want: apperrors.CodeJobNotPublished},
		{name: "domain error", err: job.ErrTitleEmpty, want: apperrors.CodeJobTitleEmpty},
		{name: "company dependents", err: &storage.DependencyError{Entity: storage.EntityCompany, Jobs: 1}, want: apperrors.CodeCompanyHasDependents},
		{name: "user jobs", err: &storage.DependencyError{Entity: storage.EntityUser, Jobs: 2}, want: apperrors.CodeUserHasJobs},
		{name: "deadline", err: context.DeadlineExceeded, want: apperrors.CodeInternal},
		{name: "unknown", err: errors.New("disk full"), want: apperrors.CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireCode(t, storageError("op", tt.err, apperrors.CodeJobNotFound), tt.want)
		})
	}
}

func TestDependencyErrorMetadata(t *testing.T) {
	err := storageError("delete company", &storage.DependencyError{Entity: storage.EntityCompany, Jobs: 3, Users: 1}, apperrors.CodeCompanyNotFound)
	domainErr, ok := apperrors.As(err)
	if !ok {
		t.Fatalf("error %v is not a domain error", err)
	}
	if domainErr.Metadata["Jobs"] != "3" || domainErr.Metadata["Users"] != "1" {
		t.Fatalf("metadata = %v, want Jobs=3 Users=1", domainErr.Metadata)
	}
}

func TestInternalErrorsAreLoggedAndHidden(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	svc := New(failingStore{err: errors.New("database is locked")}, nil, WithLogger(zap.New(core)))

	_, err := svc.ListCompanies(context.Background(), identity.Anonymous(), "", firstPage())
	requireCode(t, err, apperrors.CodeInternal)
	requireStatus(t, err, 500)
	if domainErr, _ := apperrors.As(err); strings.Contains(domainErr.Message, "locked") {
		t.Fatalf("message leaks cause: %q", domainErr.Message)
	}

	entries := logs.FilterMessage("operation failed").All()
	if len(entries) != 1 {
		t.Fatalf("logged entries = %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["operation"] != "ListCompanies" {
		t.Fatalf("operation = %v, want ListCompanies", fields["operation"])
	}
	if fields["component"] != "service" {
		t.Fatalf("component = %v, want service", fields["component"])
	}
}

func TestDomainErrorsAreNotLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	svc := New(failingStore{err: errors.New("unused")}, nil, WithLogger(zap.New(core)))

	_, err := svc.GetStatistics(context.Background(), identity.Anonymous())
	requireCode(t, err, apperrors.CodeAuthRequired)
	if logs.Len() != 0 {
		t.Fatalf("logged entries = %d, want 0", logs.Len())
	}
}
