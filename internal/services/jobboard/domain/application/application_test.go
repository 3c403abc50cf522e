package application

import (
	"testing"
	"time"

	apperrors "github.com/louisbranch/jobboard/internal/platform/errors"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func fixedID() (string, error) { return "app-1", nil }

func TestCreateApplication(t *testing.T) {
	a, err := CreateApplication(SubmitInput{
		JobID:          " job-1 ",
		Message:        " Hello ",
		ApplicantName:  " Ada ",
		ApplicantEmail: " ADA@x.com ",
	}, fixedNow, fixedID)
	if err != nil {
		t.Fatalf("create application: %v", err)
	}
	if a.ID != "app-1" || a.JobID != "job-1" || a.Message != "Hello" || a.ApplicantName != "Ada" {
		t.Fatalf("unexpected application %+v", a)
	}
	if a.ApplicantEmail != "ada@x.com" {
		t.Fatalf("email = %q, want lower-cased", a.ApplicantEmail)
	}
	if a.Status != StatusPending {
		t.Fatalf("status = %q, want PENDING", a.Status)
	}
	if a.UserID != "" {
		t.Fatalf("user id = %q, want anonymous", a.UserID)
	}
}

func TestCreateApplicationValidation(t *testing.T) {
	base := SubmitInput{JobID: "job-1", Message: "hi", ApplicantName: "Ada", ApplicantEmail: "ada@x.com"}
	tests := []struct {
		name   string
		mutate func(*SubmitInput)
		code   apperrors.Code
	}{
		{"missing job", func(in *SubmitInput) { in.JobID = "" }, apperrors.CodeApplicationJobEmpty},
		{"missing message", func(in *SubmitInput) { in.Message = "  " }, apperrors.CodeApplicationMessageEmpty},
		{"missing name", func(in *SubmitInput) { in.ApplicantName = "" }, apperrors.CodeApplicationNameEmpty},
		{"missing email", func(in *SubmitInput) { in.ApplicantEmail = "" }, apperrors.CodeApplicationEmailInvalid},
		{"bad email", func(in *SubmitInput) { in.ApplicantEmail = "ada" }, apperrors.CodeApplicationEmailInvalid},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := base
			tc.mutate(&input)
			_, err := CreateApplication(input, fixedNow, fixedID)
			if got := apperrors.CodeOf(err); got != tc.code {
				t.Fatalf("code = %q, want %q", got, tc.code)
			}
			if apperrors.KindOf(err) != apperrors.KindValidation {
				t.Fatalf("kind = %q, want validation", apperrors.KindOf(err))
			}
		})
	}
}

func TestIdentity(t *testing.T) {
	anon := Application{JobID: "j", ApplicantEmail: "a@x.com"}
	if got := anon.Identity(); got != (Identity{JobID: "j", Email: "a@x.com"}) {
		t.Fatalf("anonymous identity = %+v", got)
	}
	linked := Application{JobID: "j", UserID: "u", ApplicantEmail: "a@x.com"}
	if got := linked.Identity(); got != (Identity{JobID: "j", UserID: "u"}) {
		t.Fatalf("linked identity = %+v", got)
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
		ok   bool
	}{
		{"pending", StatusPending, true},
		{" ACCEPTED ", StatusAccepted, true},
		{"en_attente", StatusPending, true},
		{"ACCEPTEE", StatusAccepted, true},
		{"refusee", StatusRejected, true},
		{"maybe", "", false},
	}
	for _, tc := range tests {
		got, ok := ParseStatus(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseStatus(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
	if _, err := ParseStatusInput("maybe"); apperrors.CodeOf(err) != apperrors.CodeApplicationInvalidStatus {
		t.Fatalf("err = %v, want invalid status", err)
	}
}
