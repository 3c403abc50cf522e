// Package application provides job applications and input validation.
package application

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/louisbranch/jobboard/internal/platform/errors"
	"github.com/louisbranch/jobboard/internal/platform/id"
	"github.com/louisbranch/jobboard/internal/services/jobboard/domain/validate"
)

var (
	ErrJobEmpty     = apperrors.New(apperrors.CodeApplicationJobEmpty, "application job is required")
	ErrMessageEmpty = apperrors.New(apperrors.CodeApplicationMessageEmpty, "application message is required")
	ErrNameEmpty    = apperrors.New(apperrors.CodeApplicationNameEmpty, "applicant name is required")
	ErrEmailInvalid = apperrors.New(apperrors.CodeApplicationEmailInvalid, "applicant email is invalid")
)

// Status is the review state of an application. Any status may move to any
// other.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
)

var statusAliases = map[string]Status{
	"EN_ATTENTE": StatusPending,
	"ACCEPTEE":   StatusAccepted,
	"REFUSEE":    StatusRejected,
}

// ParseStatus parses a status label case-insensitively.
func ParseStatus(value string) (Status, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	switch Status(normalized) {
	case StatusPending, StatusAccepted, StatusRejected:
		return Status(normalized), true
	}
	if status, ok := statusAliases[normalized]; ok {
		return status, true
	}
	return "", false
}

// ParseStatusInput parses a status label into a typed validation error.
func ParseStatusInput(value string) (Status, error) {
	status, ok := ParseStatus(value)
	if !ok {
		return "", apperrors.WithMetadata(
			apperrors.CodeApplicationInvalidStatus,
			"application status is invalid",
			map[string]string{"Status": value},
		)
	}
	return status, nil
}

// Application is a submission to a job. The applicant fields are captured at
// submission time; UserID is empty for anonymous applicants.
type Application struct {
	ID             string
	Message        string
	ApplicantName  string
	ApplicantEmail string
	ApplicantPhone string
	Status         Status
	JobID          string
	UserID         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Identity is the key duplicate submissions are detected on.
type Identity struct {
	JobID  string
	UserID string
	Email  string
}

// Identity returns the user id when set and the applicant email otherwise.
func (a Application) Identity() Identity {
	if a.UserID != "" {
		return Identity{JobID: a.JobID, UserID: a.UserID}
	}
	return Identity{JobID: a.JobID, Email: a.ApplicantEmail}
}

// SubmitInput describes a new application.
type SubmitInput struct {
	JobID          string
	Message        string
	ApplicantName  string
	ApplicantEmail string
	ApplicantPhone string
	UserID         string
}

// CreateApplication creates a pending application.
func CreateApplication(input SubmitInput, now func() time.Time, idGenerator func() (string, error)) (Application, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	normalized, err := NormalizeSubmitInput(input)
	if err != nil {
		return Application{}, err
	}

	applicationID, err := idGenerator()
	if err != nil {
		return Application{}, fmt.Errorf("generate application id: %w", err)
	}

	createdAt := now().UTC()
	return Application{
		ID:             applicationID,
		Message:        normalized.Message,
		ApplicantName:  normalized.ApplicantName,
		ApplicantEmail: normalized.ApplicantEmail,
		ApplicantPhone: normalized.ApplicantPhone,
		Status:         StatusPending,
		JobID:          normalized.JobID,
		UserID:         normalized.UserID,
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}, nil
}

// NormalizeSubmitInput trims, lower-cases the email, and validates input.
func NormalizeSubmitInput(input SubmitInput) (SubmitInput, error) {
	input.JobID = strings.TrimSpace(input.JobID)
	input.Message = strings.TrimSpace(input.Message)
	input.ApplicantName = strings.TrimSpace(input.ApplicantName)
	input.ApplicantEmail = validate.NormalizeEmail(input.ApplicantEmail)
	input.ApplicantPhone = strings.TrimSpace(input.ApplicantPhone)
	input.UserID = strings.TrimSpace(input.UserID)

	if input.JobID == "" {
		return SubmitInput{}, ErrJobEmpty
	}
	if input.Message == "" {
		return SubmitInput{}, ErrMessageEmpty
	}
	if input.ApplicantName == "" {
		return SubmitInput{}, ErrNameEmpty
	}
	if !validate.Email(input.ApplicantEmail) {
		return SubmitInput{}, ErrEmailInvalid
	}
	return input, nil
}
