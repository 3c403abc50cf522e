// Package job provides job postings and input validation.
package job

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/louisbranch/jobboard/internal/platform/errors"
	"github.com/louisbranch/jobboard/internal/platform/id"
	"github.com/louisbranch/jobboard/internal/services/jobboard/domain/validate"
)

var (
	ErrTitleEmpty            = apperrors.New(apperrors.CodeJobTitleEmpty, "job title is required")
	ErrShortDescriptionEmpty = apperrors.New(apperrors.CodeJobShortDescriptionEmpty, "job short description is required")
	ErrDescriptionEmpty      = apperrors.New(apperrors.CodeJobDescriptionEmpty, "job description is required")
	ErrSalaryMissing         = apperrors.New(apperrors.CodeJobSalaryMissing, "job salary is required")
	ErrLocationEmpty         = apperrors.New(apperrors.CodeJobLocationEmpty, "job location is required")
	ErrCompanyEmpty          = apperrors.New(apperrors.CodeJobCompanyEmpty, "job company is required")
)

// Job is a posting owned by a company and created by a user.
type Job struct {
	ID               string
	Title            string
	Type             Type
	ShortDescription string
	Description      string
	Responsibilities string
	Qualifications   string
	Salary           float64
	Location         string
	Status           Status
	CompanyID        string
	CreatedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CreateJobInput describes a new posting. Salary is the raw submitted value;
// nil means it was not provided.
type CreateJobInput struct {
	Title            string
	Type             string
	ShortDescription string
	Description      string
	Responsibilities string
	Qualifications   string
	Salary           *string
	Location         string
	CompanyID        string
	CreatedBy        string
}

// UpdateJobInput is a partial update. Nil fields are left unchanged.
type UpdateJobInput struct {
	Title            *string
	Type             *string
	ShortDescription *string
	Description      *string
	Responsibilities *string
	Qualifications   *string
	Salary           *string
	Location         *string
	CompanyID        *string
}

// CreateJob creates a published job with a generated ID and timestamps.
func CreateJob(input CreateJobInput, now func() time.Time, idGenerator func() (string, error)) (Job, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	normalized, jobType, salary, err := normalizeCreateJobInput(input)
	if err != nil {
		return Job{}, err
	}

	jobID, err := idGenerator()
	if err != nil {
		return Job{}, fmt.Errorf("generate job id: %w", err)
	}

	createdAt := now().UTC()
	return Job{
		ID:               jobID,
		Title:            normalized.Title,
		Type:             jobType,
		ShortDescription: normalized.ShortDescription,
		Description:      normalized.Description,
		Responsibilities: normalized.Responsibilities,
		Qualifications:   normalized.Qualifications,
		Salary:           salary,
		Location:         normalized.Location,
		Status:           StatusPublished,
		CompanyID:        normalized.CompanyID,
		CreatedBy:        normalized.CreatedBy,
		CreatedAt:        createdAt,
		UpdatedAt:        createdAt,
	}, nil
}

// NormalizeCreateJobInput trims and validates job input.
func NormalizeCreateJobInput(input CreateJobInput) (CreateJobInput, error) {
	normalized, _, _, err := normalizeCreateJobInput(input)
	return normalized, err
}

func normalizeCreateJobInput(input CreateJobInput) (CreateJobInput, Type, float64, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.ShortDescription = strings.TrimSpace(input.ShortDescription)
	input.Description = strings.TrimSpace(input.Description)
	input.Responsibilities = strings.TrimSpace(input.Responsibilities)
	input.Qualifications = strings.TrimSpace(input.Qualifications)
	input.Location = strings.TrimSpace(input.Location)
	input.CompanyID = strings.TrimSpace(input.CompanyID)
	input.CreatedBy = strings.TrimSpace(input.CreatedBy)

	if input.Title == "" {
		return CreateJobInput{}, "", 0, ErrTitleEmpty
	}
	jobType, err := parseType(input.Type)
	if err != nil {
		return CreateJobInput{}, "", 0, err
	}
	if input.ShortDescription == "" {
		return CreateJobInput{}, "", 0, ErrShortDescriptionEmpty
	}
	if input.Description == "" {
		return CreateJobInput{}, "", 0, ErrDescriptionEmpty
	}
	if input.Salary == nil {
		return CreateJobInput{}, "", 0, ErrSalaryMissing
	}
	if input.Location == "" {
		return CreateJobInput{}, "", 0, ErrLocationEmpty
	}
	if input.CompanyID == "" {
		return CreateJobInput{}, "", 0, ErrCompanyEmpty
	}
	input.Type = string(jobType)
	return input, jobType, CoerceSalary(*input.Salary), nil
}

// ApplyUpdate returns j with the non-nil fields of input applied. Status and
// creator are never changed here.
func ApplyUpdate(j Job, input UpdateJobInput, now func() time.Time) (Job, error) {
	if now == nil {
		now = time.Now
	}
	required := []struct {
		value *string
		dst   *string
		err   error
	}{
		{input.Title, &j.Title, ErrTitleEmpty},
		{input.ShortDescription, &j.ShortDescription, ErrShortDescriptionEmpty},
		{input.Description, &j.Description, ErrDescriptionEmpty},
		{input.Location, &j.Location, ErrLocationEmpty},
		{input.CompanyID, &j.CompanyID, ErrCompanyEmpty},
	}
	for _, field := range required {
		value := validate.TrimPtr(field.value)
		if value == nil {
			continue
		}
		if *value == "" {
			return Job{}, field.err
		}
		*field.dst = *value
	}
	if value := validate.TrimPtr(input.Responsibilities); value != nil {
		j.Responsibilities = *value
	}
	if value := validate.TrimPtr(input.Qualifications); value != nil {
		j.Qualifications = *value
	}
	if input.Type != nil {
		jobType, err := parseType(*input.Type)
		if err != nil {
			return Job{}, err
		}
		j.Type = jobType
	}
	if input.Salary != nil {
		j.Salary = CoerceSalary(*input.Salary)
	}
	j.UpdatedAt = now().UTC()
	return j, nil
}

// CoerceSalary converts a submitted salary to a non-negative number.
// Non-numeric values become 0 and negative values are clamped to 0.
func CoerceSalary(raw string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return 0
	}
	return value
}

func parseType(value string) (Type, error) {
	jobType, ok := ParseType(value)
	if !ok {
		return "", apperrors.WithMetadata(
			apperrors.CodeJobInvalidType,
			"job type is invalid",
			map[string]string{"Type": value},
		)
	}
	return jobType, nil
}

// ParseStatusInput parses a status label into a typed validation error.
func ParseStatusInput(value string) (Status, error) {
	status, ok := ParseStatus(value)
	if !ok {
		return "", apperrors.WithMetadata(
			apperrors.CodeJobInvalidStatus,
			"job status is invalid",
			map[string]string{"Status": value},
		)
	}
	return status, nil
}
