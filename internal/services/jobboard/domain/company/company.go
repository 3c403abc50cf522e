// Package company provides company records and input validation.
package company

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/louisbranch/jobboard/internal/platform/errors"
	"github.com/louisbranch/jobboard/internal/platform/id"
	"github.com/louisbranch/jobboard/internal/services/jobboard/domain/validate"
)

// MinNameLength is the shortest accepted company name.
const MinNameLength = 2

var (
	// ErrNameTooShort indicates a company name under MinNameLength characters.
	ErrNameTooShort = apperrors.New(apperrors.CodeCompanyNameTooShort, "company name is too short")
	// ErrPlaceEmpty indicates a missing company location.
	ErrPlaceEmpty = apperrors.New(apperrors.CodeCompanyPlaceEmpty, "company place is required")
	// ErrWebsiteInvalid indicates a website that is not an http(s) URL.
	ErrWebsiteInvalid = apperrors.New(apperrors.CodeCompanyWebsiteInvalid, "company website is invalid")
)

// Company is an employer that owns jobs and recruiter accounts.
type Company struct {
	ID        string
	Name      string
	Place     string
	Info      string
	Website   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateCompanyInput describes the fields needed to create a company.
type CreateCompanyInput struct {
	Name    string
	Place   string
	Info    string
	Website string
}

// UpdateCompanyInput is a partial update. Nil fields are left unchanged.
type UpdateCompanyInput struct {
	Name    *string
	Place   *string
	Info    *string
	Website *string
}

// CreateCompany creates a new company with a generated ID and timestamps.
func CreateCompany(input CreateCompanyInput, now func() time.Time, idGenerator func() (string, error)) (Company, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	normalized, err := NormalizeCreateCompanyInput(input)
	if err != nil {
		return Company{}, err
	}

	companyID, err := idGenerator()
	if err != nil {
		return Company{}, fmt.Errorf("generate company id: %w", err)
	}

	createdAt := now().UTC()
	return Company{
		ID:        companyID,
		Name:      normalized.Name,
		Place:     normalized.Place,
		Info:      normalized.Info,
		Website:   normalized.Website,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}, nil
}

// NormalizeCreateCompanyInput trims and validates company input.
func NormalizeCreateCompanyInput(input CreateCompanyInput) (CreateCompanyInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Place = strings.TrimSpace(input.Place)
	input.Info = strings.TrimSpace(input.Info)
	input.Website = strings.TrimSpace(input.Website)

	if err := validateName(input.Name); err != nil {
		return CreateCompanyInput{}, err
	}
	if input.Place == "" {
		return CreateCompanyInput{}, ErrPlaceEmpty
	}
	if err := validateWebsite(input.Website); err != nil {
		return CreateCompanyInput{}, err
	}
	return input, nil
}

// ApplyUpdate returns c with the non-nil fields of input applied.
func ApplyUpdate(c Company, input UpdateCompanyInput, now func() time.Time) (Company, error) {
	if now == nil {
		now = time.Now
	}
	if name := validate.TrimPtr(input.Name); name != nil {
		if err := validateName(*name); err != nil {
			return Company{}, err
		}
		c.Name = *name
	}
	if place := validate.TrimPtr(input.Place); place != nil {
		if *place == "" {
			return Company{}, ErrPlaceEmpty
		}
		c.Place = *place
	}
	if info := validate.TrimPtr(input.Info); info != nil {
		c.Info = *info
	}
	if website := validate.TrimPtr(input.Website); website != nil {
		if err := validateWebsite(*website); err != nil {
			return Company{}, err
		}
		c.Website = *website
	}
	c.UpdatedAt = now().UTC()
	return c, nil
}

func validateName(name string) error {
	if !validate.MinRunes(name, MinNameLength) {
		return ErrNameTooShort
	}
	return nil
}

func validateWebsite(website string) error {
	if website != "" && !validate.WebURL(website) {
		return ErrWebsiteInvalid
	}
	return nil
}
