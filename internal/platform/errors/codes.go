// Package errors provides structured error handling with i18n support.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"
	// CodeInternal hides infrastructure failures from callers.
	CodeInternal Code = "INTERNAL"
	// CodeInvalidRequest marks a malformed request body or query.
	CodeInvalidRequest Code = "INVALID_REQUEST"
	// CodeRateLimited marks a request rejected by a rate limiter.
	CodeRateLimited Code = "RATE_LIMITED"

	// Authentication errors
	CodeAuthRequired           Code = "AUTH_REQUIRED"
	CodeAuthInvalidCredentials Code = "AUTH_INVALID_CREDENTIALS"
	CodeAuthInvalidToken       Code = "AUTH_INVALID_TOKEN"
	CodeAuthTokenExpired       Code = "AUTH_TOKEN_EXPIRED"

	// Authorization errors
	CodeForbiddenRole        Code = "FORBIDDEN_ROLE"
	CodeForbiddenNotOwner    Code = "FORBIDDEN_NOT_OWNER"
	CodeUserCannotDeleteSelf Code = "USER_CANNOT_DELETE_SELF"

	// Company errors
	CodeCompanyNameTooShort   Code = "COMPANY_NAME_TOO_SHORT"
	CodeCompanyPlaceEmpty     Code = "COMPANY_PLACE_EMPTY"
	CodeCompanyWebsiteInvalid Code = "COMPANY_WEBSITE_INVALID"
	CodeCompanyNameTaken      Code = "COMPANY_NAME_TAKEN"
	CodeCompanyNotFound       Code = "COMPANY_NOT_FOUND"
	CodeCompanyHasDependents  Code = "COMPANY_HAS_DEPENDENTS"

	// User errors
	CodeUserFirstNameTooShort Code = "USER_FIRST_NAME_TOO_SHORT"
	CodeUserLastNameTooShort  Code = "USER_LAST_NAME_TOO_SHORT"
	CodeUserEmailInvalid      Code = "USER_EMAIL_INVALID"
	CodeUserPasswordTooShort  Code = "USER_PASSWORD_TOO_SHORT"
	CodeUserInvalidRole       Code = "USER_INVALID_ROLE"
	CodeUserEmailTaken        Code = "USER_EMAIL_TAKEN"
	CodeUserNotFound          Code = "USER_NOT_FOUND"
	CodeUserHasJobs           Code = "USER_HAS_JOBS"

	// Job errors
	CodeJobTitleEmpty            Code = "JOB_TITLE_EMPTY"
	CodeJobInvalidType           Code = "JOB_INVALID_TYPE"
	CodeJobShortDescriptionEmpty Code = "JOB_SHORT_DESCRIPTION_EMPTY"
	CodeJobDescriptionEmpty      Code = "JOB_DESCRIPTION_EMPTY"
	CodeJobSalaryMissing         Code = "JOB_SALARY_MISSING"
	CodeJobLocationEmpty         Code = "JOB_LOCATION_EMPTY"
	CodeJobCompanyEmpty          Code = "JOB_COMPANY_EMPTY"
	CodeJobInvalidStatus         Code = "JOB_INVALID_STATUS"
	CodeJobNotFound              Code = "JOB_NOT_FOUND"
	CodeJobNotPublished          Code = "JOB_NOT_PUBLISHED"

	// Application errors
	CodeApplicationJobEmpty      Code = "APPLICATION_JOB_EMPTY"
	CodeApplicationMessageEmpty  Code = "APPLICATION_MESSAGE_EMPTY"
	CodeApplicationNameEmpty     Code = "APPLICATION_NAME_EMPTY"
	CodeApplicationEmailInvalid  Code = "APPLICATION_EMAIL_INVALID"
	CodeApplicationInvalidStatus Code = "APPLICATION_INVALID_STATUS"
	CodeApplicationDuplicate     Code = "APPLICATION_DUPLICATE"
	CodeApplicationNotFound      Code = "APPLICATION_NOT_FOUND"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
	// CodeConflict is a uniqueness violation without a more specific code.
	CodeConflict Code = "CONFLICT"
)

// Kind is the transport-neutral failure category of a code.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindUnauthenticated Kind = "unauthenticated"
	KindForbidden       Kind = "forbidden"
	KindNotFound        Kind = "not_found"
	KindConflict        Kind = "conflict"
	KindRateLimited     Kind = "rate_limited"
	KindInternal        Kind = "internal"
)

var kindByCode = map[Code]Kind{
	CodeInvalidRequest: KindValidation,
	CodeRateLimited:    KindRateLimited,

	CodeAuthRequired:           KindUnauthenticated,
	CodeAuthInvalidCredentials: KindUnauthenticated,
	CodeAuthInvalidToken:       KindUnauthenticated,
	CodeAuthTokenExpired:       KindUnauthenticated,

	CodeForbiddenRole:        KindForbidden,
	CodeForbiddenNotOwner:    KindForbidden,
	CodeUserCannotDeleteSelf: KindValidation,

	CodeCompanyNameTooShort:   KindValidation,
	CodeCompanyPlaceEmpty:     KindValidation,
	CodeCompanyWebsiteInvalid: KindValidation,
	CodeCompanyNameTaken:      KindConflict,
	CodeCompanyNotFound:       KindNotFound,
	CodeCompanyHasDependents:  KindConflict,

	CodeUserFirstNameTooShort: KindValidation,
	CodeUserLastNameTooShort:  KindValidation,
	CodeUserEmailInvalid:      KindValidation,
	CodeUserPasswordTooShort:  KindValidation,
	CodeUserInvalidRole:       KindValidation,
	CodeUserEmailTaken:        KindConflict,
	CodeUserNotFound:          KindNotFound,
	CodeUserHasJobs:           KindConflict,

	CodeJobTitleEmpty:            KindValidation,
	CodeJobInvalidType:           KindValidation,
	CodeJobShortDescriptionEmpty: KindValidation,
	CodeJobDescriptionEmpty:      KindValidation,
	CodeJobSalaryMissing:         KindValidation,
	CodeJobLocationEmpty:         KindValidation,
	CodeJobCompanyEmpty:          KindValidation,
	CodeJobInvalidStatus:         KindValidation,
	CodeJobNotFound:              KindNotFound,
	CodeJobNotPublished:          KindConflict,

	CodeApplicationJobEmpty:      KindValidation,
	CodeApplicationMessageEmpty:  KindValidation,
	CodeApplicationNameEmpty:     KindValidation,
	CodeApplicationEmailInvalid:  KindValidation,
	CodeApplicationInvalidStatus: KindValidation,
	CodeApplicationDuplicate:     KindConflict,
	CodeApplicationNotFound:      KindNotFound,

	CodeNotFound: KindNotFound,
	CodeConflict: KindConflict,
}

// Kind maps the code to its failure category. Unmapped codes are internal.
func (c Code) Kind() Kind {
	if kind, ok := kindByCode[c]; ok {
		return kind
	}
	return KindInternal
}

// HTTPStatus maps the code to an HTTP status via its kind.
func (c Code) HTTPStatus() int {
	return c.Kind().HTTPStatus()
}

// HTTPStatus maps a failure kind to its HTTP status code.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
