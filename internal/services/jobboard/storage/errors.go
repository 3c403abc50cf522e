package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a uniqueness-constrained record already exists.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrReferenceNotFound indicates a referenced parent record is missing.
	ErrReferenceNotFound = errors.New("referenced record not found")
	// ErrHasDependents indicates a guarded delete was blocked.
	ErrHasDependents = errors.New("record has dependents")
	// ErrJobNotPublished indicates an application targeted an archived job.
	ErrJobNotPublished = errors.New("job is not published")
)

// ConflictError names the unique field that was violated.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists", e.Field)
}

func (e *ConflictError) Unwrap() error { return ErrAlreadyExists }

// ReferenceError names the parent entity that does not exist.
type ReferenceError struct {
	Entity string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

func (e *ReferenceError) Unwrap() error { return ErrReferenceNotFound }

// DependencyError reports the rows that block deleting Entity.
type DependencyError struct {
	Entity string
	Jobs   int
	Users  int
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s is referenced by %d jobs and %d users", e.Entity, e.Jobs, e.Users)
}

func (e *DependencyError) Unwrap() error { return ErrHasDependents }
