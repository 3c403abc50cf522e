// Package storage defines persistence contracts for job board state.
//
// Implementations must run every multi-statement mutation in a single
// transaction and report constraint failures with the error types declared
// here so the service layer can map them to typed failures.
package storage
