// Package sqlite provides the SQLite-backed job board store.
//
// Connections enable foreign keys and begin transactions with BEGIN
// IMMEDIATE, so a check made inside a transaction holds until the write that
// depends on it commits.
package sqlite
