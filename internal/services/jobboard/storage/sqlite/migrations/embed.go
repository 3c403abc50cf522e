package migrations

import "embed"

// FS contains embedded SQLite migrations for job board storage.
//
//go:embed *.sql
var FS embed.FS
