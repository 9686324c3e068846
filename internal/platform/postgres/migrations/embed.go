// Package migrations embeds the goose SQL migrations that define the
// database schema.
package migrations

import "embed"

// FS holds the embedded SQL migration files, applied with goose.
//
//go:embed *.sql
var FS embed.FS
