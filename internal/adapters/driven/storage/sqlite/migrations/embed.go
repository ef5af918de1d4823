// Package migrations holds the versioned schema of the index database.
// Files are named NNN_name.up.sql and NNN_name.down.sql.
package migrations

import "embed"

// FS holds every migration script.
//
//go:embed *.sql
var FS embed.FS
