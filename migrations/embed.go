// Package migrations holds the SQL schema of every migratable module.
package migrations

import "embed"

// FS contains one directory of numbered up/down files per module
//
//go:embed reports/*.sql
var FS embed.FS
