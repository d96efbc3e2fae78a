// Package migrations embeds the numbered schema migrations applied by
// `hospital-server migrate up`.
package migrations

import "embed"

// FS holds the *.sql files of this directory.
//
//go:embed *.sql
var FS embed.FS
