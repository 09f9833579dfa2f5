// Package migrations embeds the goose SQL migrations so the binary can
// migrate any database it is pointed at without shipping loose files.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
