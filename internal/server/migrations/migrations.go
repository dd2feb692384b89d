// Package migrations embeds the goose SQL migrations for the direct-query
// backend.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
