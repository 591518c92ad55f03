// Package migrations embeds the goose migrations for the Postgres kv backend.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
