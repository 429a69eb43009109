// Package migrations embeds the goose migrations for the SQL user stores.
// The same files run on SQLite and PostgreSQL.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
