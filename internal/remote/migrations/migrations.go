// Package migrations embeds the goose migrations of the remote PostgreSQL
// schema (accounts and document collections).
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
