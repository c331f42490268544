// Package migrations embeds the goose migrations for the local client
// database (persisted token record and the analyses cache).
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
