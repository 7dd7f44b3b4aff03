// Package migrations holds the bun migrations for the Postgres survey store.
package migrations

import "github.com/uptrace/bun/migrate"

// Migrations is populated by the numbered files in this package; bun derives each
// migration name from its file name.
var Migrations = migrate.NewMigrations()
