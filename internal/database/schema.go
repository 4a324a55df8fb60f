package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Per-driver DDL for the tickets table. SQLite uses AUTOINCREMENT rather than
// the plain rowid so deleted ids are never reassigned.
var ticketsSchema = map[string]string{
	DriverSQLite: `
		CREATE TABLE IF NOT EXISTS tickets (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			title       TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			status      TEXT NOT NULL DEFAULT 'open'
			            CHECK (status IN ('open', 'stalled', 'closed')),
			created_at  DATETIME NOT NULL
		)`,
	DriverMySQL: `
		CREATE TABLE IF NOT EXISTS tickets (
			id          BIGINT NOT NULL AUTO_INCREMENT,
			title       VARCHAR(200) NOT NULL,
			description TEXT NOT NULL,
			status      ENUM('open', 'stalled', 'closed') NOT NULL DEFAULT 'open',
			created_at  DATETIME(6) NOT NULL,
			PRIMARY KEY (id)
		)`,
	DriverPostgres: `
		CREATE TABLE IF NOT EXISTS tickets (
			id          BIGSERIAL PRIMARY KEY,
			title       VARCHAR(200) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			status      TEXT NOT NULL DEFAULT 'open'
			            CHECK (status IN ('open', 'stalled', 'closed')),
			created_at  TIMESTAMPTZ NOT NULL
		)`,
}

// EnsureSchema creates the tickets table if it does not exist. Pagination
// scans in insertion order through the primary key, so no secondary index is
// needed.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	ddl, ok := ticketsSchema[db.DriverName()]
	if !ok {
		return fmt.Errorf("no schema for driver %q", db.DriverName())
	}
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create tickets table: %w", err)
	}
	return nil
}
