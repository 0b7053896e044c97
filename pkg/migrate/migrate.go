package migrate

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

const (
	// DefaultDir is where the checked-in schema migrations live.
	DefaultDir = "pkg/migrate/migrations"

	// the catalog schema targets Postgres only
	dialect = "postgres"
)

// Run executes a goose command (up, down, status, version, ...) against the
// TCGHub database. Progress output goes to stdout, as goose prints it.
func Run(ctx context.Context, db *sql.DB, dir string, command string, args ...string) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	if dir == "" {
		return fmt.Errorf("migrations dir is required")
	}

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.RunContext(ctx, command, db, dir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}
