package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/tcghub/tcghub-backend/pkg/config"
	"github.com/tcghub/tcghub-backend/pkg/migrate"
)

const usage = `usage: migrate [-dir <path>] <command> [args]

commands:
  up                 apply all pending migrations
  down               roll back the most recent migration
  status             print the migration status
  version            print the current migration version
  create <name>      create a new SQL migration file
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	dir := flag.String("dir", migrate.DefaultDir, "migrations directory")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		return fmt.Errorf("command is required")
	}
	command, rest := args[0], args[1:]

	if command == "create" {
		if len(rest) != 1 {
			return fmt.Errorf("create requires exactly one name argument")
		}
		path, err := migrate.CreateSQLMigration(*dir, rest[0])
		if err != nil {
			return err
		}
		fmt.Println("created", path)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	sqlDB, err := sql.Open("postgres", cfg.DB.DSN)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer sqlDB.Close()

	return migrate.Run(context.Background(), sqlDB, *dir, command, rest...)
}
