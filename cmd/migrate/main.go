// Command migrate manages the schema of the Expatur dashboard database.
//
// Usage:
//
//	migrate up              apply all pending migrations
//	migrate down            roll back the most recent migration
//	migrate status          print the state of every migration
//	migrate version         print the current schema version
//	migrate create <name>   scaffold a new SQL migration under ./migrations
//
// The database connection comes from the same configuration the API server
// uses (config.json plus environment overrides).
package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/agenciaworcode-source/dashboard-expatur/internal/config"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

const migrationsDir = "./migrations"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: migrate [up|down|status|version|create <name>]")
	}
	command, arguments := args[0], args[1:]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to reach database: %w", err)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	switch command {
	case "up":
		if err := goose.Up(db, migrationsDir); err != nil {
			return fmt.Errorf("up failed: %w", err)
		}
		fmt.Println("deals schema is up to date")

	case "down":
		if err := goose.Down(db, migrationsDir); err != nil {
			return fmt.Errorf("down failed: %w", err)
		}
		fmt.Println("rolled back one migration")

	case "status":
		if err := goose.Status(db, migrationsDir); err != nil {
			return fmt.Errorf("status failed: %w", err)
		}

	case "version":
		if err := goose.Version(db, migrationsDir); err != nil {
			return fmt.Errorf("version failed: %w", err)
		}

	case "create":
		if len(arguments) == 0 {
			return fmt.Errorf("create requires a migration name, e.g. migrate create add_deals_index")
		}
		if err := goose.Create(db, migrationsDir, arguments[0], "sql"); err != nil {
			return fmt.Errorf("create failed: %w", err)
		}
		fmt.Printf("created migration %s\n", arguments[0])

	default:
		return fmt.Errorf("unknown command %q, expected up, down, status, version or create", command)
	}

	return nil
}
