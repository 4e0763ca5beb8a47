package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	"newsdesk/pkg/config"
	"newsdesk/pkg/database"
	"newsdesk/pkg/logger"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

func main() {
	var (
		dir     = flag.String("dir", "migrations", "directory with migration files")
		command = flag.String("command", "up", "migration command (up, down, status, create)")
		name    = flag.String("name", "", "name for new migration (used with create command)")
	)
	flag.Parse()

	log := logger.New()
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		fatal(log, "Failed to load config: %v", err)
	}

	db, err := sql.Open("postgres", database.DSN(cfg))
	if err != nil {
		fatal(log, "Failed to open database: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		fatal(log, "Failed to set dialect: %v", err)
	}

	switch *command {
	case "create":
		if *name == "" {
			fatal(log, "Name is required for create command")
		}
		if err := goose.Create(db, *dir, *name, "sql"); err != nil {
			fatal(log, "Failed to create migration: %v", err)
		}
		fmt.Printf("Created migration: %s\n", *name)
	case "up":
		if err := goose.Up(db, *dir); err != nil {
			fatal(log, "Failed to run migrations: %v", err)
		}
		fmt.Println("Migrations applied successfully")
	case "down":
		if err := goose.Down(db, *dir); err != nil {
			fatal(log, "Failed to rollback migrations: %v", err)
		}
		fmt.Println("Migrations rolled back successfully")
	case "status":
		if err := goose.Status(db, *dir); err != nil {
			fatal(log, "Failed to get migration status: %v", err)
		}
	default:
		fatal(log, "Unknown command: %s", *command)
	}
}

func fatal(log *logger.Logger, format string, args ...interface{}) {
	log.Error(format, args...)
	log.Sync()
	os.Exit(1)
}
