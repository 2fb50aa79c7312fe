package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"quiz-builder/internal/config"
	"quiz-builder/internal/database"
	"quiz-builder/internal/logger"

	"go.uber.org/zap"
)

const usage = "usage: migrate up | down [--all] | version"

type migrator interface {
	Up() error
	Down(all bool) error
	Version() (uint, bool, error)
}

var errUsage = errors.New(usage)

// run executes one migration command and returns the line to print on success.
func run(m migrator, args []string) (string, error) {
	if len(args) == 0 {
		return "", errUsage
	}
	switch args[0] {
	case "up":
		if len(args) != 1 {
			return "", errUsage
		}
		if err := m.Up(); err != nil {
			return "", fmt.Errorf("migration up failed: %w", err)
		}
		return "Migrations applied successfully!", nil
	case "down":
		all := false
		switch {
		case len(args) == 1:
		case len(args) == 2 && args[1] == "--all":
			all = true
		default:
			return "", errUsage
		}
		if err := m.Down(all); err != nil {
			return "", fmt.Errorf("migration down failed: %w", err)
		}
		if all {
			return "Successfully rolled back all migrations", nil
		}
		return "Successfully rolled back 1 migration(s)", nil
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return "", fmt.Errorf("failed to read migration version: %w", err)
		}
		return fmt.Sprintf("Current version: %d (dirty: %t)", version, dirty), nil
	}
	return "", errUsage
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	db, err := database.NewSQLXDB(cfg.DB)
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}

	m, err := database.NewMigrator(db.DB, cfg.DB.Driver)
	if err != nil {
		db.Close()
		l.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer m.Close()

	msg, err := run(m, os.Args[1:])
	if errors.Is(err, errUsage) {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		l.Error("Migration failed", zap.Error(err))
		m.Close()
		os.Exit(1)
	}
	fmt.Println(msg)
}
