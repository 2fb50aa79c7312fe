package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"quiz-builder/internal/config"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrator applies the embedded schema migrations for one driver.
type Migrator struct {
	m *migrate.Migrate
}

// NewMigrator builds a migrator over an open connection. Closing the migrator closes db.
func NewMigrator(db *sql.DB, driver string) (*Migrator, error) {
	src, err := iofs.New(migrationsFS, "migrations/"+driver)
	if err != nil {
		return nil, fmt.Errorf("could not open migrations for %s: %w", driver, err)
	}

	var instance migratedb.Driver
	switch driver {
	case config.DriverPostgres:
		instance, err = postgres.WithInstance(db, &postgres.Config{})
	case config.DriverOracle:
		instance, err = NewOracleMigrationDriver(db)
	default:
		err = fmt.Errorf("unsupported migration driver %q", driver)
	}
	if err != nil {
		return nil, err
	}

	m, err := migrate.NewWithInstance("iofs", src, driver, instance)
	if err != nil {
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	return &Migrator{m: m}, nil
}

// Up applies every pending migration.
func (mg *Migrator) Up() error {
	if err := mg.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Down rolls back one migration, or all of them when all is set.
func (mg *Migrator) Down(all bool) error {
	var err error
	if all {
		err = mg.m.Down()
	} else {
		err = mg.m.Steps(-1)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Version reports 0 when no migration has been applied.
func (mg *Migrator) Version() (uint, bool, error) {
	v, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	return errors.Join(srcErr, dbErr)
}
