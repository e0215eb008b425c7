// migrate.go applies schema migrations at startup using golang-migrate.
//
// The schema lives in migrations/ as paired up/down SQL files; for this
// service that is the videos table and its indexes. golang-migrate records
// the applied version in a schema_migrations table, so restarting the
// server against an up-to-date database is a no-op.
package database

import (
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file" // File source driver
)

// RunMigrations brings the schema up to the latest version. Called once
// at startup, before the worker pool accepts jobs.
func (db *DB) RunMigrations(migrationsPath string) error {
	driver, err := postgres.WithInstance(db.DB.DB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://"+migrationsPath,
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration failed: %w", err)
		}
		log.Println("📦 Database: no new migrations to apply")
		return nil
	}

	version, dirty, _ := m.Version()
	log.Printf("📦 Database: migrated to version %d (dirty: %v)", version, dirty)
	return nil
}
