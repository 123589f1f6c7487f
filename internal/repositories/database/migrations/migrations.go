// Package migrations applies the embedded schema migrations with golang-migrate.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed postgres/*.sql
var postgresFS embed.FS

//go:embed sqlite/*.sql
var sqliteFS embed.FS

// RunPostgres applies all pending migrations to the database at databaseURL.
func RunPostgres(databaseURL string, logger *slog.Logger) error {
	// A plain database/sql handle on the pgx stdlib driver is used for migrations.
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create postgres driver instance for migrations: %w", err)
	}
	return run(postgresFS, "postgres", "postgres", driver, logger)
}

// RunSQLite applies all pending migrations to db, which must use the sqlite3 driver.
// db stays open.
func RunSQLite(db *sql.DB, logger *slog.Logger) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("could not create sqlite driver instance for migrations: %w", err)
	}
	return run(sqliteFS, "sqlite", "sqlite3", driver, logger)
}

func run(fsys embed.FS, dir, databaseName string, driver database.Driver, logger *slog.Logger) error {
	source, err := iofs.New(fsys, dir)
	if err != nil {
		return fmt.Errorf("could not open embedded migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, databaseName, driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.", slog.String("database", databaseName))
	} else {
		logger.Info("Database migrations applied successfully.", slog.String("database", databaseName))
	}
	return nil
}
