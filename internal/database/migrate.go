package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/pageza/usuarios/backend/internal/models"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

// ErrRollbackUnsupported is returned when rolling back a database that is migrated with AutoMigrate
var ErrRollbackUnsupported = errors.New("rollback is only supported on postgres")

// RunMigrations brings the schema up to date.
// Postgres is migrated with the embedded goose migrations, SQLite with GORM auto-migration.
func RunMigrations(db *gorm.DB, log zerolog.Logger) error {
	if db.Dialector.Name() == "sqlite" {
		log.Info().Msg("using GORM auto-migration for SQLite")
		if err := db.AutoMigrate(&models.Profile{}, &models.User{}); err != nil {
			return fmt.Errorf("failed to auto-migrate: %w", err)
		}
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := setupGoose(log); err != nil {
		return err
	}
	if err := goose.Up(sqlDB, migrationsDir); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// RollbackMigration rolls back the most recently applied migration
func RollbackMigration(db *gorm.DB, log zerolog.Logger) error {
	if db.Dialector.Name() == "sqlite" {
		return ErrRollbackUnsupported
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := setupGoose(log); err != nil {
		return err
	}
	if err := goose.Down(sqlDB, migrationsDir); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	return nil
}

func setupGoose(log zerolog.Logger) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{log: log.With().Str("component", "goose").Logger()})
	return goose.SetDialect("postgres")
}

// gooseLogger routes goose output through zerolog
type gooseLogger struct {
	log zerolog.Logger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Info().Msgf(format, v...)
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Fatal().Msgf(format, v...)
}
