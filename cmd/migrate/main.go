package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"

	"github.com/pageza/usuarios/backend/config"
	"github.com/pageza/usuarios/backend/internal/database"
	"github.com/pageza/usuarios/backend/internal/logger"
)

func main() {
	// Parse command line flags
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}
	log := logger.New(cfg.Log)

	if err := run(cfg, log, *rollback); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
}

// run applies all pending migrations, or rolls back the last one
func run(cfg *config.Config, log zerolog.Logger, rollback bool) error {
	db, err := database.New(cfg.Database, log)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if rollback {
		if err := database.RollbackMigration(db, log); err != nil {
			return err
		}
		log.Info().Msg("successfully rolled back the last migration")
		return nil
	}

	if err := database.RunMigrations(db, log); err != nil {
		return err
	}
	log.Info().Msg("all migrations applied successfully")
	return nil
}
