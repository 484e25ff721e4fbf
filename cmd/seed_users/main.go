package main

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog"

	"github.com/pageza/usuarios/backend/config"
	"github.com/pageza/usuarios/backend/internal/database"
	"github.com/pageza/usuarios/backend/internal/logger"
	"github.com/pageza/usuarios/backend/internal/service"
	"github.com/pageza/usuarios/backend/internal/types"
)

var seedUsers = []struct {
	name    string
	email   string
	profile string
}{
	{name: "Ana Souza", email: "ana@example.com", profile: "admin"},
	{name: "Bruno Lima", email: "bruno@example.com", profile: "editor"},
	{name: "Carla Dias", email: "carla@example.com", profile: "user"},
	{name: "Diego Rocha", email: "diego@example.com", profile: "user"},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}
	log := logger.New(cfg.Log)

	created, err := run(context.Background(), cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
	log.Info().Int("created", created).Int("total", len(seedUsers)).Msg("seeding complete")
}

// run creates the sample users that do not exist yet and returns how many were created
func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) (int, error) {
	db, err := database.New(cfg.Database, log)
	if err != nil {
		return 0, err
	}
	defer database.Close(db)

	if err := database.RunMigrations(db, log); err != nil {
		return 0, err
	}

	users := service.NewUserService(db)

	created := 0
	for _, u := range seedUsers {
		user, err := users.CreateUser(ctx, &types.CreateUserRequest{
			Name:     u.name,
			Email:    u.email,
			Password: "senha123",
			Profile:  &types.CreateProfileRequest{Name: u.profile},
		})
		if errors.Is(err, service.ErrEmailTaken) {
			log.Info().Str("email", u.email).Msg("user already exists, skipping")
			continue
		}
		if err != nil {
			return created, err
		}
		log.Info().Uint("id", user.ID).Str("email", user.Email).Str("perfil", u.profile).Msg("created user")
		created++
	}

	return created, nil
}
