package database_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/usuarios/backend/config"
	"github.com/pageza/usuarios/backend/internal/database"
	"github.com/pageza/usuarios/backend/internal/models"
	"github.com/pageza/usuarios/backend/internal/testhelpers"
)

func TestNewUnsupportedDriver(t *testing.T) {
	cfg := config.Default().Database
	cfg.Driver = "mysql"

	_, err := database.New(cfg, zerolog.Nop())
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestSQLiteDatabase(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)

	assert.NoError(t, database.HealthCheck(context.Background(), db))
	assert.True(t, db.Migrator().HasTable(&models.User{}))
	assert.True(t, db.Migrator().HasTable(&models.Profile{}))

	// Migrations can run again on an existing schema
	assert.NoError(t, database.RunMigrations(db, zerolog.Nop()))

	err := database.RollbackMigration(db, zerolog.Nop())
	assert.ErrorIs(t, err, database.ErrRollbackUnsupported)
}

func TestPostgresMigrations(t *testing.T) {
	db := testhelpers.SetupPostgresDatabase(t)
	ctx := context.Background()

	require.NoError(t, database.RunMigrations(db, zerolog.Nop()))
	require.NoError(t, database.HealthCheck(ctx, db))
	assert.True(t, db.Migrator().HasTable("users"))
	assert.True(t, db.Migrator().HasTable("profiles"))

	user := &models.User{
		Name:     "Ana",
		Email:    "ana@x.com",
		Password: "123",
		Profile:  models.Profile{Name: "admin"},
	}
	require.NoError(t, db.WithContext(ctx).Create(user).Error)
	assert.Equal(t, uint(1), user.ID)
	assert.Equal(t, uint(1), user.Profile.ID)

	duplicate := &models.User{
		Name:     "Ana",
		Email:    "ana@x.com",
		Password: "123",
		Profile:  models.Profile{Name: "admin"},
	}
	assert.Error(t, db.WithContext(ctx).Create(duplicate).Error)

	require.NoError(t, database.RollbackMigration(db, zerolog.Nop()))
	assert.False(t, db.Migrator().HasTable("users"))
}

func TestNewRedisClientInvalidURL(t *testing.T) {
	_, err := database.NewRedisClient(config.RedisConfig{URL: "localhost:6379"}, zerolog.Nop())
	assert.ErrorContains(t, err, "failed to parse Redis URL")
}

func TestNewRedisClient(t *testing.T) {
	client := testhelpers.SetupRedis(t)
	assert.NoError(t, client.Ping(context.Background()).Err())
}
