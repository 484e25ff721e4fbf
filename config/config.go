package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix shared by every configuration variable.
// APP_SERVER_PORT maps to server.port, APP_DATABASE_SSL_MODE to database.ssl_mode.
const EnvPrefix = "APP_"

// Supported database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	Env      Environment    `koanf:"env" validate:"required"`
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Redis    RedisConfig    `koanf:"redis"`
	Log      LogConfig      `koanf:"log"`
}

// ServerConfig holds the HTTP listener settings
type ServerConfig struct {
	Host               string        `koanf:"host"`
	Port               int           `koanf:"port" validate:"gte=0,lte=65535"`
	ReadTimeout        time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout       time.Duration `koanf:"write_timeout" validate:"gt=0"`
	ShutdownTimeout    time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	CORSAllowedOrigins []string      `koanf:"cors_allowed_origins"`
}

// DatabaseConfig holds connection settings for the relational store.
// Path is only used by the sqlite driver; the remaining connection fields only by postgres.
type DatabaseConfig struct {
	Driver          string        `koanf:"driver" validate:"required,oneof=sqlite postgres"`
	Path            string        `koanf:"path" validate:"required_if=Driver sqlite"`
	Host            string        `koanf:"host" validate:"required_if=Driver postgres"`
	Port            int           `koanf:"port" validate:"required_if=Driver postgres"`
	User            string        `koanf:"user" validate:"required_if=Driver postgres"`
	Password        string        `koanf:"password"`
	Name            string        `koanf:"name" validate:"required_if=Driver postgres"`
	SSLMode         string        `koanf:"ssl_mode" validate:"required_if=Driver postgres"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"gte=0"`
}

// DSN returns the postgres connection string
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// RedisConfig holds the optional Redis connection used for rate limiting.
// An empty URL disables rate limiting.
type RedisConfig struct {
	URL        string        `koanf:"url"`
	RateLimit  int           `koanf:"rate_limit" validate:"gt=0"`
	RateWindow time.Duration `koanf:"rate_window" validate:"gt=0"`
}

// Enabled reports whether a Redis URL was configured
func (c RedisConfig) Enabled() bool {
	return c.URL != ""
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `koanf:"level" validate:"required,oneof=trace debug info warn error fatal panic disabled"`
	Format string `koanf:"format" validate:"required,oneof=console json"`
}

// Default returns the configuration used when no variable overrides it
func Default() *Config {
	return &Config{
		Env: Development,
		Server: ServerConfig{
			Port:            3000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:          DriverSQLite,
			Path:            "usuarios.db",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    25,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Redis: RedisConfig{
			RateLimit:  60,
			RateWindow: time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig builds the configuration from the defaults overlaid with APP_* environment variables
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKeyValue), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ValidateConfig checks struct constraints and the environment name
func ValidateConfig(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if !cfg.Env.Valid() {
		return fmt.Errorf("configuration validation failed: unknown environment %q", cfg.Env)
	}
	return nil
}

// listKeys are configuration keys whose value is a comma separated list
var listKeys = map[string]bool{
	"server.cors_allowed_origins": true,
}

// envKeyValue maps an environment variable to its configuration key, splitting list values
func envKeyValue(name, value string) (string, interface{}) {
	key := envKey(name)
	if listKeys[key] {
		return key, splitList(value)
	}
	return key, value
}

func splitList(value string) []string {
	items := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// envKey turns APP_DATABASE_MAX_OPEN_CONNS into database.max_open_conns
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}
