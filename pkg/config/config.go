// Package config loads configuration from config.yaml with environment
// variable overrides. Secrets must only come from environment variables.
package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for showcase-api.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"0.0.0.0"`
	Port     string `yaml:"port" env:"PORT" env-default:"8080"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Request handling timeouts, in seconds.
	ReadTimeoutSeconds  int `yaml:"read_timeout_seconds" env:"READ_TIMEOUT_SECONDS" env-default:"30"`
	WriteTimeoutSeconds int `yaml:"write_timeout_seconds" env:"WRITE_TIMEOUT_SECONDS" env-default:"30"`
	IdleTimeoutSeconds  int `yaml:"idle_timeout_seconds" env:"IDLE_TIMEOUT_SECONDS" env-default:"120"`

	Auth     AuthConfig     `yaml:"auth"`
	Database DatabaseConfig `yaml:"database"`
	Uploads  UploadConfig   `yaml:"uploads"`
}

// AuthConfig holds token verification configuration.
type AuthConfig struct {
	// JWTSecret signs and verifies HS256 bearer tokens issued by the
	// identity provider. Secret - not in YAML.
	JWTSecret string `yaml:"-" env:"JWT_SECRET"`
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"showcase"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"showcase"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"25"`
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"migrations"`

	// Pool recycling, in minutes.
	ConnMaxLifetimeMinutes int `yaml:"conn_max_lifetime_minutes" env:"PGCONN_MAX_LIFETIME_MINUTES" env-default:"60"`
	ConnMaxIdleMinutes     int `yaml:"conn_max_idle_minutes" env:"PGCONN_MAX_IDLE_MINUTES" env-default:"30"`
}

// URL builds a connection string for pgx and the migration runner.
func (d *DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Database, d.SSLMode)
}

// UploadConfig holds document upload settings.
type UploadConfig struct {
	Dir string `yaml:"dir" env:"UPLOADS_DIR" env-default:"uploads"`
	// MaxSizeBytes caps a single uploaded file.
	MaxSizeBytes int64 `yaml:"max_size_bytes" env:"UPLOADS_MAX_SIZE_BYTES" env-default:"10485760"`
}

// Load reads configuration from config.yaml with environment variable
// overrides. If the file is absent, configuration comes from the
// environment alone. The version parameter is injected at build time.
func Load(version string) (*Config, error) {
	cfg := &Config{Version: version}

	if _, err := os.Stat("config.yaml"); err == nil {
		if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	return cfg, nil
}
