package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration
type Config struct {
	// Runtime environment ("development" or "production")
	Env string `env:"ENV" envDefault:"production"`

	// Server configuration
	Server ServerConfig

	// Remote record store (Supabase REST) configuration
	Supabase SupabaseConfig

	// Direct database connection used only for schema migrations
	Database DatabaseConfig

	// Import configuration
	Import ImportConfig

	// Credential handling
	Auth AuthConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"300s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	// Comma-separated list of allowed CORS origins
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000"`
}

// SupabaseConfig holds the REST endpoint of the remote record store
type SupabaseConfig struct {
	URL     string        `env:"SUPABASE_URL,required"`
	APIKey  string        `env:"SUPABASE_API_KEY,required"`
	Timeout time.Duration `env:"SUPABASE_TIMEOUT" envDefault:"15s"`
}

// DatabaseConfig holds the optional direct Postgres connection
type DatabaseConfig struct {
	URL            string        `env:"DATABASE_URL"`
	MigrationsPath string        `env:"MIGRATIONS_PATH" envDefault:"./migrations"`
	MaxOpenConns   int           `env:"DB_MAX_OPEN_CONNS" envDefault:"2"`
	MaxLifetime    time.Duration `env:"DB_MAX_LIFETIME" envDefault:"5m"`
}

// ImportConfig holds lead import settings
type ImportConfig struct {
	MaxUploadSize int64  `env:"IMPORT_MAX_UPLOAD_SIZE" envDefault:"52428800"` // 50MB
	UploadDir     string `env:"UPLOAD_DIR" envDefault:"./uploads"`
	// Report per-row failures alongside the aggregate counts
	RowErrors bool `env:"IMPORT_ROW_ERRORS" envDefault:"false"`
}

// AuthConfig selects how passwords are stored and compared
type AuthConfig struct {
	PasswordStrategy string `env:"AUTH_PASSWORD_STRATEGY" envDefault:"plaintext"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"` // "json" or "pretty"
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Supabase.URL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.Supabase.APIKey == "" {
		return fmt.Errorf("SUPABASE_API_KEY is required")
	}
	u, err := url.Parse(c.Supabase.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("SUPABASE_URL must be an absolute URL, got %q", c.Supabase.URL)
	}
	switch c.Auth.PasswordStrategy {
	case "plaintext", "argon2":
	default:
		return fmt.Errorf("AUTH_PASSWORD_STRATEGY must be one of: plaintext, argon2")
	}
	if c.Import.MaxUploadSize <= 0 {
		return fmt.Errorf("IMPORT_MAX_UPLOAD_SIZE must be positive")
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// AllowedOrigins parses the comma-separated origins string into a slice.
func (c *ServerConfig) AllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}

	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))
	for _, origin := range origins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
