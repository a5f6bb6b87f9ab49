// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Backend names accepted by STORE_BACKEND.
const (
	BackendREST     = "rest"
	BackendPostgres = "postgres"
)

// Env var names for the content store credentials. The primary names are
// documented; the deprecated aliases are still accepted because earlier
// deployments used them, and are normalized once here.
const (
	EnvStoreURL = "SUPABASE_URL"
	EnvStoreKey = "SUPABASE_ANON_KEY"
)

var (
	storeURLAliases = []string{"VITE_SUPABASE_URL", "NEXT_PUBLIC_SUPABASE_URL", "REACT_APP_SUPABASE_URL"}
	storeKeyAliases = []string{"VITE_SUPABASE_ANON_KEY", "SUPABASE_KEY", "NEXT_PUBLIC_SUPABASE_ANON_KEY"}
)

// dotEnvFiles are loaded in order. Variables already present in the
// environment are never overridden, so earlier files win.
var dotEnvFiles = []string{".env.local", ".env"}

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host      string
	Port      string
	Env       string // "development", "production", "testing"
	LogLevel  string
	LogFormat string // "text" or "json"
	// TrustProxy keys rate limits by X-Forwarded-For. Enable only behind
	// a reverse proxy that sets the header.
	TrustProxy bool

	// Content store
	StoreBackend string // "rest" or "postgres"
	StoreURL     string
	StoreKey     string
	StoreTimeout time.Duration

	// PostgreSQL connection (postgres backend only)
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (local state). Empty host means in-memory state.
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// Admin panel shared key. Empty disables the admin API.
	AdminKey string

	// AI summaries
	AIProvider    string
	GeminiKey     string
	GeminiModel   string
	GeminiBaseURL string
	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string

	// Sale notifications
	SlackToken        string
	SlackSalesChannel string

	// DeprecatedEnv lists the deprecated variable names that supplied a value.
	DeprecatedEnv []string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Optional .env files are read first.
// Returns an error if critical values are missing in production mode.
func Load() (*Config, error) {
	if err := loadDotEnv(dotEnvFiles...); err != nil {
		return nil, err
	}

	cfg := &Config{
		Host:      envOrDefault("APP_HOST", "0.0.0.0"),
		Port:      envOrDefault("APP_PORT", "8080"),
		Env:       envOrDefault("APP_ENV", "development"),
		LogLevel:  envOrDefault("LOG_LEVEL", "info"),
		LogFormat: envOrDefault("LOG_FORMAT", "text"),

		TrustProxy: boolOrDefault("TRUST_PROXY", false),

		StoreBackend: strings.ToLower(envOrDefault("STORE_BACKEND", BackendREST)),
		StoreTimeout: durationOrDefault("STORE_TIMEOUT", 15*time.Second),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "inkwell"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "inkwell"),

		ValkeyHost:     os.Getenv("VALKEY_HOST"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		AdminKey: os.Getenv("ADMIN_KEY"),

		AIProvider:    envOrDefault("AI_PROVIDER", "gemini"),
		GeminiKey:     firstNonEmpty(os.Getenv("GEMINI_API_KEY"), os.Getenv("API_KEY")),
		GeminiModel:   envOrDefault("GEMINI_MODEL", "gemini-3-flash-preview"),
		GeminiBaseURL: envOrDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   envOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: envOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),

		SlackToken:        os.Getenv("SLACK_BOT_TOKEN"),
		SlackSalesChannel: os.Getenv("SLACK_SALES_CHANNEL"),
	}

	cfg.StoreURL = cfg.aliasedEnv(EnvStoreURL, storeURLAliases)
	cfg.StoreKey = cfg.aliasedEnv(EnvStoreKey, storeKeyAliases)

	for _, name := range cfg.DeprecatedEnv {
		slog.Warn("deprecated environment variable in use", "name", name)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case BackendREST, BackendPostgres:
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", BackendREST, BackendPostgres, c.StoreBackend)
	}

	if c.Env == "production" {
		if c.StoreBackend == BackendPostgres && c.DBPassword == "changeme" {
			return fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
		if c.AdminKey == "admin123" {
			return fmt.Errorf("ADMIN_KEY must not use the sample value in production")
		}
	}
	return nil
}

// aliasedEnv returns the value of primary, falling back to the first
// deprecated alias that is set. Aliases that supply a value are recorded.
func (c *Config) aliasedEnv(primary string, aliases []string) string {
	if v := os.Getenv(primary); v != "" {
		return v
	}
	for _, name := range aliases {
		if v := os.Getenv(name); v != "" {
			c.DeprecatedEnv = append(c.DeprecatedEnv, name+" (use "+primary+")")
			return v
		}
	}
	return ""
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// UsesValkey returns true if local state should live in Valkey.
func (c *Config) UsesValkey() bool {
	return c.ValkeyHost != ""
}

// SlogLevel maps LogLevel onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// loadDotEnv loads each file that exists. Missing files are skipped.
func loadDotEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		slog.Warn("invalid duration, using default", "name", key, "value", v, "default", fallback)
	}
	return fallback
}

func boolOrDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		slog.Warn("invalid boolean, using default", "name", key, "value", v, "default", fallback)
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
