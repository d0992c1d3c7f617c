// Package config handles application configuration and environment loading.
package config

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Config holds the configuration for table synchronization and optional
// S3 and warehouse access.
type Config struct {
	// S3 fields are optional — nil when not configured.
	S3KeyID    *string
	S3Secret   *string
	S3Endpoint *string
	S3Region   *string

	WarehouseDSN string // Postgres-protocol DSN for the warehouse (optional; scripts are printed without it)
	RegistryPath string // path to the YAML schema registry (default "schemas.yaml")
	Bucket       string // bucket holding the external datasets
	Schema       string // external schema tables are created in
	SchemaAlias  string // schema alias views are created in (optional)
	Format       string // file format for new tables (default "parquet")
	LogLevel     string // log level: debug, info, warn, error (default "info")
}

// SlogLevel maps the LogLevel string to an slog.Level.
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

// HasS3Config returns true if all required S3 fields are set. The
// endpoint stays optional so the SDK can resolve regional AWS endpoints.
func (c *Config) HasS3Config() bool {
	return c.S3KeyID != nil && c.S3Secret != nil && c.S3Region != nil
}

// LoadFromEnv loads configuration from environment variables.
// S3 and warehouse variables are optional — the tool can generate
// scripts without them.
func LoadFromEnv() *Config {
	cfg := &Config{
		WarehouseDSN: os.Getenv("WAREHOUSE_DSN"),
		RegistryPath: os.Getenv("SCHEMA_REGISTRY"),
		Bucket:       os.Getenv("BUCKET"),
		Schema:       os.Getenv("EXTERNAL_SCHEMA"),
		SchemaAlias:  os.Getenv("SCHEMA_ALIAS"),
		Format:       os.Getenv("FILE_FORMAT"),
		LogLevel:     os.Getenv("LOG_LEVEL"),
	}

	// S3 fields are optional — only set if present
	if v := os.Getenv("KEY_ID"); v != "" {
		cfg.S3KeyID = &v
	}
	if v := os.Getenv("SECRET"); v != "" {
		cfg.S3Secret = &v
	}
	if v := os.Getenv("ENDPOINT"); v != "" {
		cfg.S3Endpoint = &v
	}
	if v := os.Getenv("REGION"); v != "" {
		cfg.S3Region = &v
	}

	// Defaults
	if cfg.RegistryPath == "" {
		cfg.RegistryPath = "schemas.yaml"
	}
	if cfg.Format == "" {
		cfg.Format = "parquet"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg
}

// LoadDotEnv reads a .env file and sets any variables not already in the environment.
// Lines must be in KEY=VALUE format. Comments (#) and blank lines are skipped.
func LoadDotEnv(path string) error {
	f, err := os.Open(path) //nolint:gosec // path is caller-controlled
	if err != nil {
		if os.IsNotExist(err) {
			return nil // .env not found is not an error
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		value = stripQuotes(value)
		// Only set if not already in the environment (env vars take precedence)
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("setenv %s: %w", key, err)
			}
		}
	}
	return scanner.Err()
}

// stripQuotes removes surrounding double or single quotes from a value.
// Only strips if both the first and last characters are matching quotes.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
