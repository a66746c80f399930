// Package config loads process-wide settings from the environment and the
// dotenv files in the working directory.
package config

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"

	DefaultMetadataURL = "http://169.254.169.254/latest/meta-data/placement/availability-zone"
)

type Config struct {
	Env  string
	Port string

	DatabaseURL string
	DBHost      string
	DBPort      int
	DBName      string
	DBUsername  string
	DBPassword  string
	DBSSLMode   string

	StoreBackend string
	MetadataURL  string
	LogLevel     slog.Level
	CORSOrigins  []string
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// DSN returns DATABASE_URL when set, otherwise a postgres URL assembled from
// the DB_* settings.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUsername, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, strconv.Itoa(c.DBPort)),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.DBSSLMode}}.Encode(),
	}
	return u.String()
}

// LoadEnvFiles reads .env and, outside production, the .db.env and .aws.env
// files written by the db-config command. Variables already present in the
// process environment are never overwritten.
func LoadEnvFiles(dir string) {
	files := []string{".env"}
	if os.Getenv("NODE_ENV") != "production" {
		files = append(files, ".db.env", ".aws.env")
	}
	for _, name := range files {
		path := filepath.Join(dir, name)
		if err := godotenv.Load(path); err != nil {
			slog.Debug("env file not loaded", "file", path, "err", err)
		}
	}
}

// FromEnv builds a Config from the current environment.
func FromEnv() (Config, error) {
	cfg := Config{
		Env:          getenv("NODE_ENV", "development"),
		Port:         getenv("PORT", "8080"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DBHost:       getenv("DB_HOST", "localhost"),
		DBName:       getenv("DB_NAME", "postgres"),
		DBUsername:   os.Getenv("DB_USERNAME"),
		DBPassword:   os.Getenv("DB_PASSWORD"),
		DBSSLMode:    getenv("DB_SSLMODE", "require"),
		StoreBackend: getenv("STORE_BACKEND", BackendPostgres),
		MetadataURL:  getenv("METADATA_URL", DefaultMetadataURL),
	}

	port, err := strconv.Atoi(getenv("DB_PORT", "5432"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	cfg.DBPort = port

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return Config{}, fmt.Errorf("invalid PORT %q: %w", cfg.Port, err)
	}

	switch cfg.StoreBackend {
	case BackendPostgres, BackendMemory:
	default:
		return Config{}, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getenv("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	for _, origin := range strings.Split(getenv("CORS_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	return cfg, nil
}

// Load reads the dotenv files from the working directory and then the
// environment.
func Load() (Config, error) {
	LoadEnvFiles("")
	return FromEnv()
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
