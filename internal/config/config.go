package config

import (
	"fmt"
	"os"
	"strconv"
)

type Backend string

const (
	BackendPostgres Backend = "postgres"
	BackendMongo    Backend = "mongo"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Backend         Backend
	Port            int
	RequirePassword bool

	Postgres *SQLConfig
	Mongo    *MongoConfig
}

// Load reads configuration from the process environment. Connection
// parameters for the backend that is not selected are still parsed so a
// misconfigured selection fails at startup, not at first request.
func Load() (*Config, error) {
	cfg := &Config{
		Backend:         Backend(envOr("MARKPOST_BACKEND", string(BackendPostgres))),
		RequirePassword: os.Getenv("MARKPOST_REQUIRE_PASSWORD") == "true",
	}

	switch cfg.Backend {
	case BackendPostgres, BackendMongo:
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	port, err := strconv.Atoi(envOr("PORT", "3000"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}
	cfg.Port = port

	pgPort, err := strconv.Atoi(envOr("PG_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid PG_PORT: %w", err)
	}
	cfg.Postgres = NewSQLConfig().
		WithDriver("postgres").
		WithHost(envOr("PG_HOST", "localhost"), pgPort).
		WithCredentials(os.Getenv("PG_USER"), os.Getenv("PG_PASSWORD")).
		WithDatabase(envOr("PG_DATABASE", "markpost"))

	mongoPort, err := strconv.Atoi(envOr("MONGO_PORT", "27017"))
	if err != nil {
		return nil, fmt.Errorf("invalid MONGO_PORT: %w", err)
	}
	cfg.Mongo = NewMongoConfig().
		WithHost(envOr("MONGO_HOST", "localhost"), mongoPort).
		WithCredentials(os.Getenv("MONGO_USER"), os.Getenv("MONGO_PASSWORD")).
		WithDatabase(envOr("MONGO_DATABASE", "markpost"))
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		cfg.Mongo.WithURI(uri)
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
