package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort  int
	StoreDriver string // "sqlite" or "memory", chosen explicitly at startup

	DatabasePath string // sqlite variant only

	// Endpoint and credential for a hosted store variant. Opaque to the
	// application; passed through to the store, never parsed.
	StoreURL   string
	StoreToken string

	// Password used once to seed the first admin account. No default: when
	// unset, no admin is seeded.
	AdminBootstrapPassword string
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ServerPort:             port,
		StoreDriver:            getEnv("STORE_DRIVER", "sqlite"),
		DatabasePath:           getEnv("DATABASE_PATH", "./aeroops.db"),
		StoreURL:               os.Getenv("STORE_URL"),
		StoreToken:             os.Getenv("STORE_TOKEN"),
		AdminBootstrapPassword: os.Getenv("ADMIN_BOOTSTRAP_PASSWORD"),
	}

	switch cfg.StoreDriver {
	case "sqlite", "memory":
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	return cfg, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
