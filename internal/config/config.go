package config

import (
	"fmt"
	"os"
)

// Config holds environment-driven configuration.
type Config struct {
	Addr        string
	DatabaseURL string
}

// Load reads configuration from environment variables. DATABASE_URL wins
// when set; otherwise the URL is assembled from the discrete PG_* values.
func Load() Config {
	return Config{
		Addr:        ":" + getenv("PORT", "8080"),
		DatabaseURL: databaseURL(),
	}
}

func databaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		os.Getenv("PG_USER"),
		os.Getenv("PG_PASSWORD"),
		getenv("PG_HOST", "localhost"),
		getenv("PG_PORT", "5432"),
		os.Getenv("PG_DATABASE"),
	)
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
