// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jornada-app/backend/internal/journey"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// AMQPURL is the RabbitMQ connection string for journey completion events.
	// Optional: when empty, events are not published.
	AMQPURL string

	// Boundaries is the platform accounting-day boundary table.
	// Defaults to the seeded platforms (99 at midnight, Uber at 04:00 local).
	// Set PLATFORM_BOUNDARIES to override, e.g. "uber=4,app99=0,indrive=3".
	Boundaries []journey.PlatformBoundary
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		AMQPURL:     os.Getenv("AMQP_URL"),
	}

	boundaries, err := parseBoundaries(os.Getenv("PLATFORM_BOUNDARIES"))
	if err != nil {
		return Config{}, err
	}
	cfg.Boundaries = boundaries

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// parseBoundaries parses a "platform=hour" comma-separated list into a
// boundary table. An empty string yields the seeded defaults.
func parseBoundaries(s string) ([]journey.PlatformBoundary, error) {
	if strings.TrimSpace(s) == "" {
		return journey.DefaultBoundaries(), nil
	}

	var out []journey.PlatformBoundary
	for _, part := range splitCSV(s) {
		name, hourStr, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("PLATFORM_BOUNDARIES: entry %q is not platform=hour", part)
		}
		hour, err := strconv.Atoi(strings.TrimSpace(hourStr))
		if err != nil || hour < 0 || hour > 23 {
			return nil, fmt.Errorf("PLATFORM_BOUNDARIES: hour %q for platform %q must be 0-23", hourStr, name)
		}
		out = append(out, journey.PlatformBoundary{
			Platform: strings.TrimSpace(name),
			Hour:     hour,
		})
	}
	return out, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
