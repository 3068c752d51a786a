package main

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"lg/weight-projection-go-api/internal/projection"
)

// Config holds the server settings read from the environment (after .env).
type Config struct {
	Port               string
	DefaultSessionKcal float64  // SIM_DEFAULT_SESSION_KCAL; used when a request omits calories_per_session
	Seed               int64    // SIM_SEED; 0 means seed each run from the clock
	AllowedOrigins     []string // CORS_ALLOWED_ORIGINS, comma-separated
	LogLevel           string
	LogFormat          string // "json" or "console"
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

// ConfigFromEnv reads Config, leaving malformed numbers to Validate.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		Port:               getenv("PORT", "3000"),
		DefaultSessionKcal: projection.DefaultSessionKcal,
		LogLevel:           getenv("LOG_LEVEL", "info"),
		LogFormat:          getenv("LOG_FORMAT", "json"),
	}

	if v := os.Getenv("SIM_DEFAULT_SESSION_KCAL"); v != "" {
		kcal, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("SIM_DEFAULT_SESSION_KCAL: %w", err)
		}
		cfg.DefaultSessionKcal = kcal
	}
	if v := os.Getenv("SIM_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("SIM_SEED: %w", err)
		}
		cfg.Seed = seed
	}

	for _, o := range strings.Split(getenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", c.Port)
	}
	if c.DefaultSessionKcal < 0 || math.IsNaN(c.DefaultSessionKcal) || math.IsInf(c.DefaultSessionKcal, 0) {
		return fmt.Errorf("SIM_DEFAULT_SESSION_KCAL must be a non-negative number, got %v", c.DefaultSessionKcal)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if c.LogFormat != "json" && c.LogFormat != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.LogFormat)
	}
	return nil
}
