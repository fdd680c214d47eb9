package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAddr       = ":8080"
	defaultIssuer     = "accessgate"
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// Config holds process configuration sourced from ACCESSGATE_* environment
// variables, with an optional .env file for local development.
type Config struct {
	Addr       string
	PGDSN      string
	AuthSecret string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in when present; real environment variables win. The
// signing secret has no default: a process without one refuses to start.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Addr:       envOr("ACCESSGATE_ADDR", defaultAddr),
		PGDSN:      strings.TrimSpace(os.Getenv("ACCESSGATE_PG_DSN")),
		AuthSecret: strings.TrimSpace(os.Getenv("ACCESSGATE_AUTH_SECRET")),
		Issuer:     envOr("ACCESSGATE_ISSUER", defaultIssuer),
	}

	var err error
	if cfg.AccessTTL, err = durationOr("ACCESSGATE_ACCESS_TTL", defaultAccessTTL); err != nil {
		return Config{}, err
	}
	if cfg.RefreshTTL, err = durationOr("ACCESSGATE_REFRESH_TTL", defaultRefreshTTL); err != nil {
		return Config{}, err
	}
	if cfg.AuthSecret == "" {
		return Config{}, errors.New("ACCESSGATE_AUTH_SECRET is required")
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return d, nil
}
