package metadata

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

const (
	DefaultBaseURL     = "http://www.omdbapi.com/"
	DefaultTimeoutSecs = 10
)

// ErrMissingAPIKey is returned when no OMDb API key is configured.
var ErrMissingAPIKey = errors.New("OMDB_API_KEY is not set")

// Config captures provider settings derived from environment variables.
type Config struct {
	BaseURL     string
	APIKey      string
	TimeoutSecs int
}

// LoadConfig reads OMDB_URL, OMDB_API_KEY and OMDB_TIMEOUT_SECS, applying
// defaults. A missing API key is not an error here; only lookups need it.
func LoadConfig() (Config, error) {
	cfg := Config{
		BaseURL:     getEnv("OMDB_URL", DefaultBaseURL),
		APIKey:      os.Getenv("OMDB_API_KEY"),
		TimeoutSecs: getEnvInt("OMDB_TIMEOUT_SECS", DefaultTimeoutSecs),
	}
	if cfg.TimeoutSecs <= 0 {
		return Config{}, fmt.Errorf("OMDB_TIMEOUT_SECS must be positive")
	}
	return cfg, nil
}

// Timeout returns the per-request timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// NewClient builds an OMDb client from cfg.
func (c Config) NewClient(logger *slog.Logger) (*OMDbClient, error) {
	return NewOMDbClient(c.BaseURL, c.APIKey, c.Timeout(), logger)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}
