package server

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ironsheep/image-theme-mcp/internal/imaging"
	"github.com/ironsheep/image-theme-mcp/internal/palette"
)

// Config holds the server settings read from the environment at startup.
type Config struct {
	// Fallback is the colour reported when a sampled region has no
	// qualifying pixels. Tool calls may override it per request.
	Fallback palette.Key

	// FetchTimeout bounds the download of a remote image.
	FetchTimeout time.Duration

	// MaxFetchBytes caps the size of a downloaded image.
	MaxFetchBytes int64

	// Debug enables verbose logging to stderr.
	Debug bool
}

// DefaultConfig returns the settings used when no environment overrides are set.
func DefaultConfig() Config {
	fetch := imaging.DefaultFetchConfig()
	return Config{
		Fallback:      palette.DefaultFallback,
		FetchTimeout:  fetch.Timeout,
		MaxFetchBytes: fetch.MaxBytes,
	}
}

// ConfigFromEnv overlays the IMAGE_THEME_* environment variables on DefaultConfig.
//
// Recognised variables:
//   - IMAGE_THEME_LOG_LEVEL: "debug" enables debug logging
//   - IMAGE_THEME_FALLBACK: fallback colour, "#rrggbb" or "rrggbb"
//   - IMAGE_THEME_FETCH_TIMEOUT: Go duration, e.g. "5s"
//   - IMAGE_THEME_MAX_FETCH_BYTES: integer byte limit
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	cfg.Debug = os.Getenv("IMAGE_THEME_LOG_LEVEL") == "debug"

	fallback, err := palette.ParseKey(envOrDefault("IMAGE_THEME_FALLBACK", cfg.Fallback.String()))
	if err != nil {
		return cfg, fmt.Errorf("IMAGE_THEME_FALLBACK: %w", err)
	}
	cfg.Fallback = fallback

	timeout, err := envDurationOrDefault("IMAGE_THEME_FETCH_TIMEOUT", cfg.FetchTimeout)
	if err != nil {
		return cfg, err
	}
	cfg.FetchTimeout = timeout

	maxBytes, err := envInt64OrDefault("IMAGE_THEME_MAX_FETCH_BYTES", cfg.MaxFetchBytes)
	if err != nil {
		return cfg, err
	}
	cfg.MaxFetchBytes = maxBytes

	return cfg, nil
}

// fetchConfig translates the server settings into loader settings.
func (c Config) fetchConfig() imaging.FetchConfig {
	fetch := imaging.DefaultFetchConfig()
	if c.FetchTimeout > 0 {
		fetch.Timeout = c.FetchTimeout
	}
	if c.MaxFetchBytes > 0 {
		fetch.MaxBytes = c.MaxFetchBytes
	}
	return fetch
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envDurationOrDefault(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s: invalid duration %q", key, value)
	}
	return d, nil
}

func envInt64OrDefault(key string, fallback int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s: invalid byte count %q", key, value)
	}
	return n, nil
}
