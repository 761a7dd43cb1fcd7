// Package config loads the application configuration from environment
// variables. Missing provider credentials are not an error here; they become
// call-time failures so a partially configured instance can still serve the
// providers it has keys for.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all environment-driven settings.
type Config struct {
	// Addr is the listen address of the HTTP server.
	Addr string `env:"ADDR" envDefault:":4000"`
	// BaseURL is the public origin used to build og:image URLs embedded in
	// redirect pages.
	BaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:4000"`

	YouTubeAPIKey       string `env:"YOUTUBE_API_KEY"`
	SpotifyClientID     string `env:"SPOTIFY_CLIENT_ID"`
	SpotifyClientSecret string `env:"SPOTIFY_CLIENT_SECRET"`

	// AssetsDir points at the deployed font/icon bundle. When empty the
	// built-in assets are used.
	AssetsDir string `env:"ASSETS_DIR"`

	// UpstreamTimeout bounds every provider API and thumbnail call so a
	// stalled upstream cannot hold a request open indefinitely.
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"5s"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
