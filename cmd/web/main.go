// Command web initializes the NowPlaying-Go application and starts the HTTP
// server. Configuration is provided via environment variables for provider
// API credentials, the public base URL and the asset bundle location. The
// server serves redirect pages, preview images and Prometheus metrics.
package main

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"NowPlaying-Go/pkg/assets"
	"NowPlaying-Go/pkg/config"
	"NowPlaying-Go/pkg/handlers"
	"NowPlaying-Go/pkg/music"
	"NowPlaying-Go/pkg/ogimage"
	"NowPlaying-Go/pkg/spotify"
	"NowPlaying-Go/pkg/youtube"
)

// main configures application dependencies and starts the HTTP server.
func main() {
	log := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}

	// Missing credentials only fail the affected provider at call time,
	// but surface them at startup so deploys notice before the first
	// request does.
	if cfg.YouTubeAPIKey == "" {
		log.Warn("YOUTUBE_API_KEY is not set; YouTube Music lookups will fail")
	}
	if cfg.SpotifyClientID == "" || cfg.SpotifyClientSecret == "" {
		log.Warn("SPOTIFY_CLIENT_ID/SPOTIFY_CLIENT_SECRET are not set; Spotify lookups will fail")
	}

	// One bounded-timeout client shared by every upstream call.
	httpClient := &http.Client{Timeout: cfg.UpstreamTimeout}

	// Registration order is fixed: YouTube Music first, then Spotify.
	// URL detection depends on it.
	registry := music.NewRegistry(
		&youtube.Client{Key: cfg.YouTubeAPIKey, HTTP: httpClient},
		&spotify.Client{ClientID: cfg.SpotifyClientID, ClientSecret: cfg.SpotifyClientSecret, HTTP: httpClient},
	)

	var loader assets.Loader = assets.Builtin()
	if cfg.AssetsDir != "" {
		loader = assets.WithFallback(assets.Dir(cfg.AssetsDir), loader)
	}
	renderer, err := ogimage.NewRenderer(loader, httpClient)
	if err != nil {
		log.Fatalf("renderer init: %v", err)
	}

	app := &handlers.Application{
		Registry: registry,
		Renderer: renderer,
		BaseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		Log:      log,
		Metrics:  handlers.NewMetrics(prometheus.NewRegistry()),
	}

	log.WithField("addr", cfg.Addr).Info("starting server")
	if err := http.ListenAndServe(cfg.Addr, app.Routes()); err != nil {
		log.Fatalf("http server error: %v", err)
	}
}
