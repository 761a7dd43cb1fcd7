// This file implements the preview image endpoint. Unlike the redirect page
// there is no graceful degradation here: the image is the entire output, so
// upstream failures surface as errors.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"NowPlaying-Go/pkg/music"
)

// OGImage serves GET /og?url={urlencoded-music-url} as a 1200x630 PNG. The
// image is deterministic for a given track and safe to cache downstream.
func (app *Application) OGImage(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("url")
	if raw == "" {
		respondJSONError(w, http.StatusBadRequest, "missing url parameter")
		return
	}
	if !validMusicURL(raw) {
		respondJSONError(w, http.StatusBadRequest, "invalid music URL")
		return
	}
	provider, id, ok := app.Registry.Detect(raw)
	if !ok {
		respondJSONError(w, http.StatusBadRequest, "unsupported music URL")
		return
	}

	td, err := provider.FetchTrackData(r.Context(), id)
	if err != nil {
		var cfg *music.ConfigError
		if errors.As(err, &cfg) {
			app.logger().WithError(err).Error("provider misconfigured")
			respondJSONError(w, http.StatusInternalServerError, "service misconfigured")
			return
		}
		app.logger().WithError(err).WithField("service", provider.Service()).Error("track metadata fetch failed")
		app.Metrics.ObserveUpstreamError(string(provider.Service()))
		respondJSONError(w, http.StatusInternalServerError, "failed to fetch track data")
		return
	}

	start := time.Now()
	img, err := app.Renderer.Render(r.Context(), td, provider.ServiceName(), provider.ServiceIcon())
	if err != nil {
		app.logger().WithError(err).Error("render preview image")
		respondJSONError(w, http.StatusInternalServerError, "failed to render image")
		return
	}
	app.Metrics.ObserveRender(time.Since(start))

	w.Header().Set("Content-Type", "image/png")
	// Caching is the CDN's job; just bound how stale it may go.
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(img)
}
