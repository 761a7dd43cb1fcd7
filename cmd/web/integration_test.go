package main

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"NowPlaying-Go/pkg/assets"
	"NowPlaying-Go/pkg/handlers"
	"NowPlaying-Go/pkg/music"
	"NowPlaying-Go/pkg/ogimage"
)

// stubProvider stands in for the real API clients so the full HTTP stack can
// be exercised without network credentials.
type stubProvider struct {
	tag    music.Service
	marker string
	id     string
	td     music.TrackData
	err    error
}

func (s *stubProvider) Service() music.Service { return s.tag }
func (s *stubProvider) ExtractID(url string) (string, bool) {
	if strings.Contains(url, s.marker) {
		return s.id, true
	}
	return "", false
}
func (s *stubProvider) FetchTrackData(context.Context, string) (music.TrackData, error) {
	return s.td, s.err
}
func (s *stubProvider) ServiceName() string { return "Spotify" }
func (s *stubProvider) ServiceIcon() string { return "spotify" }

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	renderer, err := ogimage.NewRenderer(assets.Builtin(), nil)
	if err != nil {
		t.Fatal(err)
	}
	log := logrus.New()
	log.SetOutput(io.Discard)
	app := &handlers.Application{
		Registry: music.NewRegistry(&stubProvider{
			tag:    music.Spotify,
			marker: "open.spotify.com/track/",
			id:     "xyz",
			td: music.TrackData{
				Title:      "Song",
				Artist:     "Band",
				ServiceURL: "https://open.spotify.com/track/xyz",
			},
		}),
		Renderer: renderer,
		BaseURL:  "https://np.example.com",
		Log:      log,
		Metrics:  handlers.NewMetrics(prometheus.NewRegistry()),
	}
	srv := httptest.NewServer(app.Routes())
	t.Cleanup(srv.Close)
	return srv
}

// TestServerRedirectPage drives a percent-encoded slug through a real
// listener; the raw URI must survive the server's path handling intact.
func TestServerRedirectPage(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/https%3A%2F%2Fopen.spotify.com%2Ftrack%2Fxyz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"<title>Song - Band</title>",
		"https://np.example.com/og?url=https%3A%2F%2Fopen.spotify.com%2Ftrack%2Fxyz",
		"https://open.spotify.com/track/xyz",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("body missing %q", want)
		}
	}
}

// TestServerOGImage fetches the preview image end to end.
func TestServerOGImage(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/og?url=https%3A%2F%2Fopen.spotify.com%2Ftrack%2Fxyz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Fatalf("content type = %q", ct)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if img.Bounds().Dx() != 1200 || img.Bounds().Dy() != 630 {
		t.Fatalf("unexpected dimensions: %v", img.Bounds())
	}
}

// TestServerHealthAndMetrics checks the operational endpoints; the request
// counter must show up in the exposition after traffic has flowed.
func TestServerHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz status = %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), "nowplaying_requests_total") {
		t.Error("metrics exposition missing request counter")
	}
	if !strings.Contains(string(body), `endpoint="healthz"`) {
		t.Error("metrics exposition missing healthz label")
	}
}

// TestServerUnknownSlug returns a client error rather than a redirect page.
func TestServerUnknownSlug(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/https%3A%2F%2Fsoundcloud.com%2Ffoo")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}
