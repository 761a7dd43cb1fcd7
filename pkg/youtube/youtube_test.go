package youtube

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"NowPlaying-Go/pkg/music"
)

type rt struct {
	status int
	body   string
}

func (r rt) RoundTrip(*http.Request) (*http.Response, error) {
	rec := httptest.NewRecorder()
	rec.WriteHeader(r.status)
	rec.WriteString(r.body)
	return rec.Result(), nil
}

// TestExtractID covers the recognized URL shapes and the terminator rules.
func TestExtractID(t *testing.T) {
	c := &Client{}
	cases := []struct {
		url string
		id  string
		ok  bool
	}{
		{"https://www.youtube.com/watch?v=abc123", "abc123", true},
		{"https://youtu.be/abc123", "abc123", true},
		{"https://www.youtube.com/embed/abc123", "abc123", true},
		{"https://music.youtube.com/watch?v=abc123", "abc123", true},
		{"https://music.youtube.com/watch?v=abc123&si=xyz", "abc123", true},
		{"https://youtu.be/abc123?t=42", "abc123", true},
		{"https://youtu.be/abc123#frag", "abc123", true},
		{"https://open.spotify.com/track/abc123", "", false},
		{"not a url", "", false},
	}
	for _, tc := range cases {
		id, ok := c.ExtractID(tc.url)
		if ok != tc.ok || id != tc.id {
			t.Errorf("ExtractID(%q) = %q, %v; want %q, %v", tc.url, id, ok, tc.id, tc.ok)
		}
	}
}

// TestFetchTrackDataSuccess verifies the snippet is converted into normalized
// track metadata with the highest resolution thumbnail.
func TestFetchTrackDataSuccess(t *testing.T) {
	data := `{"items":[{"snippet":{"title":"Song","channelTitle":"Artist","description":"d","thumbnails":{"maxres":{"url":"max"},"high":{"url":"high"},"default":{"url":"def"}}}}]}`
	c := &Client{Key: "k", HTTP: &http.Client{Transport: rt{status: 200, body: data}}}
	td, err := c.FetchTrackData(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if td.Title != "Song" || td.Artist != "Artist" || td.Thumbnail != "max" {
		t.Errorf("unexpected track data: %+v", td)
	}
	if td.ServiceURL != "https://music.youtube.com/watch?v=abc123" {
		t.Errorf("unexpected service url: %s", td.ServiceURL)
	}
}

// TestFetchTrackDataThumbnailFallback checks the maxres -> high -> medium ->
// default chain.
func TestFetchTrackDataThumbnailFallback(t *testing.T) {
	data := `{"items":[{"snippet":{"title":"Song","channelTitle":"Artist","thumbnails":{"medium":{"url":"med"},"default":{"url":"def"}}}}]}`
	c := &Client{Key: "k", HTTP: &http.Client{Transport: rt{status: 200, body: data}}}
	td, err := c.FetchTrackData(context.Background(), "x")
	if err != nil || td.Thumbnail != "med" {
		t.Fatalf("unexpected result: %v %+v", err, td)
	}
}

// TestFetchTrackDataNoThumbnails resolves to an empty thumbnail when no size
// is present, signalling "use placeholder" downstream.
func TestFetchTrackDataNoThumbnails(t *testing.T) {
	data := `{"items":[{"snippet":{"title":"Song","channelTitle":"Artist","thumbnails":{}}}]}`
	c := &Client{Key: "k", HTTP: &http.Client{Transport: rt{status: 200, body: data}}}
	td, err := c.FetchTrackData(context.Background(), "x")
	if err != nil || td.Thumbnail != "" {
		t.Fatalf("unexpected result: %v %+v", err, td)
	}
}

// TestFetchTrackDataMissingFields substitutes the documented fallbacks for
// absent title and channel.
func TestFetchTrackDataMissingFields(t *testing.T) {
	data := `{"items":[{"snippet":{"thumbnails":{}}}]}`
	c := &Client{Key: "k", HTTP: &http.Client{Transport: rt{status: 200, body: data}}}
	td, err := c.FetchTrackData(context.Background(), "x")
	if err != nil {
		t.Fatal(err)
	}
	if td.Title != music.UnknownTitle || td.Artist != music.UnknownArtist {
		t.Errorf("fallbacks not applied: %+v", td)
	}
}

// TestFetchTrackDataStatusError ensures non-200 responses surface as
// UpstreamError with the status attached.
func TestFetchTrackDataStatusError(t *testing.T) {
	c := &Client{Key: "k", HTTP: &http.Client{Transport: rt{status: 403}}}
	_, err := c.FetchTrackData(context.Background(), "x")
	var ue *music.UpstreamError
	if !errors.As(err, &ue) || ue.Status != 403 {
		t.Fatalf("expected UpstreamError with status 403, got %v", err)
	}
}

// TestFetchTrackDataNotFound maps an empty item list to the not-found
// sentinel.
func TestFetchTrackDataNotFound(t *testing.T) {
	c := &Client{Key: "k", HTTP: &http.Client{Transport: rt{status: 200, body: `{"items":[]}`}}}
	_, err := c.FetchTrackData(context.Background(), "x")
	if !errors.Is(err, music.ErrTrackNotFound) {
		t.Fatalf("expected ErrTrackNotFound, got %v", err)
	}
}

// TestFetchTrackDataMissingKey is a configuration error, not an upstream one.
func TestFetchTrackDataMissingKey(t *testing.T) {
	c := &Client{}
	_, err := c.FetchTrackData(context.Background(), "x")
	var cfg *music.ConfigError
	if !errors.As(err, &cfg) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}
