package music

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeProvider matches any URL containing its marker string.
type fakeProvider struct {
	tag    Service
	marker string
	id     string
}

func (f *fakeProvider) Service() Service { return f.tag }
func (f *fakeProvider) ExtractID(url string) (string, bool) {
	if strings.Contains(url, f.marker) {
		return f.id, true
	}
	return "", false
}
func (f *fakeProvider) FetchTrackData(context.Context, string) (TrackData, error) {
	return TrackData{}, nil
}
func (f *fakeProvider) ServiceName() string { return string(f.tag) }
func (f *fakeProvider) ServiceIcon() string { return string(f.tag) }

// TestDetectFirstMatchWins verifies detection is deterministic by
// registration order when multiple providers match.
func TestDetectFirstMatchWins(t *testing.T) {
	first := &fakeProvider{tag: YouTubeMusic, marker: "example", id: "yt"}
	second := &fakeProvider{tag: Spotify, marker: "example", id: "sp"}
	r := NewRegistry(first, second)

	p, id, ok := r.Detect("https://example.com/x")
	if !ok || p.Service() != YouTubeMusic || id != "yt" {
		t.Fatalf("unexpected detection: %v %q %v", p, id, ok)
	}
}

// TestDetectNoMatch ensures unmatched URLs report no provider.
func TestDetectNoMatch(t *testing.T) {
	r := NewRegistry(&fakeProvider{tag: Spotify, marker: "spotify"})
	if _, _, ok := r.Detect("https://soundcloud.com/foo"); ok {
		t.Fatal("expected no provider match")
	}
}

// TestGetUnknownService ensures unknown tags surface as a ConfigError.
func TestGetUnknownService(t *testing.T) {
	r := NewRegistry(&fakeProvider{tag: Spotify, marker: "spotify"})
	_, err := r.Get(Service("tidal"))
	var cfg *ConfigError
	if !errors.As(err, &cfg) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if !strings.Contains(err.Error(), "unsupported music service") {
		t.Errorf("unexpected message: %v", err)
	}
}

// TestAllPreservesOrder checks enumeration follows registration order.
func TestAllPreservesOrder(t *testing.T) {
	r := NewRegistry(
		&fakeProvider{tag: YouTubeMusic, marker: "yt"},
		&fakeProvider{tag: Spotify, marker: "sp"},
	)
	all := r.All()
	if len(all) != 2 || all[0].Service() != YouTubeMusic || all[1].Service() != Spotify {
		t.Fatalf("unexpected order: %+v", all)
	}
}
