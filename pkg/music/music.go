// Package music defines the generic data model and provider contract used
// across the application. Implementations wrap YouTube Music, Spotify or any
// other streaming platform. By depending on this package the rest of the
// application remains agnostic about the underlying service.
package music

import "context"

// Service identifies a supported music platform. The set is closed; tags are
// used only for registry lookup and carry no behaviour themselves.
type Service string

const (
	// YouTubeMusic identifies the YouTube Music provider.
	YouTubeMusic Service = "youtube_music"
	// Spotify identifies the Spotify provider.
	Spotify Service = "spotify"
)

// Fallback values substituted when an upstream response omits a field.
// TrackData returned by providers always carries a non-empty Title and Artist.
const (
	UnknownTitle  = "Unknown Title"
	UnknownArtist = "Unknown Artist"
)

// TrackData holds the normalized metadata for a single track. It is
// constructed fresh from a live upstream call on every request and never
// cached or persisted.
type TrackData struct {
	Title       string
	Artist      string
	Album       string
	Thumbnail   string // URL of the cover art; empty means "use placeholder"
	Description string
	ServiceURL  string // canonical URL for the track on its platform
}

// Provider is the capability set every music platform implements.
type Provider interface {
	// Service returns the platform tag used for registry lookup.
	Service() Service

	// ExtractID attempts to extract the platform's opaque track identifier
	// from a URL. The first matching pattern wins; ok is false when no
	// pattern matches.
	ExtractID(url string) (id string, ok bool)

	// FetchTrackData resolves a track identifier to normalized metadata
	// via the platform's public API.
	FetchTrackData(ctx context.Context, id string) (TrackData, error)

	// ServiceName returns the human readable platform name, e.g. "Spotify".
	ServiceName() string

	// ServiceIcon returns the asset key of the platform icon.
	ServiceIcon() string
}
