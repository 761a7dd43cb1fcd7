// Package spotify wraps the official Spotify client library and implements
// the music.Provider interface. Authentication uses the client credentials
// flow; because the service keeps no session state the token exchange is
// performed fresh for every track lookup rather than cached.
//
// The wrapped library does not provide context support so cancellation is
// checked explicitly before each call.
package spotify

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	libspotify "github.com/zmb3/spotify"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"NowPlaying-Go/pkg/music"
)

// idPatterns are tried in order; track IDs are alphanumeric and terminate
// before any query string.
var idPatterns = []*regexp.Regexp{
	regexp.MustCompile(`spotify\.com/track/([a-zA-Z0-9]+)`),
	regexp.MustCompile(`open\.spotify\.com/track/([a-zA-Z0-9]+)`),
}

// trackGetter defines the subset of the spotify.Client used by this package.
// It allows the concrete client to be replaced in tests.
type trackGetter interface {
	GetTrack(id libspotify.ID) (*libspotify.FullTrack, error)
}

// Client implements music.Provider on top of the Spotify Web API. ClientID
// and ClientSecret come from the Spotify developer dashboard. If HTTP is nil
// a client with a 10 second timeout is used.
type Client struct {
	ClientID     string
	ClientSecret string
	HTTP         *http.Client

	// newAPI builds the authenticated track API for a single lookup. Tests
	// substitute a fake; when nil the client credentials flow is used.
	newAPI func(ctx context.Context) (trackGetter, error)
}

// Compile-time interface check ensuring Client satisfies the generic
// music.Provider interface used by the rest of the application.
var _ music.Provider = (*Client)(nil)

// Service returns the Spotify tag.
func (c *Client) Service() music.Service { return music.Spotify }

// ServiceName returns the display name shown on rendered previews.
func (c *Client) ServiceName() string { return "Spotify" }

// ServiceIcon returns the asset key of the Spotify icon.
func (c *Client) ServiceIcon() string { return "spotify" }

// ExtractID pulls the track ID out of spotify.com and open.spotify.com track
// URLs.
func (c *Client) ExtractID(raw string) (string, bool) {
	for _, p := range idPatterns {
		if m := p.FindStringSubmatch(raw); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// api exchanges the client credentials for a bearer token and returns a track
// API bound to it. Each call performs a fresh exchange; failures of the token
// endpoint surface as UpstreamError.
func (c *Client) api(ctx context.Context) (trackGetter, error) {
	if c.newAPI != nil {
		return c.newAPI(ctx)
	}
	if c.ClientID == "" || c.ClientSecret == "" {
		return nil, &music.ConfigError{Reason: "Spotify client credentials are not set"}
	}
	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	// The oauth2 package picks the transport for the exchange up from the
	// context, which keeps the injected test client in play.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	conf := &clientcredentials.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		TokenURL:     libspotify.TokenURL,
	}
	token, err := conf.Token(ctx)
	if err != nil {
		status := 0
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) && rerr.Response != nil {
			status = rerr.Response.StatusCode
		}
		return nil, &music.UpstreamError{Service: music.Spotify, Status: status, Err: err}
	}
	api := libspotify.NewClient(oauth2.NewClient(ctx, oauth2.StaticTokenSource(token)))
	return &api, nil
}

// FetchTrackData resolves a track ID to normalized metadata. The artist field
// joins all listed artists with ", " and the thumbnail is the primary album
// image.
func (c *Client) FetchTrackData(ctx context.Context, id string) (music.TrackData, error) {
	api, err := c.api(ctx)
	if err != nil {
		return music.TrackData{}, err
	}
	// The underlying client does not accept a context, so honour the
	// provided one by checking for cancellation before the call.
	if err := ctx.Err(); err != nil {
		return music.TrackData{}, err
	}
	track, err := api.GetTrack(libspotify.ID(id))
	if err != nil {
		var spErr libspotify.Error
		if errors.As(err, &spErr) {
			if spErr.Status == http.StatusNotFound {
				return music.TrackData{}, &music.UpstreamError{Service: music.Spotify, Status: spErr.Status, Err: music.ErrTrackNotFound}
			}
			return music.TrackData{}, &music.UpstreamError{Service: music.Spotify, Status: spErr.Status, Err: err}
		}
		return music.TrackData{}, &music.UpstreamError{Service: music.Spotify, Err: err}
	}

	names := make([]string, 0, len(track.Artists))
	for _, a := range track.Artists {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	td := music.TrackData{
		Title:  track.Name,
		Artist: strings.Join(names, ", "),
		Album:  track.Album.Name,
	}
	if len(track.Album.Images) > 0 {
		td.Thumbnail = track.Album.Images[0].URL
	}
	// Prefer the canonical URL reported by the API, synthesizing one only
	// when it is absent.
	if u := track.ExternalURLs["spotify"]; u != "" {
		td.ServiceURL = u
	} else {
		td.ServiceURL = "https://open.spotify.com/track/" + id
	}
	if td.Title == "" {
		td.Title = music.UnknownTitle
	}
	if td.Artist == "" {
		td.Artist = music.UnknownArtist
	}
	return td, nil
}
