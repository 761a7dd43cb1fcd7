// Package youtube implements the music.Provider interface using the YouTube
// Data API. Only the single-video lookup endpoint is supported. An API key
// must be provided when constructing the client.
//
// Network calls are performed using the provided http.Client allowing callers
// to substitute a test client.
package youtube

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"NowPlaying-Go/pkg/music"
)

const videosURL = "https://www.googleapis.com/youtube/v3/videos"

// idPatterns are tried in order against the raw URL; the first capturing
// group of the first match is the video ID. IDs terminate at '&', newline,
// '?' or '#'.
var idPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/|music\.youtube\.com/watch\?v=)([^&\n?#]+)`),
}

// Client provides access to the YouTube Data API. If HTTP is nil a client
// with a 10 second timeout is used, so the zero value plus a key is ready for
// use.
type Client struct {
	Key  string
	HTTP *http.Client
}

// ensure Client implements the music.Provider interface.
var _ music.Provider = (*Client)(nil)

// Service returns the YouTube Music tag.
func (c *Client) Service() music.Service { return music.YouTubeMusic }

// ServiceName returns the display name shown on rendered previews.
func (c *Client) ServiceName() string { return "YouTube Music" }

// ServiceIcon returns the asset key of the YouTube Music icon.
func (c *Client) ServiceIcon() string { return "youtube-music" }

// ExtractID pulls the video ID out of watch, share, embed and YouTube Music
// URL shapes.
func (c *Client) ExtractID(raw string) (string, bool) {
	for _, p := range idPatterns {
		if m := p.FindStringSubmatch(raw); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// FetchTrackData looks up a single video and converts its snippet into
// normalized track metadata. The channel title stands in for the artist and
// the thumbnail prefers the highest available resolution.
func (c *Client) FetchTrackData(ctx context.Context, id string) (music.TrackData, error) {
	if c.Key == "" {
		return music.TrackData{}, &music.ConfigError{Reason: "YouTube Data API key is not set"}
	}
	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	params := url.Values{
		"id":   {id},
		"key":  {c.Key},
		"part": {"snippet"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, videosURL+"?"+params.Encode(), nil)
	if err != nil {
		return music.TrackData{}, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return music.TrackData{}, &music.UpstreamError{Service: music.YouTubeMusic, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return music.TrackData{}, &music.UpstreamError{
			Service: music.YouTubeMusic,
			Status:  resp.StatusCode,
			Err:     errStatus(resp.Status),
		}
	}
	var body struct {
		Items []struct {
			Snippet struct {
				Title        string `json:"title"`
				ChannelTitle string `json:"channelTitle"`
				Description  string `json:"description"`
				Thumbnails   struct {
					MaxRes  *thumb `json:"maxres"`
					High    *thumb `json:"high"`
					Medium  *thumb `json:"medium"`
					Default *thumb `json:"default"`
				} `json:"thumbnails"`
			} `json:"snippet"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return music.TrackData{}, &music.UpstreamError{Service: music.YouTubeMusic, Err: err}
	}
	if len(body.Items) == 0 {
		return music.TrackData{}, &music.UpstreamError{Service: music.YouTubeMusic, Err: music.ErrTrackNotFound}
	}
	sn := body.Items[0].Snippet
	td := music.TrackData{
		Title:       sn.Title,
		Artist:      sn.ChannelTitle,
		Description: sn.Description,
		Thumbnail:   firstThumb(sn.Thumbnails.MaxRes, sn.Thumbnails.High, sn.Thumbnails.Medium, sn.Thumbnails.Default),
		// Synthesized rather than taken from the API so shares land on
		// YouTube Music, not plain YouTube.
		ServiceURL: "https://music.youtube.com/watch?v=" + id,
	}
	if td.Title == "" {
		td.Title = music.UnknownTitle
	}
	if td.Artist == "" {
		td.Artist = music.UnknownArtist
	}
	return td, nil
}

type thumb struct {
	URL string `json:"url"`
}

// firstThumb walks the resolution fallback chain and returns the first
// populated thumbnail URL, or "" when no size is present.
func firstThumb(thumbs ...*thumb) string {
	for _, t := range thumbs {
		if t != nil && t.URL != "" {
			return t.URL
		}
	}
	return ""
}

type errStatus string

func (e errStatus) Error() string { return "youtube videos error: " + string(e) }
