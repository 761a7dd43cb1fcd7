// Package handlers contains the HTTP handlers for NowPlaying-Go: the
// redirect document that carries the Open Graph tags and the endpoint that
// serves the rendered preview image. Both are stateless; every request
// resolves track metadata fresh from the provider APIs.
package handlers

import (
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"NowPlaying-Go/pkg/music"
	"NowPlaying-Go/pkg/ogimage"
)

// Application bundles the dependencies used by the HTTP handlers.
type Application struct {
	Registry *music.Registry
	Renderer *ogimage.Renderer
	// BaseURL is the public origin used to build the og:image URL embedded
	// in redirect pages, without a trailing slash.
	BaseURL string
	Log     *logrus.Logger
	Metrics *Metrics
}

func (app *Application) logger() *logrus.Logger {
	if app.Log != nil {
		return app.Log
	}
	return logrus.StandardLogger()
}

// Home is the plain-text landing page served for the bare domain.
func (app *Application) Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "Hello Nowplaying!")
}

// Health reports liveness for deploy checks.
func (app *Application) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintln(w, `{"status":"ok"}`)
}

// redirectTmpl is the document served for shared links: crawlers read the
// meta tags, humans get bounced to the track by both the meta refresh and the
// script so clients that honour only one of the two still navigate.
var redirectTmpl = template.Must(template.New("redirect").Parse(`<!DOCTYPE html>
<html>
<head>
<title>{{.Title}}</title>
<meta name="description" content="{{.Description}}">
<meta property="og:title" content="{{.Title}}">
<meta property="og:description" content="{{.Description}}">
{{if .ImageURL}}<meta property="og:image" content="{{.ImageURL}}">
<meta property="og:image:width" content="1200">
<meta property="og:image:height" content="630">
<meta property="og:image:alt" content="{{.Title}}">
{{end}}<meta property="og:type" content="website">
<meta name="twitter:card" content="summary_large_image">
<meta name="twitter:title" content="{{.Title}}">
<meta name="twitter:description" content="{{.Description}}">
{{if .ImageURL}}<meta name="twitter:image" content="{{.ImageURL}}">
{{end}}<meta http-equiv="refresh" content="0;url={{.MusicURL}}">
</head>
<body>
<script>window.location.href = {{.MusicURL}};</script>
</body>
</html>
`))

type redirectData struct {
	Title       string
	Description string
	ImageURL    string
	MusicURL    string
}

// Redirect serves GET /{urlencoded-music-url}. Metadata enrichment is best
// effort: if the provider lookup fails the page still redirects, just with
// generic "Now Playing" tags and no preview image.
func (app *Application) Redirect(w http.ResponseWriter, r *http.Request) {
	// The slug is taken from the raw request URI rather than the parsed
	// path so percent-encoded track URLs survive ServeMux path cleaning.
	raw := strings.TrimPrefix(r.RequestURI, "/")
	if raw == "" {
		respondJSONError(w, http.StatusBadRequest, "missing music URL")
		return
	}
	musicURL, err := url.PathUnescape(raw)
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "invalid music URL")
		return
	}
	if !validMusicURL(musicURL) {
		respondJSONError(w, http.StatusBadRequest, "invalid music URL")
		return
	}
	provider, id, ok := app.Registry.Detect(musicURL)
	if !ok {
		respondJSONError(w, http.StatusBadRequest, "unsupported music URL")
		return
	}

	data := redirectData{
		Title:       "Now Playing",
		Description: "Now Playing",
		MusicURL:    musicURL,
	}
	td, err := provider.FetchTrackData(r.Context(), id)
	if err != nil {
		// The redirect is the primary contract; degrade to generic
		// metadata instead of failing the response.
		app.logger().WithError(err).WithField("service", provider.Service()).Warn("track metadata fetch failed")
		app.Metrics.ObserveUpstreamError(string(provider.Service()))
	} else {
		data.Title = td.Title + " - " + td.Artist
		data.Description = fmt.Sprintf("Now Playing: %s by %s", td.Title, td.Artist)
		data.ImageURL = app.BaseURL + "/og?url=" + url.QueryEscape(musicURL)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := redirectTmpl.Execute(w, data); err != nil {
		app.logger().WithError(err).Error("render redirect page")
	}
}

// validMusicURL reports whether s parses as an absolute http or https URL.
// Anything else, javascript: URLs included, is rejected before it can reach a
// template.
func validMusicURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
