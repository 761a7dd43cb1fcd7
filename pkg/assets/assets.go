// Package assets abstracts how fonts and provider icons reach the image
// pipeline. Deployments point ASSETS_DIR at a directory laid out like the
// published asset bundle; everything else in the application only sees the
// Loader capability, so the pipeline itself is unaware of deployment
// topology.
package assets

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Weight selects one of the two font weights the renderer shapes text with.
type Weight string

const (
	Regular Weight = "regular"
	Bold    Weight = "bold"
)

// Loader supplies font and icon byte buffers to the renderer. Implementations
// must be safe for concurrent use; both shipped loaders are read-only.
type Loader interface {
	// Font returns the TTF bytes for the given weight.
	Font(w Weight) ([]byte, error)
	// Icon returns the SVG bytes for the named provider icon.
	Icon(name string) ([]byte, error)
}

// File names inside an asset directory, matching the published bundle.
var (
	fontFiles = map[Weight]string{
		Regular: "NotoSansJP-Regular.ttf",
		Bold:    "NotoSansJP-Bold.ttf",
	}
	iconFiles = map[string]string{
		"youtube-music": "yt.svg",
		"spotify":       "spotify.svg",
	}
)

// Dir returns a Loader reading fonts/<file> and icons/<file> below path.
func Dir(path string) Loader { return dirLoader(path) }

type dirLoader string

func (d dirLoader) Font(w Weight) ([]byte, error) {
	name, ok := fontFiles[w]
	if !ok {
		return nil, fmt.Errorf("unknown font weight %q", w)
	}
	return os.ReadFile(filepath.Join(string(d), "fonts", name))
}

func (d dirLoader) Icon(name string) ([]byte, error) {
	file, ok := iconFiles[name]
	if !ok {
		return nil, fmt.Errorf("unknown icon %q", name)
	}
	return os.ReadFile(filepath.Join(string(d), "icons", file))
}

// Builtin returns a Loader backed entirely by compiled-in data: the Go fonts
// stand in for the deployed CJK typeface and small vector marks stand in for
// the provider icons. It needs no files on disk, which keeps tests and bare
// deployments working.
func Builtin() Loader { return builtinLoader{} }

type builtinLoader struct{}

func (builtinLoader) Font(w Weight) ([]byte, error) {
	switch w {
	case Regular:
		return goregular.TTF, nil
	case Bold:
		return gobold.TTF, nil
	}
	return nil, fmt.Errorf("unknown font weight %q", w)
}

var builtinIcons = map[string][]byte{
	"youtube-music": []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><circle cx="12" cy="12" r="11" fill="#ff0000"/><circle cx="12" cy="12" r="7.5" fill="none" stroke="#ffffff" stroke-width="1.5"/><path d="M10 8.5 16 12 10 15.5z" fill="#ffffff"/></svg>`),
	"spotify":       []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><circle cx="12" cy="12" r="11" fill="#1db954"/><path d="M7 9.8 C10.4 8.8 14.2 9.1 17 10.8 M7.4 12.6 C10.2 11.8 13.3 12.1 15.8 13.5 M7.8 15.3 C10.1 14.7 12.6 14.9 14.7 16" stroke="#ffffff" stroke-width="1.4" fill="none" stroke-linecap="round"/></svg>`),
}

func (builtinLoader) Icon(name string) ([]byte, error) {
	svg, ok := builtinIcons[name]
	if !ok {
		return nil, fmt.Errorf("unknown icon %q", name)
	}
	return svg, nil
}

// WithFallback layers two loaders so a missing deployment asset degrades to
// the built-in one instead of failing the render.
func WithFallback(primary, fallback Loader) Loader {
	return fallbackLoader{primary: primary, fallback: fallback}
}

type fallbackLoader struct {
	primary, fallback Loader
}

func (l fallbackLoader) Font(w Weight) ([]byte, error) {
	if b, err := l.primary.Font(w); err == nil {
		return b, nil
	}
	return l.fallback.Font(w)
}

func (l fallbackLoader) Icon(name string) ([]byte, error) {
	if b, err := l.primary.Icon(name); err == nil {
		return b, nil
	}
	return l.fallback.Icon(name)
}
