// Package ogimage renders the social preview image for a track: a blurred
// full-bleed background built from the cover art, a dark overlay, and a
// foreground row with the cover, title, artist, a #NowPlaying badge and the
// source service. The pipeline is pure compute given the track metadata and
// asset bytes, so identical inputs produce byte-identical PNGs.
package ogimage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"NowPlaying-Go/pkg/assets"
	"NowPlaying-Go/pkg/music"
)

// Renderer composes preview images. Fonts are parsed once at construction;
// per-render state (font faces, drawing contexts) is created fresh so a
// single Renderer is safe for concurrent requests.
type Renderer struct {
	loader  assets.Loader
	http    *http.Client
	regular *sfnt.Font
	bold    *sfnt.Font
}

// NewRenderer parses the two required font weights from the loader. The HTTP
// client is used only to download cover art; pass nil for a 10 second default.
func NewRenderer(loader assets.Loader, httpClient *http.Client) (*Renderer, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	r := &Renderer{loader: loader, http: httpClient}
	for _, f := range []struct {
		weight assets.Weight
		dst    **sfnt.Font
	}{
		{assets.Regular, &r.regular},
		{assets.Bold, &r.bold},
	} {
		b, err := loader.Font(f.weight)
		if err != nil {
			return nil, fmt.Errorf("load %s font: %w", f.weight, err)
		}
		parsed, err := opentype.Parse(b)
		if err != nil {
			return nil, fmt.Errorf("parse %s font: %w", f.weight, err)
		}
		*f.dst = parsed
	}
	return r, nil
}

// Render produces the final PNG for the track. serviceName and iconName come
// from the provider that resolved the track.
func (r *Renderer) Render(ctx context.Context, track music.TrackData, serviceName, iconName string) ([]byte, error) {
	titleFace, err := r.face(r.bold, titleSize)
	if err != nil {
		return nil, err
	}
	artistFace, err := r.face(r.regular, artistSize)
	if err != nil {
		return nil, err
	}
	badgeFace, err := r.face(r.regular, badgeSize)
	if err != nil {
		return nil, err
	}
	captionFace, err := r.face(r.regular, captionSize)
	if err != nil {
		return nil, err
	}

	cover, err := r.cover(ctx, track.Thumbnail, artistFace)
	if err != nil {
		return nil, err
	}

	iconSVG, err := r.loader.Icon(iconName)
	if err != nil {
		return nil, fmt.Errorf("load icon %q: %w", iconName, err)
	}
	icon, err := rasterizeIcon(iconSVG, iconSize)
	if err != nil {
		return nil, fmt.Errorf("rasterize icon %q: %w", iconName, err)
	}

	dc := gg.NewContext(CanvasWidth, CanvasHeight)

	// Full-bleed blurred background from the cover art, then a 50% black
	// overlay and a faint white wash over the content row.
	bg := imaging.Blur(imaging.Fill(cover, CanvasWidth, CanvasHeight, imaging.Center, imaging.Lanczos), bgBlurSigma)
	dc.DrawImage(bg, 0, 0)
	dc.SetRGBA(0, 0, 0, 0.5)
	dc.DrawRectangle(0, 0, CanvasWidth, CanvasHeight)
	dc.Fill()
	dc.SetRGBA(1, 1, 1, 0.08)
	dc.DrawRectangle(0, 0, CanvasWidth, CanvasHeight)
	dc.Fill()

	// Cover art, cropped square with rounded corners.
	sq := imaging.Fill(cover, thumbSize, thumbSize, imaging.Center, imaging.Lanczos)
	thumbY := (CanvasHeight - thumbSize) / 2
	dc.DrawRoundedRectangle(contentPadX, float64(thumbY), thumbSize, thumbSize, thumbRadius)
	dc.Clip()
	dc.DrawImage(sq, contentPadX, thumbY)
	dc.ResetClip()

	// Text column.
	textX := float64(contentPadX + thumbSize + columnGap)

	dc.SetFontFace(titleFace)
	titleLines := wrapText(dc, track.Title, textWidth)
	if len(titleLines) > maxTitleLines {
		titleLines = titleLines[:maxTitleLines]
		titleLines[maxTitleLines-1] = ellipsize(dc, titleLines[maxTitleLines-1], textWidth)
	}

	badgeText := "#NowPlaying"
	dc.SetFontFace(badgeFace)
	badgeW, _ := dc.MeasureString(badgeText)
	badgeW += 24 // 12px side padding
	badgeH := badgeSize + 12.0

	stackH := float64(len(titleLines))*lineHeight(titleSize) + 8 +
		lineHeight(artistSize) + 32 +
		badgeH + 32 +
		iconSize
	y := (CanvasHeight - stackH) / 2

	dc.SetFontFace(titleFace)
	dc.SetRGB(1, 1, 1)
	for _, line := range titleLines {
		dc.DrawString(line, textX, y+ascent(titleFace))
		y += lineHeight(titleSize)
	}
	y += 8

	dc.SetFontFace(artistFace)
	dc.SetRGB255(221, 221, 221)
	dc.DrawString(ellipsize(dc, track.Artist, textWidth), textX, y+ascent(artistFace))
	y += lineHeight(artistSize) + 32

	dc.SetFontFace(badgeFace)
	dc.SetRGBA(1, 1, 1, 0.15)
	dc.DrawRoundedRectangle(textX, y, badgeW, badgeH, badgeH/2)
	dc.Fill()
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(badgeText, textX+badgeW/2, y+badgeH/2, 0.5, 0.5)
	y += badgeH + 32

	dc.DrawImage(icon, int(textX), int(y))
	dc.SetFontFace(captionFace)
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored("from "+serviceName, textX+iconSize+10, y+iconSize/2, 0, 0.5)

	out := crop(dc.Image())
	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// cover downloads and decodes the track thumbnail. An empty URL substitutes
// the built-in placeholder; a present but unfetchable URL is an error since
// the image endpoint has no degradation target.
func (r *Renderer) cover(ctx context.Context, thumbnail string, face font.Face) (image.Image, error) {
	if thumbnail == "" {
		return placeholder(face), nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, thumbnail, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch thumbnail: %w", err)
	}
	resp, err := r.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch thumbnail: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch thumbnail: unexpected status %s", resp.Status)
	}
	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode thumbnail: %w", err)
	}
	return img, nil
}

// placeholder returns the dark "No Image" square used when a track has no
// cover art.
func placeholder(face font.Face) image.Image {
	dc := gg.NewContext(thumbSize, thumbSize)
	dc.SetRGB255(31, 31, 31)
	dc.Clear()
	dc.SetFontFace(face)
	dc.SetRGB255(136, 136, 136)
	dc.DrawStringAnchored("No Image", thumbSize/2, thumbSize/2, 0.5, 0.5)
	return dc.Image()
}

// crop trims CropMargin from every side. Pathologically small bitmaps are
// returned unchanged rather than failing.
func crop(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx()-2*CropMargin <= 0 || b.Dy()-2*CropMargin <= 0 {
		return img
	}
	return imaging.Crop(img, image.Rect(b.Min.X+CropMargin, b.Min.Y+CropMargin, b.Max.X-CropMargin, b.Max.Y-CropMargin))
}

// rasterizeIcon renders an SVG icon to a size x size bitmap.
func rasterizeIcon(svg []byte, size int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg))
	if err != nil {
		return nil, err
	}
	icon.SetTarget(0, 0, float64(size), float64(size))
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1)
	return img, nil
}

func (r *Renderer) face(f *sfnt.Font, size float64) (font.Face, error) {
	return opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
}

func ascent(f font.Face) float64 {
	return float64(f.Metrics().Ascent) / 64
}

// wrapText greedily wraps s to the given pixel width using the context's
// current font face, breaking over-long unspaced words rune by rune so CJK
// titles wrap too.
func wrapText(dc *gg.Context, s string, width float64) []string {
	var lines []string
	line := ""
	for _, word := range strings.Fields(s) {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if w, _ := dc.MeasureString(candidate); w <= width {
			line = candidate
			continue
		}
		if line != "" {
			lines = append(lines, line)
			line = ""
		}
		// The word alone exceeds the width; hard-break it.
		for _, r := range word {
			candidate := line + string(r)
			if w, _ := dc.MeasureString(candidate); w > width && line != "" {
				lines = append(lines, line)
				line = string(r)
			} else {
				line = candidate
			}
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

// ellipsize shortens s until it fits in width with a trailing ellipsis. Text
// that already fits is returned unchanged.
func ellipsize(dc *gg.Context, s string, width float64) string {
	if w, _ := dc.MeasureString(s); w <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		if w, _ := dc.MeasureString(string(runes) + "…"); w <= width {
			break
		}
	}
	return string(runes) + "…"
}
