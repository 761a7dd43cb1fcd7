// Layout geometry for the preview image. The canvas is rendered 40px larger
// than the published size on both axes and cropped afterwards, because raster
// backends commonly mis-render pixels at the canvas boundary.
package ogimage

const (
	// CanvasWidth and CanvasHeight are the oversized working canvas.
	CanvasWidth  = 1240
	CanvasHeight = 670

	// CropMargin is trimmed from every side, yielding the 1200x630 output.
	CropMargin = 20

	// OutputWidth and OutputHeight are the published OG image dimensions.
	OutputWidth  = CanvasWidth - 2*CropMargin
	OutputHeight = CanvasHeight - 2*CropMargin

	contentPadX = 75  // horizontal padding of the content row
	thumbSize   = 480 // square cover art, cropped to fill
	thumbRadius = 16
	columnGap   = 64  // gap between cover art and text column
	textWidth   = 506 // width of the text column

	titleSize   = 56
	artistSize  = 32
	badgeSize   = 24
	captionSize = 20
	iconSize    = 56

	maxTitleLines = 2
	bgBlurSigma   = 10
)

// lineHeight returns the vertical advance used when stacking text of the
// given point size.
func lineHeight(size float64) float64 { return size * 1.2 }
