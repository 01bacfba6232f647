// Overlay marker rendering for the digitizer canvas.
package canvas

import (
	"image"
	"image/color"
	"math"

	"plot-digitizer/internal/app"
	"plot-digitizer/internal/dataset"
	"plot-digitizer/pkg/geometry"
)

var (
	anchorColor = color.NRGBA{R: 255, G: 0, B: 0, A: 255}
	clickColor  = color.NRGBA{R: 255, G: 140, B: 0, A: 255}
	dragColor   = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
)

const (
	markerRadius = 3
	crossArm     = 6
)

// drawScaled composites the source image into dst at the given zoom
// using nearest-neighbor sampling, matching the crisp pixel look the
// raster widget is configured for.
func drawScaled(dst *image.RGBA, src image.Image, zoom float64) {
	srcBounds := src.Bounds()
	w := int(float64(srcBounds.Dx()) * zoom)
	h := int(float64(srcBounds.Dy()) * zoom)
	if w > dst.Bounds().Dx() {
		w = dst.Bounds().Dx()
	}
	if h > dst.Bounds().Dy() {
		h = dst.Bounds().Dy()
	}

	for y := 0; y < h; y++ {
		sy := srcBounds.Min.Y + int(float64(y)/zoom)
		for x := 0; x < w; x++ {
			sx := srcBounds.Min.X + int(float64(x)/zoom)
			dst.Set(x, y, src.At(sx, sy))
		}
	}
}

// drawMarkers renders anchors, in-progress calibration clicks, dataset
// points, and the drag highlight. State positions are in image
// coordinates and scale up by the zoom factor.
func drawMarkers(dst *image.RGBA, st *app.State, zoom float64) {
	// In-progress calibration clicks.
	for _, p := range st.Session.Clicks() {
		drawCross(dst, scalePt(p, zoom), clickColor)
	}

	// Committed anchors.
	if st.Anchors.Complete() {
		for _, p := range st.Anchors.Points() {
			drawCross(dst, scalePt(p, zoom), anchorColor)
		}
	}

	// Dataset points, colored per dataset.
	t := st.Transform()
	if !t.Calibrated() {
		return
	}
	drag, dragging := st.DragTarget()
	for i := 0; i < dataset.MaxDatasets; i++ {
		d := st.Datasets.Get(i)
		if d == nil {
			continue
		}
		c := d.RGB.ToNRGBA()
		for j, p := range d.Points {
			pos := scalePt(t.DataToPixel(p.X, p.Y), zoom)
			drawDot(dst, pos, c)
			if dragging && drag.Dataset == i && drag.Point == j {
				drawRing(dst, pos, dragColor)
			}
		}
	}
}

func scalePt(p geometry.Point2D, zoom float64) image.Point {
	return image.Point{
		X: int(math.Round(p.X * zoom)),
		Y: int(math.Round(p.Y * zoom)),
	}
}

func drawCross(dst *image.RGBA, p image.Point, c color.NRGBA) {
	for d := -crossArm; d <= crossArm; d++ {
		setPixel(dst, p.X+d, p.Y, c)
		setPixel(dst, p.X, p.Y+d, c)
	}
}

func drawDot(dst *image.RGBA, p image.Point, c color.NRGBA) {
	for dy := -markerRadius; dy <= markerRadius; dy++ {
		for dx := -markerRadius; dx <= markerRadius; dx++ {
			if dx*dx+dy*dy <= markerRadius*markerRadius {
				setPixel(dst, p.X+dx, p.Y+dy, c)
			}
		}
	}
}

func drawRing(dst *image.RGBA, p image.Point, c color.NRGBA) {
	r := markerRadius + 2
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			d2 := dx*dx + dy*dy
			if d2 >= (r-1)*(r-1) && d2 <= r*r {
				setPixel(dst, p.X+dx, p.Y+dy, c)
			}
		}
	}
}

func setPixel(dst *image.RGBA, x, y int, c color.NRGBA) {
	if x < 0 || y < 0 || x >= dst.Bounds().Dx() || y >= dst.Bounds().Dy() {
		return
	}
	dst.Set(x, y, c)
}
