// Package autotrace extracts a single-valued y = f(x) point series from
// a graph image by color matching against the target dataset's color.
package autotrace

import (
	"math"

	"plot-digitizer/internal/calibrate"
	"plot-digitizer/internal/image"
	"plot-digitizer/pkg/colorutil"
	"plot-digitizer/pkg/geometry"
)

// View maps canvas coordinates (where calibration clicks land) to image
// pixel coordinates, accounting for the current display zoom and pan.
type View struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// IdentityView is the view of an unzoomed, unpanned canvas.
func IdentityView() View {
	return View{Scale: 1}
}

// CanvasToImage converts a canvas position to image pixel coordinates.
func (v View) CanvasToImage(p geometry.Point2D) geometry.Point2D {
	s := v.Scale
	if s == 0 {
		s = 1
	}
	return geometry.Point2D{X: (p.X - v.OffsetX) / s, Y: (p.Y - v.OffsetY) / s}
}

// ImageToCanvas converts image pixel coordinates to a canvas position.
func (v View) ImageToCanvas(p geometry.Point2D) geometry.Point2D {
	s := v.Scale
	if s == 0 {
		s = 1
	}
	return geometry.Point2D{X: p.X*s + v.OffsetX, Y: p.Y*s + v.OffsetY}
}

// Trace scans image columns between the two x-axis anchors and, for each
// column, picks the row whose color is closest to target. The winning
// pixel is converted through the calibration transform, producing one
// data point per readable column in ascending column order.
//
// Columns that map outside the image, or whose every row is unreadable,
// yield no point. An incomplete calibration yields an empty result.
func Trace(layer *image.Layer, t calibrate.Transform, view View, target colorutil.RGB) []geometry.Point2D {
	if layer == nil || layer.Image == nil || !t.Calibrated() {
		return nil
	}

	x0 := t.Anchors.XMin.X
	x1 := t.Anchors.XMax.X
	ncols := int(math.Round(math.Abs(x1 - x0)))
	if ncols <= 1 {
		ncols = 1
	}

	height := layer.Height()
	points := make([]geometry.Point2D, 0, ncols)

	for col := 0; col < ncols; col++ {
		// Evenly spaced canvas columns, inclusive of both anchors.
		frac := 0.0
		if ncols > 1 {
			frac = float64(col) / float64(ncols-1)
		}
		canvasX := x0 + frac*(x1-x0)

		imgX := int(math.Round(view.CanvasToImage(geometry.Point2D{X: canvasX}).X))
		if imgX < 0 || imgX >= layer.Width() {
			continue
		}

		bestRow := -1
		bestDist := math.Inf(1)
		for row := 0; row < height; row++ {
			c, ok := layer.RGBAt(imgX, row)
			if !ok {
				continue
			}
			if d := colorutil.Distance(c, target); d < bestDist {
				bestDist = d
				bestRow = row
			}
		}
		if bestRow < 0 {
			continue
		}

		canvasPos := view.ImageToCanvas(geometry.Point2D{X: float64(imgX), Y: float64(bestRow)})
		canvasPos.X = canvasX
		x, y := t.PixelToData(canvasPos)
		points = append(points, geometry.Point2D{X: x, Y: y})
	}

	return points
}
