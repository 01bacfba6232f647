package calibrate

import (
	"plot-digitizer/internal/axis"
	"plot-digitizer/pkg/geometry"
)

// Transform maps between canvas pixel coordinates and graph data
// coordinates. It is a pure function of its anchors and range: no hidden
// state, fully replayable.
type Transform struct {
	Anchors Anchors
	Range   axis.Range
}

// Calibrated reports whether the transform is usable. Callers that care
// about the difference between a genuine (0,0) result and "no calibration
// yet" must check this before converting.
func (t Transform) Calibrated() bool {
	return t.Anchors.Complete()
}

// DataToPixel converts a data coordinate to a canvas pixel position.
// Before calibration both components are 0; absence of calibration is a
// normal state during startup, not an error.
func (t Transform) DataToPixel(x, y float64) geometry.Point2D {
	if !t.Anchors.Complete() {
		return geometry.Point2D{}
	}

	tx := t.Range.NormalizeX(x)
	ty := t.Range.NormalizeY(y)

	return geometry.Point2D{
		X: t.Anchors.XMin.X + tx*(t.Anchors.XMax.X-t.Anchors.XMin.X),
		Y: t.Anchors.YMin.Y + ty*(t.Anchors.YMax.Y-t.Anchors.YMin.Y),
	}
}

// PixelToData converts a canvas pixel position to a data coordinate,
// mirroring DataToPixel including its zero-denominator guards.
func (t Transform) PixelToData(p geometry.Point2D) (x, y float64) {
	if !t.Anchors.Complete() {
		return 0, 0
	}

	tx := 0.0
	if dx := t.Anchors.XMax.X - t.Anchors.XMin.X; dx != 0 {
		tx = (p.X - t.Anchors.XMin.X) / dx
	}
	ty := 0.0
	if dy := t.Anchors.YMax.Y - t.Anchors.YMin.Y; dy != 0 {
		ty = (p.Y - t.Anchors.YMin.Y) / dy
	}

	return t.Range.DenormalizeX(tx), t.Range.DenormalizeY(ty)
}
