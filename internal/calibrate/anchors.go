// Package calibrate establishes the mapping between canvas pixels and
// graph data coordinates: anchor collection, the bidirectional
// transform, and calibration quality estimation.
package calibrate

import (
	"plot-digitizer/pkg/geometry"
)

// Anchors holds the four pixel-space reference points set by a completed
// calibration. All four are committed as a unit; a nil pointer means the
// anchor has never been set.
type Anchors struct {
	XMin *geometry.Point2D // click on the x axis at its minimum value
	XMax *geometry.Point2D // click on the x axis at its maximum value
	YMin *geometry.Point2D // click on the y axis at its minimum value
	YMax *geometry.Point2D // click on the y axis at its maximum value
}

// Complete reports whether all four anchors are set.
func (a Anchors) Complete() bool {
	return a.XMin != nil && a.XMax != nil && a.YMin != nil && a.YMax != nil
}

// FromClicks builds anchors from four clicks recorded in the fixed
// calibration order: X-left, X-right, Y-bottom, Y-top.
func FromClicks(clicks [4]geometry.Point2D) Anchors {
	xmin, xmax := clicks[0], clicks[1]
	ymin, ymax := clicks[2], clicks[3]
	return Anchors{XMin: &xmin, XMax: &xmax, YMin: &ymin, YMax: &ymax}
}

// Points returns the four anchors in calibration order. Only valid when
// Complete.
func (a Anchors) Points() [4]geometry.Point2D {
	return [4]geometry.Point2D{*a.XMin, *a.XMax, *a.YMin, *a.YMax}
}
