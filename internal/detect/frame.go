// Package detect locates the plot frame (the axis box) in a graph image
// and proposes calibration anchors from it.
package detect

import (
	"fmt"
	"image"
	"math"

	"plot-digitizer/internal/calibrate"
	"plot-digitizer/pkg/geometry"

	"gocv.io/x/gocv"
)

// FrameResult holds a detected plot frame.
type FrameResult struct {
	// Axis box in image pixel coordinates.
	Bounds geometry.Rect
	// Suggested anchors: bottom-left, bottom-right (x axis) and
	// bottom-left, top-left (y axis), in image pixels.
	Anchors calibrate.Anchors
}

// FindPlotFrame detects the longest horizontal and vertical lines in the
// image, which on a plotted graph are almost always the axis box. Uses
// Canny edge detection followed by a probabilistic Hough transform.
func FindPlotFrame(img image.Image) (*FrameResult, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	defer mat.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorRGBToGray)

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: 3, Y: 3}, 0, 0, gocv.BorderDefault)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(blurred, &edges, 50, 150)

	lines := gocv.NewMat()
	defer lines.Close()
	minLen := float32(math.Min(float64(mat.Cols()), float64(mat.Rows()))) * 0.3
	gocv.HoughLinesPWithParams(edges, &lines, 1, math.Pi/180, 80, minLen, 5)

	var bestH, bestV [4]int
	var bestHLen, bestVLen float64
	for i := 0; i < lines.Rows(); i++ {
		x1 := int(lines.GetVeciAt(i, 0)[0])
		y1 := int(lines.GetVeciAt(i, 0)[1])
		x2 := int(lines.GetVeciAt(i, 0)[2])
		y2 := int(lines.GetVeciAt(i, 0)[3])

		dx, dy := float64(x2-x1), float64(y2-y1)
		length := math.Hypot(dx, dy)

		switch {
		case math.Abs(dy) <= math.Abs(dx)*0.05 && length > bestHLen:
			bestHLen = length
			bestH = [4]int{x1, y1, x2, y2}
		case math.Abs(dx) <= math.Abs(dy)*0.05 && length > bestVLen:
			bestVLen = length
			bestV = [4]int{x1, y1, x2, y2}
		}
	}

	if bestHLen == 0 || bestVLen == 0 {
		return nil, fmt.Errorf("no axis lines found")
	}

	left := math.Min(float64(bestH[0]), float64(bestH[2]))
	right := math.Max(float64(bestH[0]), float64(bestH[2]))
	bottom := float64(bestH[1]) // y of the horizontal (x-axis) line
	top := math.Min(float64(bestV[1]), float64(bestV[3]))

	res := &FrameResult{
		Bounds: geometry.Rect{X: left, Y: top, Width: right - left, Height: bottom - top},
	}
	res.Anchors = calibrate.FromClicks([4]geometry.Point2D{
		{X: left, Y: bottom},  // X-left
		{X: right, Y: bottom}, // X-right
		{X: left, Y: bottom},  // Y-bottom
		{X: left, Y: top},     // Y-top
	})
	return res, nil
}
