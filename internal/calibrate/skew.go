package calibrate

import (
	"fmt"
	"math"

	"plot-digitizer/pkg/geometry"

	"gonum.org/v1/gonum/mat"
)

// FitAffine computes the least-squares affine transform mapping src
// points onto dst points using QR decomposition.
func FitAffine(src, dst []geometry.Point2D) (geometry.AffineTransform, error) {
	n := len(src)
	if n != len(dst) {
		return geometry.AffineTransform{}, fmt.Errorf("point count mismatch: %d vs %d", n, len(dst))
	}
	if n < 3 {
		return geometry.AffineTransform{}, fmt.Errorf("need at least 3 points, got %d", n)
	}

	// Build overdetermined system: [x', y'] = [a b tx; c d ty] * [x, y, 1]
	A := mat.NewDense(n*2, 6, nil)
	B := mat.NewVecDense(n*2, nil)

	for i := 0; i < n; i++ {
		x, y := src[i].X, src[i].Y
		xp, yp := dst[i].X, dst[i].Y

		A.Set(i*2, 0, x)
		A.Set(i*2, 1, y)
		A.Set(i*2, 2, 1)
		B.SetVec(i*2, xp)

		A.Set(i*2+1, 3, x)
		A.Set(i*2+1, 4, y)
		A.Set(i*2+1, 5, 1)
		B.SetVec(i*2+1, yp)
	}

	var qr mat.QR
	qr.Factorize(A)

	var params mat.VecDense
	if err := qr.SolveVecTo(&params, false, B); err != nil {
		return geometry.AffineTransform{}, err
	}

	return geometry.AffineTransform{
		A:  params.AtVec(0),
		B:  params.AtVec(1),
		TX: params.AtVec(2),
		C:  params.AtVec(3),
		D:  params.AtVec(4),
		TY: params.AtVec(5),
	}, nil
}

// SkewAngle estimates how far the calibrated axes deviate from a right
// angle, in degrees. It fits an affine transform from the four anchor
// pixels to the unit data square and measures the angle between the
// fitted axis directions. A scan photographed square reports ~0; a few
// degrees means the user should re-scan or re-click the anchors.
func SkewAngle(a Anchors) (float64, error) {
	if !a.Complete() {
		return 0, fmt.Errorf("anchors incomplete")
	}

	src := []geometry.Point2D{*a.XMin, *a.XMax, *a.YMin, *a.YMax}
	dst := []geometry.Point2D{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 1}}

	t, err := FitAffine(src, dst)
	if err != nil {
		return 0, err
	}

	// The data axes expressed as pixel directions are the columns of the
	// inverse transform. Compare their angle against 90 degrees.
	inv, ok := t.Inverse()
	if !ok {
		return 0, fmt.Errorf("degenerate anchor geometry")
	}
	xAxis := math.Atan2(inv.C, inv.A)
	yAxis := math.Atan2(inv.D, inv.B)
	diff := math.Abs(yAxis-xAxis) * 180 / math.Pi
	for diff > 180 {
		diff -= 180
	}
	return math.Abs(diff - 90), nil
}
