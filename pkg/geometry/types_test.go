package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointDistance(t *testing.T) {
	assert.Equal(t, 5.0, NewPoint2D(0, 0).Distance(NewPoint2D(3, 4)))
	assert.Equal(t, 0.0, NewPoint2D(1, 1).Distance(NewPoint2D(1, 1)))
}

func TestAffineInverse(t *testing.T) {
	tr := AffineTransform{A: 2, B: 0.5, TX: 3, C: -1, D: 1.5, TY: 7}
	inv, ok := tr.Inverse()
	require.True(t, ok)

	p := NewPoint2D(4.2, -1.7)
	back := inv.Apply(tr.Apply(p))
	assert.InDelta(t, p.X, back.X, 1e-12)
	assert.InDelta(t, p.Y, back.Y, 1e-12)
}

func TestAffineInverseDegenerate(t *testing.T) {
	_, ok := AffineTransform{}.Inverse()
	assert.False(t, ok)
}

func TestIdentity(t *testing.T) {
	p := NewPoint2D(3, -2)
	assert.Equal(t, p, Identity().Apply(p))
}

func TestBoundingBox(t *testing.T) {
	bb := BoundingBox([]Point2D{{X: 1, Y: 5}, {X: -2, Y: 3}, {X: 4, Y: 4}})
	assert.Equal(t, Rect{X: -2, Y: 3, Width: 6, Height: 2}, bb)

	assert.Equal(t, Rect{}, BoundingBox(nil))
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	assert.True(t, r.Contains(NewPoint2D(5, 5)))
	assert.True(t, r.Contains(NewPoint2D(10, 10))) // edges inclusive
	assert.False(t, r.Contains(NewPoint2D(10.01, 5)))
}
