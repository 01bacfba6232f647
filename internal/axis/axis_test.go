package axis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLinear(t *testing.T) {
	r := Range{XMin: 0, XMax: 100}
	assert.Equal(t, 0.5, r.NormalizeX(50))
	assert.Equal(t, 0.0, r.NormalizeX(0))
	assert.Equal(t, 1.0, r.NormalizeX(100))
	assert.Equal(t, -0.5, r.NormalizeX(-50)) // extrapolation is allowed
}

func TestNormalizeDegenerateRange(t *testing.T) {
	r := Range{XMin: 5, XMax: 5}
	assert.Equal(t, 0.0, r.NormalizeX(5))
	assert.Equal(t, 0.0, r.NormalizeX(123))
}

func TestNormalizeLog(t *testing.T) {
	r := Range{YMin: 1, YMax: 1000, YLog: true}
	assert.InDelta(t, 0.0, r.NormalizeY(1), 1e-12)
	assert.InDelta(t, 1.0/3.0, r.NormalizeY(10), 1e-12)
	assert.InDelta(t, 1.0, r.NormalizeY(1000), 1e-12)
}

// Log-domain violations must not panic or produce NaN, just a defined
// fallback.
func TestNormalizeLogGuards(t *testing.T) {
	tests := []struct {
		name string
		r    Range
		v    float64
	}{
		{"non-positive value", Range{XMin: 1, XMax: 100, XLog: true}, -5},
		{"zero value", Range{XMin: 1, XMax: 100, XLog: true}, 0},
		{"non-positive min", Range{XMin: 0, XMax: 100, XLog: true}, 10},
		{"negative min", Range{XMin: -1, XMax: 100, XLog: true}, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 0.0, tt.r.NormalizeX(tt.v))
		})
	}
}

func TestDenormalize(t *testing.T) {
	r := Range{XMin: -10, XMax: 10}
	assert.Equal(t, 0.0, r.DenormalizeX(0.5))
	assert.Equal(t, -10.0, r.DenormalizeX(0))
	assert.Equal(t, 10.0, r.DenormalizeX(1))
}

func TestDenormalizeLog(t *testing.T) {
	r := Range{YMin: 1, YMax: 1000, YLog: true}
	assert.InDelta(t, 10.0, r.DenormalizeY(1.0/3.0), 1e-9)

	// Guard: non-positive bounds yield the fallback, not a panic.
	bad := Range{YMin: 0, YMax: 1000, YLog: true}
	assert.Equal(t, 0.0, bad.DenormalizeY(0.5))
}

func TestNormalizeDenormalizeRoundTrip(t *testing.T) {
	lin := Range{XMin: 3, XMax: 17}
	for _, v := range []float64{3, 5.5, 10, 17} {
		assert.InDelta(t, v, lin.DenormalizeX(lin.NormalizeX(v)), 1e-12)
	}

	logr := Range{XMin: 0.1, XMax: 1000, XLog: true}
	for _, v := range []float64{0.1, 1, 42, 1000} {
		assert.InDelta(t, v, logr.DenormalizeX(logr.NormalizeX(v)), 1e-9)
	}
}

func TestParseBound(t *testing.T) {
	v, ok := ParseBound("  3.25 ")
	assert.True(t, ok)
	assert.Equal(t, 3.25, v)

	_, ok = ParseBound("")
	assert.False(t, ok)

	_, ok = ParseBound("ten")
	assert.False(t, ok)

	v, ok = ParseBound("-1e3")
	assert.True(t, ok)
	assert.Equal(t, -1000.0, v)
}
