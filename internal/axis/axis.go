// Package axis defines the numeric axis ranges a calibrated graph maps onto.
package axis

import (
	"log"
	"math"
	"strconv"
	"strings"
)

// Range holds the numeric bounds and scale mode of both axes.
type Range struct {
	XMin float64 `json:"x_min"`
	XMax float64 `json:"x_max"`
	YMin float64 `json:"y_min"`
	YMax float64 `json:"y_max"`
	XLog bool    `json:"x_log"`
	YLog bool    `json:"y_log"`
}

// NormalizeX returns the fractional position of v between XMin and XMax.
// Degenerate ranges and log-domain violations yield 0 rather than NaN or
// a panic; an uncalibrated or half-typed range is a normal state.
func (r Range) NormalizeX(v float64) float64 {
	return normalize(v, r.XMin, r.XMax, r.XLog)
}

// NormalizeY returns the fractional position of v between YMin and YMax.
func (r Range) NormalizeY(v float64) float64 {
	return normalize(v, r.YMin, r.YMax, r.YLog)
}

// DenormalizeX maps a fraction t back to an axis value.
func (r Range) DenormalizeX(t float64) float64 {
	return denormalize(t, r.XMin, r.XMax, r.XLog)
}

// DenormalizeY maps a fraction t back to an axis value.
func (r Range) DenormalizeY(t float64) float64 {
	return denormalize(t, r.YMin, r.YMax, r.YLog)
}

func normalize(v, min, max float64, logScale bool) float64 {
	if logScale {
		if v <= 0 || min <= 0 || max <= 0 {
			log.Printf("axis: log scale with non-positive value (v=%g min=%g max=%g)", v, min, max)
			return 0
		}
		v = math.Log10(v)
		min = math.Log10(min)
		max = math.Log10(max)
	}
	if max == min {
		return 0
	}
	return (v - min) / (max - min)
}

func denormalize(t, min, max float64, logScale bool) float64 {
	if logScale {
		if min <= 0 || max <= 0 {
			return 0
		}
		lmin := math.Log10(min)
		lmax := math.Log10(max)
		return math.Pow(10, lmin+t*(lmax-lmin))
	}
	return min + t*(max-min)
}

// ParseBound parses a user-entered axis bound. Empty or unparsable text
// means "value not yet provided" and reports ok=false.
func ParseBound(s string) (v float64, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
