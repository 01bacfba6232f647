// Package ocr reads axis tick labels from a graph image to propose
// numeric axis bounds for the calibration dialog.
package ocr

import (
	"fmt"
	"image"
	"sort"
	"strconv"
	"strings"

	"plot-digitizer/pkg/geometry"

	"github.com/otiai10/gosseract/v2"
	"gocv.io/x/gocv"
)

// NumericChars restricts recognition to what tick labels contain.
const NumericChars = "0123456789.-+eE"

// Engine wraps a Tesseract client configured for tick labels.
type Engine struct {
	client *gosseract.Client
}

// NewEngine creates a tick-label OCR engine.
func NewEngine() (*Engine, error) {
	client := gosseract.NewClient()

	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}

	// Tick labels are bare numbers; dictionary correction only hurts.
	_ = client.SetWhitelist(NumericChars)
	_ = client.SetVariable("load_system_dawg", "false")
	_ = client.SetVariable("load_freq_dawg", "false")

	return &Engine{client: client}, nil
}

// Close releases OCR resources.
func (e *Engine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// BoundsSuggestion holds axis bounds proposed from recognized labels.
type BoundsSuggestion struct {
	XMin, XMax float64
	YMin, YMax float64
	XOK, YOK   bool
}

// SuggestBounds OCRs the margins below and left of the plot frame and
// proposes axis bounds from the extreme recognized numbers. Best effort:
// unreadable margins simply leave the corresponding OK flag unset.
func (e *Engine) SuggestBounds(img image.Image, frame geometry.Rect) (BoundsSuggestion, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return BoundsSuggestion{}, fmt.Errorf("failed to convert image: %w", err)
	}
	defer mat.Close()

	var s BoundsSuggestion

	// Margin strip below the x axis.
	below := clampRect(image.Rect(
		int(frame.X), int(frame.Y+frame.Height),
		int(frame.X+frame.Width), mat.Rows()), mat)
	if vals := e.readNumbers(mat, below); len(vals) >= 2 {
		s.XMin, s.XMax = vals[0], vals[len(vals)-1]
		s.XOK = true
	}

	// Margin strip left of the y axis.
	left := clampRect(image.Rect(
		0, int(frame.Y),
		int(frame.X), int(frame.Y+frame.Height)), mat)
	if vals := e.readNumbers(mat, left); len(vals) >= 2 {
		s.YMin, s.YMax = vals[0], vals[len(vals)-1]
		s.YOK = true
	}

	return s, nil
}

// readNumbers runs OCR over one region and returns the parsed numbers in
// ascending order.
func (e *Engine) readNumbers(mat gocv.Mat, region image.Rectangle) []float64 {
	if region.Empty() {
		return nil
	}
	roi := mat.Region(region)
	defer roi.Close()

	// Upscale and binarize; tick labels are small.
	work := gocv.NewMat()
	defer work.Close()
	gocv.Resize(roi, &work, image.Point{}, 2, 2, gocv.InterpolationCubic)
	gocv.CvtColor(work, &work, gocv.ColorRGBToGray)
	gocv.Threshold(work, &work, 0, 255, gocv.ThresholdBinary+gocv.ThresholdOtsu)

	buf, err := gocv.IMEncode(gocv.PNGFileExt, work)
	if err != nil {
		return nil
	}
	defer buf.Close()

	if err := e.client.SetImageFromBytes(buf.GetBytes()); err != nil {
		return nil
	}
	text, err := e.client.Text()
	if err != nil {
		return nil
	}

	var vals []float64
	for _, tok := range strings.Fields(text) {
		if v, err := strconv.ParseFloat(tok, 64); err == nil {
			vals = append(vals, v)
		}
	}
	sort.Float64s(vals)
	return vals
}

func clampRect(r image.Rectangle, mat gocv.Mat) image.Rectangle {
	return r.Intersect(image.Rect(0, 0, mat.Cols(), mat.Rows()))
}
