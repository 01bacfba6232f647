package app

import (
	goimage "image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"plot-digitizer/internal/axis"
	"plot-digitizer/internal/dataset"
	"plot-digitizer/internal/image"
	"plot-digitizer/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// calibClicks are the four anchor clicks in session order: X-left,
// X-right, Y-bottom, Y-top.
var calibClicks = [4]geometry.Point2D{
	{X: 10, Y: 90}, {X: 110, Y: 90}, {X: 10, Y: 90}, {X: 10, Y: 10},
}

func testLayer(w, h int) *image.Layer {
	img := goimage.NewRGBA(goimage.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	return image.FromImage(img)
}

// calibratedState returns a state with an image and a committed
// calibration mapping pixels (10..110, 90..10) to data (0..100, 0..80).
func calibratedState(t *testing.T) *State {
	t.Helper()
	s := NewState()
	s.SetImage(testLayer(120, 100))
	require.NoError(t, s.StartCalibration())
	for _, c := range calibClicks {
		s.HandlePrimaryPress(c)
	}
	require.NoError(t, s.ApplyCalibration(axis.Range{XMin: 0, XMax: 100, YMin: 0, YMax: 80}))
	return s
}

func TestStartCalibrationRequiresImage(t *testing.T) {
	s := NewState()
	assert.ErrorIs(t, s.StartCalibration(), ErrNoImage)

	s.SetImage(testLayer(10, 10))
	assert.NoError(t, s.StartCalibration())
	assert.True(t, s.Session.Active())
}

func TestApplyCalibrationRequiresCompleteSession(t *testing.T) {
	s := NewState()
	s.SetImage(testLayer(10, 10))
	require.NoError(t, s.StartCalibration())
	s.HandlePrimaryPress(geometry.Point2D{X: 1, Y: 1})

	err := s.ApplyCalibration(axis.Range{XMax: 1, YMax: 1})
	assert.ErrorIs(t, err, ErrNotCalibrated)
	assert.False(t, s.Transform().Calibrated())
}

func TestCalibrationFlow(t *testing.T) {
	s := calibratedState(t)

	tr := s.Transform()
	require.True(t, tr.Calibrated())
	x, y := tr.PixelToData(geometry.Point2D{X: 60, Y: 50})
	assert.InDelta(t, 50.0, x, 1e-9)
	assert.InDelta(t, 40.0, y, 1e-9)
}

func TestClicksBeforeCalibrationAreIgnored(t *testing.T) {
	s := NewState()
	s.SetImage(testLayer(10, 10))

	s.HandlePrimaryPress(geometry.Point2D{X: 5, Y: 5})
	assert.Equal(t, 0, s.Datasets.TotalPoints())
}

func TestPrimaryPressAddsPoint(t *testing.T) {
	s := calibratedState(t)

	s.HandlePrimaryPress(geometry.Point2D{X: 60, Y: 50})
	d := s.Datasets.ActiveDataset()
	require.Len(t, d.Points, 1)
	assert.InDelta(t, 50.0, d.Points[0].X, 1e-9)
	assert.InDelta(t, 40.0, d.Points[0].Y, 1e-9)
	assert.True(t, s.Modified)
}

func TestPrimaryPressNearExistingPointPicksIt(t *testing.T) {
	s := calibratedState(t)
	s.HandlePrimaryPress(geometry.Point2D{X: 60, Y: 50})

	// A second press within the pick radius must start a drag, not
	// create a duplicate.
	s.HandlePrimaryPress(geometry.Point2D{X: 63, Y: 52})
	assert.Equal(t, 1, s.Datasets.TotalPoints())

	sel, dragging := s.DragTarget()
	require.True(t, dragging)
	assert.Equal(t, dataset.Selection{Dataset: 0, Point: 0}, sel)
}

func TestDragMovesPickedPoint(t *testing.T) {
	s := calibratedState(t)
	s.HandlePrimaryPress(geometry.Point2D{X: 60, Y: 50})
	require.True(t, s.BeginDrag(geometry.Point2D{X: 60, Y: 50}))

	s.HandleDrag(geometry.Point2D{X: 110, Y: 90})
	d := s.Datasets.ActiveDataset()
	require.Len(t, d.Points, 1)
	assert.InDelta(t, 100.0, d.Points[0].X, 1e-9)
	assert.InDelta(t, 0.0, d.Points[0].Y, 1e-9)

	s.HandleRelease()
	_, dragging := s.DragTarget()
	assert.False(t, dragging)

	// Drags after release are no-ops.
	s.HandleDrag(geometry.Point2D{X: 10, Y: 90})
	assert.InDelta(t, 100.0, d.Points[0].X, 1e-9)
}

func TestBeginDragMissesEmptySpace(t *testing.T) {
	s := calibratedState(t)
	assert.False(t, s.BeginDrag(geometry.Point2D{X: 60, Y: 50}))
	assert.Equal(t, 0, s.Datasets.TotalPoints())
}

func TestSecondaryPressDeletesNearestPoint(t *testing.T) {
	s := calibratedState(t)
	s.HandlePrimaryPress(geometry.Point2D{X: 60, Y: 50})
	require.Equal(t, 1, s.Datasets.TotalPoints())

	// Out of pick radius: nothing happens.
	s.HandleSecondaryPress(geometry.Point2D{X: 100, Y: 20})
	assert.Equal(t, 1, s.Datasets.TotalPoints())

	s.HandleSecondaryPress(geometry.Point2D{X: 62, Y: 51})
	assert.Equal(t, 0, s.Datasets.TotalPoints())
}

func TestRunAutoTracePreconditions(t *testing.T) {
	s := NewState()
	assert.ErrorIs(t, s.RunAutoTrace(), ErrNoImage)

	s.SetImage(testLayer(120, 100))
	assert.ErrorIs(t, s.RunAutoTrace(), ErrNotCalibrated)
}

func TestRunAutoTraceReplacesActivePoints(t *testing.T) {
	s := calibratedState(t)

	// Red curve at pixel row 50 on the white background.
	img := goimage.NewRGBA(goimage.Rect(0, 0, 120, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 120; x++ {
			c := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			if y == 50 {
				c = color.NRGBA{R: 255, A: 255}
			}
			img.Set(x, y, c)
		}
	}
	s.SetImage(image.FromImage(img))

	s.Datasets.RecolorActive("#FF0000")
	s.Datasets.AddPoint(0, geometry.Point2D{X: -99, Y: -99}) // will be replaced

	require.NoError(t, s.RunAutoTrace())
	d := s.Datasets.ActiveDataset()
	require.NotEmpty(t, d.Points)
	for _, p := range d.Points {
		assert.InDelta(t, 40.0, p.Y, 1e-9)
	}
}

func TestSaveLoadProjectRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.json")

	s := calibratedState(t)
	s.Title = "Round Trip"
	s.XLabel = "time"
	s.YLabel = "temp"
	s.Datasets.RenameActive("probe-1")
	s.HandlePrimaryPress(geometry.Point2D{X: 60, Y: 50})
	require.NoError(t, s.SaveProject(path))
	assert.False(t, s.Modified)
	assert.Equal(t, path, s.ProjectPath)

	s2 := NewState()
	require.NoError(t, s2.LoadProject(path))
	assert.Equal(t, "Round Trip", s2.Title)
	assert.Equal(t, "time", s2.XLabel)
	assert.Equal(t, "temp", s2.YLabel)
	assert.Equal(t, s.Axis, s2.Axis)
	assert.Equal(t, "probe-1", s2.Datasets.Get(0).Name)
	require.Len(t, s2.Datasets.Get(0).Points, 1)
	assert.InDelta(t, 50.0, s2.Datasets.Get(0).Points[0].X, 1e-9)
	assert.False(t, s2.Modified)
}

func TestLoadProjectParseFailureLeavesStateUntouched(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	s := NewState()
	s.Title = "keep me"
	s.Datasets.AddPoint(0, geometry.Point2D{X: 1, Y: 1})

	assert.Error(t, s.LoadProject(path))
	assert.Equal(t, "keep me", s.Title)
	assert.Equal(t, 1, s.Datasets.TotalPoints())
	assert.Empty(t, s.ProjectPath)
}

func TestExportCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")

	s := calibratedState(t)
	s.HandlePrimaryPress(geometry.Point2D{X: 60, Y: 50})
	require.NoError(t, s.ExportCSV(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "dataset,x,y\n"))
	assert.Contains(t, string(data), ",50,40\n")
}

func TestEvents(t *testing.T) {
	s := NewState()
	var got []EventType
	for _, ev := range []EventType{EventImageLoaded, EventCalibrationChanged, EventDatasetsChanged} {
		ev := ev
		s.On(ev, func(interface{}) { got = append(got, ev) })
	}

	s.SetImage(testLayer(10, 10))
	require.NoError(t, s.StartCalibration())
	for _, c := range calibClicks {
		s.HandlePrimaryPress(c)
	}
	require.NoError(t, s.ApplyCalibration(axis.Range{XMin: 0, XMax: 1, YMin: 0, YMax: 1}))
	s.HandlePrimaryPress(geometry.Point2D{X: 60, Y: 50})

	assert.Contains(t, got, EventImageLoaded)
	assert.Contains(t, got, EventCalibrationChanged)
	assert.Contains(t, got, EventDatasetsChanged)
}

func TestDefaultFilename(t *testing.T) {
	s := NewState()
	s.Title = "My Plot"
	assert.Equal(t, "My_Plot", s.DefaultFilename())

	s.Title = ""
	assert.True(t, strings.HasPrefix(s.DefaultFilename(), "plot_"))
}
