// Package app provides the shared application state and the interaction
// semantics that mutate it.
package app

import (
	"errors"
	"log"
	"sync"
	"time"

	"plot-digitizer/internal/autotrace"
	"plot-digitizer/internal/axis"
	"plot-digitizer/internal/calibrate"
	"plot-digitizer/internal/dataset"
	"plot-digitizer/internal/image"
	"plot-digitizer/internal/project"
	"plot-digitizer/pkg/geometry"
)

// Precondition failures surfaced to callers. Both are no-ops on state.
var (
	ErrNoImage       = errors.New("no image loaded")
	ErrNotCalibrated = errors.New("calibration not complete")
)

// DefaultPickRadius is the pixel distance within which a click selects
// an existing point.
const DefaultPickRadius = 8.0

// State holds the application state: the loaded image, calibration,
// datasets, and transient interaction state. All mutation happens on the
// UI thread; the mutex only guards listener registration against
// callbacks fired from it.
type State struct {
	mu sync.RWMutex

	// Project
	ProjectPath string
	Modified    bool

	// Document fields
	Title  string
	XLabel string
	YLabel string

	// Image
	Image *image.Layer

	// Calibration
	Anchors calibrate.Anchors
	Axis    axis.Range
	Session calibrate.Session

	// Data
	Datasets *dataset.Store

	// Display mapping used when converting trace columns to image pixels
	View autotrace.View

	// Interaction
	PickRadius float64
	drag       *dataset.Selection

	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventImageLoaded EventType = iota
	EventCalibrationChanged
	EventDatasetsChanged
	EventSelectionChanged
	EventProjectLoaded
	EventProjectSaved
	EventModified
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates a new application state with six pre-named,
// pre-colored empty datasets.
func NewState() *State {
	return &State{
		Datasets:   dataset.NewStore(),
		View:       autotrace.IdentityView(),
		PickRadius: DefaultPickRadius,
		listeners:  make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetModified marks the project as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.Modified = modified
	s.Emit(EventModified, modified)
}

// Transform returns the current pixel<->data transform.
func (s *State) Transform() calibrate.Transform {
	return calibrate.Transform{Anchors: s.Anchors, Range: s.Axis}
}

// LoadImage loads a graph image. On decode failure the previous image
// and all derived state remain unchanged.
func (s *State) LoadImage(path string) error {
	layer, err := image.Load(path)
	if err != nil {
		return err
	}
	s.Image = layer
	s.SetModified(true)
	s.Emit(EventImageLoaded, layer)
	return nil
}

// SetImage installs an already-decoded image layer.
func (s *State) SetImage(layer *image.Layer) {
	s.Image = layer
	s.Emit(EventImageLoaded, layer)
}

// StartCalibration begins collecting the four anchor clicks. Calibration
// of an empty canvas is meaningless, so a missing image is reported to
// the caller.
func (s *State) StartCalibration() error {
	if s.Image == nil {
		return ErrNoImage
	}
	s.Session.Start()
	s.Emit(EventCalibrationChanged, nil)
	return nil
}

// ApplyCalibration commits the collected anchors together with the
// numeric axis range. The anchors are overwritten wholesale; partial
// updates are impossible.
func (s *State) ApplyCalibration(r axis.Range) error {
	if !s.Session.Complete() {
		return ErrNotCalibrated
	}
	s.Anchors = s.Session.Anchors()
	s.Axis = r

	if skew, err := calibrate.SkewAngle(s.Anchors); err == nil && skew > 1.0 {
		log.Printf("calibration: axes skewed by %.1f degrees; consider re-scanning", skew)
	}

	s.SetModified(true)
	s.Emit(EventCalibrationChanged, nil)
	return nil
}

// HandlePrimaryPress processes a primary-button press at a canvas
// position: a calibration click while the session collects, otherwise a
// pick-for-drag of a nearby point, otherwise a new point in the active
// dataset.
func (s *State) HandlePrimaryPress(pos geometry.Point2D) {
	if s.Session.Active() {
		s.Session.RecordClick(pos)
		s.Emit(EventCalibrationChanged, nil)
		return
	}

	t := s.Transform()
	if sel, ok := s.Datasets.FindNearest(pos, s.PickRadius, t.DataToPixel); ok {
		s.drag = &sel
		s.Emit(EventSelectionChanged, sel)
		return
	}

	if !t.Calibrated() {
		log.Printf("app: ignoring click; graph is not calibrated")
		return
	}
	x, y := t.PixelToData(pos)
	s.Datasets.AddPoint(s.Datasets.Active(), geometry.Point2D{X: x, Y: y})
	s.SetModified(true)
	s.Emit(EventDatasetsChanged, nil)
}

// BeginDrag picks the nearest point for dragging without adding a new
// one. Reports whether a point was picked.
func (s *State) BeginDrag(pos geometry.Point2D) bool {
	if s.Session.Active() {
		return false
	}
	t := s.Transform()
	sel, ok := s.Datasets.FindNearest(pos, s.PickRadius, t.DataToPixel)
	if !ok {
		return false
	}
	s.drag = &sel
	s.Emit(EventSelectionChanged, sel)
	return true
}

// HandleDrag moves the currently picked point to follow the pointer.
func (s *State) HandleDrag(pos geometry.Point2D) {
	if s.drag == nil {
		return
	}
	t := s.Transform()
	if !t.Calibrated() {
		return
	}
	x, y := t.PixelToData(pos)
	s.Datasets.MovePoint(s.drag.Dataset, s.drag.Point, geometry.Point2D{X: x, Y: y})
	s.SetModified(true)
	s.Emit(EventDatasetsChanged, nil)
}

// HandleRelease ends a drag.
func (s *State) HandleRelease() {
	if s.drag != nil {
		s.drag = nil
		s.Emit(EventSelectionChanged, nil)
	}
}

// HandleSecondaryPress deletes the point nearest the pointer, if any is
// within the pick radius.
func (s *State) HandleSecondaryPress(pos geometry.Point2D) {
	t := s.Transform()
	sel, ok := s.Datasets.FindNearest(pos, s.PickRadius, t.DataToPixel)
	if !ok {
		return
	}
	s.Datasets.DeleteSelection(sel)
	s.SetModified(true)
	s.Emit(EventDatasetsChanged, nil)
}

// DragTarget returns the point currently being dragged, if any.
func (s *State) DragTarget() (dataset.Selection, bool) {
	if s.drag == nil {
		return dataset.Selection{}, false
	}
	return *s.drag, true
}

// RunAutoTrace traces the image with the active dataset's color and
// replaces that dataset's points with the result.
func (s *State) RunAutoTrace() error {
	if s.Image == nil {
		return ErrNoImage
	}
	t := s.Transform()
	if !t.Calibrated() {
		return ErrNotCalibrated
	}

	active := s.Datasets.ActiveDataset()
	points := autotrace.Trace(s.Image, t, s.View, active.RGB)
	s.Datasets.ReplacePoints(s.Datasets.Active(), points)
	log.Printf("autotrace: %d points for %q", len(points), active.Name)

	s.SetModified(true)
	s.Emit(EventDatasetsChanged, nil)
	return nil
}

// SaveProject writes the full state as a JSON project file.
func (s *State) SaveProject(path string) error {
	f := project.FromStore(s.Title, s.XLabel, s.YLabel, s.Axis, s.Datasets)
	if err := f.Save(path); err != nil {
		return err
	}
	s.ProjectPath = path
	s.SetModified(false)
	s.Emit(EventProjectSaved, path)
	return nil
}

// LoadProject restores state from a JSON project file. A parse failure
// leaves the current state untouched.
func (s *State) LoadProject(path string) error {
	f, err := project.Load(path)
	if err != nil {
		return err
	}

	s.Title = f.Title
	s.XLabel = f.XLabel
	s.YLabel = f.YLabel
	s.Axis = f.Range
	f.ApplyTo(s.Datasets)

	s.ProjectPath = path
	s.Modified = false
	s.Emit(EventProjectLoaded, path)
	s.Emit(EventDatasetsChanged, nil)
	return nil
}

// ExportCSV writes the flattened dataset,x,y document.
func (s *State) ExportCSV(path string) error {
	f := project.FromStore(s.Title, s.XLabel, s.YLabel, s.Axis, s.Datasets)
	return f.ExportCSV(path)
}

// DefaultFilename derives a save-dialog filename from the title.
func (s *State) DefaultFilename() string {
	return project.SafeFilename(s.Title, time.Now())
}
