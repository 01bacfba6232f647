// Package dataset provides the fixed six-slot collection of digitized
// point series and the queries used for on-canvas selection.
package dataset

import (
	"fmt"

	"plot-digitizer/pkg/colorutil"
	"plot-digitizer/pkg/geometry"
)

// MaxDatasets is the number of dataset slots. The slot count is fixed
// for the life of the application; slots are renamed and recolored, never
// added or removed.
const MaxDatasets = 6

// Dataset is a named, colored, ordered series of digitized points in
// data coordinates.
type Dataset struct {
	Name   string             `json:"name"`
	Color  string             `json:"color"`
	RGB    colorutil.RGB      `json:"-"` // cached decode of Color
	Points []geometry.Point2D `json:"points"`
}

// SetColor updates the hex color and its cached decode together, so no
// observer ever sees a stale RGB.
func (d *Dataset) SetColor(hex string) {
	d.Color = hex
	d.RGB = colorutil.HexToRGB(hex)
}

// Store holds the six dataset slots and the active-slot index.
type Store struct {
	slots  [MaxDatasets]Dataset
	active int
}

// NewStore creates a store with six pre-named, pre-colored empty slots.
func NewStore() *Store {
	s := &Store{}
	for i := range s.slots {
		s.slots[i].Name = fmt.Sprintf("Dataset %d", i+1)
		s.slots[i].SetColor(colorutil.DefaultPalette[i])
	}
	return s
}

// Active returns the index of the active dataset.
func (s *Store) Active() int {
	return s.active
}

// SelectActive changes the active slot. Out-of-range indices are ignored.
func (s *Store) SelectActive(i int) {
	if i < 0 || i >= MaxDatasets {
		return
	}
	s.active = i
}

// Get returns a pointer to the dataset in slot i, or nil if out of range.
func (s *Store) Get(i int) *Dataset {
	if i < 0 || i >= MaxDatasets {
		return nil
	}
	return &s.slots[i]
}

// ActiveDataset returns the active slot.
func (s *Store) ActiveDataset() *Dataset {
	return &s.slots[s.active]
}

// RenameActive renames the active dataset.
func (s *Store) RenameActive(name string) {
	s.slots[s.active].Name = name
}

// RecolorActive sets the active dataset's color, refreshing the RGB cache.
func (s *Store) RecolorActive(hex string) {
	s.slots[s.active].SetColor(hex)
}

// AddPoint appends a point to dataset i. No deduplication and no
// reordering: points stay in insertion order.
func (s *Store) AddPoint(i int, p geometry.Point2D) {
	if d := s.Get(i); d != nil {
		d.Points = append(d.Points, p)
	}
}

// MovePoint replaces the point at (dataset, index). Stale indices are a
// no-op; the selection that produced them may have outlived an edit.
func (s *Store) MovePoint(i, pt int, p geometry.Point2D) {
	d := s.Get(i)
	if d == nil || pt < 0 || pt >= len(d.Points) {
		return
	}
	d.Points[pt] = p
}

// DeletePoint removes the point at (dataset, index). Stale indices are a
// no-op.
func (s *Store) DeletePoint(i, pt int) {
	d := s.Get(i)
	if d == nil || pt < 0 || pt >= len(d.Points) {
		return
	}
	d.Points = append(d.Points[:pt], d.Points[pt+1:]...)
}

// DeleteSelection removes the point a nearest-point query selected.
func (s *Store) DeleteSelection(sel Selection) {
	s.DeletePoint(sel.Dataset, sel.Point)
}

// ReplacePoints swaps dataset i's point series wholesale. Used when an
// auto-trace result is committed.
func (s *Store) ReplacePoints(i int, points []geometry.Point2D) {
	if d := s.Get(i); d != nil {
		d.Points = points
	}
}

// TotalPoints returns the point count across all slots.
func (s *Store) TotalPoints() int {
	n := 0
	for i := range s.slots {
		n += len(s.slots[i].Points)
	}
	return n
}
