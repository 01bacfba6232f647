package dataset

import (
	"plot-digitizer/pkg/geometry"
)

// Selection identifies one point as (dataset slot, point index). The
// point index references the sequence position at lookup time and can go
// stale after edits; mutation operations tolerate that.
type Selection struct {
	Dataset int
	Point   int
}

// Project converts a data point to its canvas pixel position. Supplied
// by the calibration transform.
type Project func(x, y float64) geometry.Point2D

// FindNearest scans every point in every dataset, in (dataset, point)
// order, and returns the one closest to pos in pixel space. Candidates
// farther than maxDistance are rejected; a point exactly at the boundary
// is eligible. Ties keep the first candidate encountered.
func (s *Store) FindNearest(pos geometry.Point2D, maxDistance float64, project Project) (Selection, bool) {
	best := maxDistance
	var sel Selection
	found := false

	for i := range s.slots {
		for j, p := range s.slots[i].Points {
			d := project(p.X, p.Y).Distance(pos)
			if d < best || (!found && d == best) {
				best = d
				sel = Selection{Dataset: i, Point: j}
				found = true
			}
		}
	}
	return sel, found
}
