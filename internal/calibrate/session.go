package calibrate

import (
	"plot-digitizer/pkg/geometry"
)

// Session collects the four anchor clicks of one calibration pass.
// Clicks must arrive in the fixed order X-left, X-right, Y-bottom, Y-top;
// that ordering is a user-facing contract.
type Session struct {
	active bool
	clicks []geometry.Point2D
	result Anchors
	done   bool
}

// Start begins (or restarts) anchor collection. Any clicks recorded by a
// previous, unfinished pass are discarded.
func (s *Session) Start() {
	s.active = true
	s.done = false
	s.clicks = s.clicks[:0]
}

// Active reports whether the session is currently collecting clicks.
func (s *Session) Active() bool {
	return s.active
}

// ClickCount returns the number of clicks collected so far.
func (s *Session) ClickCount() int {
	return len(s.clicks)
}

// Clicks returns the clicks collected so far, for in-progress marker
// rendering.
func (s *Session) Clicks() []geometry.Point2D {
	return s.clicks
}

// RecordClick appends an anchor click. On the fourth click the anchors
// are committed as a unit and the session leaves collection mode.
// Clicks outside an active session are ignored.
func (s *Session) RecordClick(p geometry.Point2D) {
	if !s.active {
		return
	}
	s.clicks = append(s.clicks, p)
	if len(s.clicks) == 4 {
		s.result = FromClicks([4]geometry.Point2D{s.clicks[0], s.clicks[1], s.clicks[2], s.clicks[3]})
		s.active = false
		s.done = true
	}
}

// Complete reports whether a full set of four anchors has been recorded.
func (s *Session) Complete() bool {
	return s.done
}

// Anchors returns the committed anchors. Only valid when Complete.
func (s *Session) Anchors() Anchors {
	return s.result
}
