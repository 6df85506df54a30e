// Package track holds the rover's bounded position history for a single
// tracking session.
package track

import (
	"math"

	"github.com/google/uuid"

	"rovermap/internal/geom"
)

// DefaultMaxPositions bounds the path when no explicit limit is configured.
const DefaultMaxPositions = 50

// State is the mutable aggregate for one session. It is owned by a single
// event-handling flow and is not safe for concurrent use.
type State struct {
	SessionID string

	// Start is set on the first recorded position and never reassigned.
	Start   *geom.Point
	Current *geom.Point
	Heading Heading

	// Path is oldest first, holds no two consecutive equal entries and
	// never exceeds MaxPositions.
	Path             []geom.Point
	PointsOfInterest []geom.Point

	MaxPositions int
}

func NewState(maxPositions int) *State {
	if maxPositions <= 0 {
		maxPositions = DefaultMaxPositions
	}
	return &State{
		SessionID:    uuid.NewString(),
		MaxPositions: maxPositions,
	}
}

// RecordPosition records a position given as raw coordinates. Anything other
// than exactly two finite values is ignored and false is returned.
func (s *State) RecordPosition(coords []float64) bool {
	if len(coords) != 2 {
		return false
	}
	for _, c := range coords {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	s.RecordPoint(geom.Point{X: coords[0], Y: coords[1]})
	return true
}

// RecordPoint updates the current position and appends p to the path unless
// it equals the most recent path entry.
func (s *State) RecordPoint(p geom.Point) {
	if s.Start == nil {
		start := p
		s.Start = &start
	}
	cur := p
	s.Current = &cur

	if n := len(s.Path); n > 0 && s.Path[n-1] == p {
		return
	}
	s.Path = append(s.Path, p)
	if len(s.Path) > s.MaxPositions {
		s.Path = s.Path[len(s.Path)-s.MaxPositions:]
	}
}

func (s *State) RecordHeading(h Heading) {
	s.Heading = h
}

// ReplacePointsOfInterest swaps in a copy of points. It does not diff against
// the previous list.
func (s *State) ReplacePointsOfInterest(points []geom.Point) {
	s.PointsOfInterest = append([]geom.Point(nil), points...)
}

// Reset returns the state to its initial empty form under a new session id.
func (s *State) Reset() {
	limit := s.MaxPositions
	*s = State{
		SessionID:    uuid.NewString(),
		MaxPositions: limit,
	}
}

// MappingPoints returns every point that must stay visible: the path, the
// current position, the start and the points of interest. The start is kept
// even after eviction has dropped it from the path.
func (s *State) MappingPoints() []geom.Point {
	pts := make([]geom.Point, 0, len(s.Path)+2+len(s.PointsOfInterest))
	pts = append(pts, s.Path...)
	if s.Current != nil {
		pts = append(pts, *s.Current)
	}
	if s.Start != nil {
		pts = append(pts, *s.Start)
	}
	return append(pts, s.PointsOfInterest...)
}
