// Package ingest applies inbound rover updates to the track state and
// triggers redraws.
package ingest

import (
	"time"

	"rovermap/internal/geom"
	"rovermap/internal/track"
)

// Renderer redraws the scene for the given state.
type Renderer interface {
	Render(st *track.State)
}

// RenderFunc adapts a function to Renderer.
type RenderFunc func(st *track.State)

func (f RenderFunc) Render(st *track.State) { f(st) }

// Discovery announces a survivor that was not in the previous list.
type Discovery struct {
	Point geom.Point
	// Index is the survivor's position in the incoming list.
	Index int
	Time  time.Time
}

// Ingestor is the single mutator of a track.State. It is driven from one
// goroutine and performs no locking.
type Ingestor struct {
	state    *track.State
	renderer Renderer
	notify   func(Discovery)
	now      func() time.Time
}

type Option func(*Ingestor)

// WithNotifier registers the discovery callback.
func WithNotifier(f func(Discovery)) Option {
	return func(in *Ingestor) { in.notify = f }
}

// WithClock overrides the timestamp source for discoveries.
func WithClock(now func() time.Time) Option {
	return func(in *Ingestor) { in.now = now }
}

func New(st *track.State, r Renderer, opts ...Option) *Ingestor {
	in := &Ingestor{
		state:    st,
		renderer: r,
		notify:   func(Discovery) {},
		now:      time.Now,
	}
	for _, o := range opts {
		o(in)
	}
	return in
}

func (in *Ingestor) State() *track.State { return in.state }

// Handle dispatches a named event. Unknown names are applied as combined updates.
func (in *Ingestor) Handle(ev Event) {
	switch ev.Name {
	case EventPosition:
		if ev.Update.Position != nil {
			in.Position(ev.Update.Position)
		}
	case EventHeading:
		if ev.Update.Direction != "" {
			in.Heading(ev.Update.Direction)
		}
	case EventSurvivors:
		if ev.Update.Survivors != nil {
			in.Survivors(ev.Update.Survivors)
		}
	default:
		in.Apply(ev.Update)
	}
}

// Apply handles a combined update: position, then heading, then survivors,
// followed by a single redraw.
func (in *Ingestor) Apply(u Update) {
	if u.Empty() {
		return
	}
	if u.Position != nil {
		in.state.RecordPosition(u.Position)
	}
	if u.Direction != "" {
		in.state.RecordHeading(track.ParseHeading(u.Direction))
	}
	if u.Survivors != nil {
		in.replaceSurvivors(u.Survivors)
	}
	in.render()
}

func (in *Ingestor) Position(coords []float64) {
	in.state.RecordPosition(coords)
	in.render()
}

func (in *Ingestor) Heading(direction string) {
	in.state.RecordHeading(track.ParseHeading(direction))
	in.render()
}

func (in *Ingestor) Survivors(list [][]float64) {
	in.replaceSurvivors(list)
	in.render()
}

// Reset starts a new session and redraws the empty scene.
func (in *Ingestor) Reset() {
	in.state.Reset()
	in.render()
}

// replaceSurvivors notifies for every entry beyond the stored count, then
// replaces the stored list. A list that shrinks or keeps its length never
// produces discoveries.
func (in *Ingestor) replaceSurvivors(list [][]float64) {
	points := make([]geom.Point, 0, len(list))
	for _, c := range list {
		if len(c) != 2 {
			continue
		}
		points = append(points, geom.Point{X: c[0], Y: c[1]})
	}
	if old := len(in.state.PointsOfInterest); len(points) > old {
		ts := in.now()
		for i, p := range points[old:] {
			in.notify(Discovery{Point: p, Index: old + i, Time: ts})
		}
	}
	in.state.ReplacePointsOfInterest(points)
}

func (in *Ingestor) render() {
	if in.renderer != nil {
		in.renderer.Render(in.state)
	}
}
