package tui

import (
	"fmt"
	"strings"
	"time"

	"rovermap/internal/canvas"
	"rovermap/internal/geom"
	"rovermap/internal/ingest"
	"rovermap/internal/monitoring"
	"rovermap/internal/scene"
	"rovermap/internal/track"
)

// mapView is the ingestor's renderer. It lives behind a pointer so that the
// frame survives bubbletea's value-copied Model.
type mapView struct {
	style scene.Style
	br    *canvas.Braille
	frame string

	mapping    geom.Mapping
	hasMapping bool
}

func newMapView(style scene.Style) *mapView {
	return &mapView{style: style}
}

// resize reallocates the braille canvas to cols x rows cells.
func (v *mapView) resize(cols, rows int) bool {
	if v.br != nil && v.br.Cols() == cols && v.br.Rows() == rows {
		return false
	}
	if v.br == nil {
		v.br = canvas.NewBraille(cols, rows)
	} else {
		v.br.Resize(cols, rows)
	}
	return true
}

func (v *mapView) Render(st *track.State) {
	if v.br == nil {
		return
	}
	v.mapping, v.hasMapping = scene.Render(v.br, st, v.style)
	if !v.hasMapping {
		// the view shows the idle message instead of an empty border
		v.frame = ""
		return
	}
	v.frame = strings.Join(v.br.Lines(), "\n")
}

// worldAt maps a terminal cell inside the map to world coordinates, using the
// centre of the cell's dot grid.
func (v *mapView) worldAt(cx, cy int) (geom.Point, bool) {
	if !v.hasMapping {
		return geom.Point{}, false
	}
	return v.mapping.Unproject(geom.SurfacePoint{X: float64(cx*2) + 1, Y: float64(cy*4) + 2}), true
}

// sessionLog collects discovery notifications and recent messages.
type sessionLog struct {
	discoveries []ingest.Discovery
	last        string
}

func (l *sessionLog) discovered(d ingest.Discovery) {
	l.discoveries = append(l.discoveries, d)
	l.last = fmt.Sprintf("survivor found at X=%g, Y=%g", d.Point.X, d.Point.Y)
	monitoring.Logf("%s (index %d, %s)", l.last, d.Index, d.Time.Format(time.RFC3339))
}

func (l *sessionLog) reset() {
	l.discoveries = nil
	l.last = ""
}
