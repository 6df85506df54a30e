// Package scene draws the rover track onto a Surface.
package scene

import (
	"math"

	"rovermap/internal/geom"
	"rovermap/internal/track"
)

// Render clears s and redraws the whole scene for st. Layers are drawn in a
// fixed order so later markers occlude earlier ones: border, path, start,
// points of interest, rover. It returns the mapping the markers were projected
// with; ok is false when there was nothing to project.
func Render(s Surface, st *track.State, style Style) (m geom.Mapping, ok bool) {
	w, h := s.Width(), s.Height()
	s.ClearRect(0, 0, w, h)
	s.SetStrokeColor(style.BorderColor)
	s.SetLineWidth(style.BorderWidth)
	s.StrokeRect(0, 0, w, h)

	if st == nil || len(st.Path) == 0 {
		return geom.Mapping{}, false
	}

	m = geom.ComputeMapping(st.MappingPoints(), w, h, style.Padding)

	if len(st.Path) > 1 {
		drawPath(s, m, st.Path, style)
	}
	if st.Start != nil {
		drawStart(s, m.Project(*st.Start), style)
	}
	for _, p := range st.PointsOfInterest {
		drawSurvivor(s, m.Project(p), style)
	}
	if st.Current != nil {
		drawRover(s, m.Project(*st.Current), st.Heading, style)
	}
	return m, true
}

func drawPath(s Surface, m geom.Mapping, path []geom.Point, style Style) {
	s.SetStrokeColor(style.PathColor)
	s.SetLineWidth(style.PathWidth)
	s.BeginPath()
	first := m.Project(path[0])
	s.MoveTo(first.X, first.Y)
	for _, p := range path[1:] {
		c := m.Project(p)
		s.LineTo(c.X, c.Y)
	}
	s.Stroke()
}

func fillCircle(s Surface, c geom.SurfacePoint, r float64) {
	s.BeginPath()
	s.Arc(c.X, c.Y, r, 0, 2*math.Pi)
	s.Fill()
}

func drawStart(s Surface, c geom.SurfacePoint, style Style) {
	s.SetFillColor(style.StartColor)
	fillCircle(s, c, style.RoverSize/1.5)

	d := style.RoverSize / 2
	s.SetStrokeColor(style.GlyphColor)
	s.SetLineWidth(style.GlyphWidth)
	s.BeginPath()
	s.MoveTo(c.X-d, c.Y-d)
	s.LineTo(c.X+d, c.Y+d)
	s.MoveTo(c.X+d, c.Y-d)
	s.LineTo(c.X-d, c.Y+d)
	s.Stroke()
}

func drawSurvivor(s Surface, c geom.SurfacePoint, style Style) {
	s.SetFillColor(style.SurvivorColor)
	fillCircle(s, c, style.SurvivorSize)

	d := style.SurvivorSize / 2
	s.SetStrokeColor(style.GlyphColor)
	s.SetLineWidth(style.GlyphWidth / 2)
	s.BeginPath()
	s.MoveTo(c.X-d, c.Y)
	s.LineTo(c.X+d, c.Y)
	s.MoveTo(c.X, c.Y-d)
	s.LineTo(c.X, c.Y+d)
	s.Stroke()
}

func drawRover(s Surface, c geom.SurfacePoint, h track.Heading, style Style) {
	s.SetFillColor(style.RoverColor)
	fillCircle(s, c, style.RoverSize)

	s.SetFillColor(style.GlyphColor)
	s.BeginPath()
	for i, v := range headingTriangle(c, h, style.RoverSize) {
		if i == 0 {
			s.MoveTo(v.X, v.Y)
			continue
		}
		s.LineTo(v.X, v.Y)
	}
	s.ClosePath()
	s.Fill()
}

// headingTriangle returns tip first, then the two base corners. Forward
// points up the surface (world +Y).
func headingTriangle(c geom.SurfacePoint, h track.Heading, size float64) [3]geom.SurfacePoint {
	tip := size / 1.2
	half := size / 2
	switch h {
	case track.HeadingForward:
		return [3]geom.SurfacePoint{{X: c.X, Y: c.Y - tip}, {X: c.X + half, Y: c.Y}, {X: c.X - half, Y: c.Y}}
	case track.HeadingBackward:
		return [3]geom.SurfacePoint{{X: c.X, Y: c.Y + tip}, {X: c.X + half, Y: c.Y}, {X: c.X - half, Y: c.Y}}
	case track.HeadingLeft:
		return [3]geom.SurfacePoint{{X: c.X - tip, Y: c.Y}, {X: c.X, Y: c.Y + half}, {X: c.X, Y: c.Y - half}}
	case track.HeadingRight:
		return [3]geom.SurfacePoint{{X: c.X + tip, Y: c.Y}, {X: c.X, Y: c.Y + half}, {X: c.X, Y: c.Y - half}}
	}
	// neutral marker, pointing down
	return [3]geom.SurfacePoint{{X: c.X, Y: c.Y + half}, {X: c.X + half, Y: c.Y - half}, {X: c.X - half, Y: c.Y - half}}
}
