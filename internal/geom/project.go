package geom

// worldMargin is added on every side of the bounding box so that no point
// lands exactly on the mapped edge.
const worldMargin = 1.0

// Mapping is the linear world-to-surface transform for a single redraw.
// It is recomputed from the full point set before every draw.
type Mapping struct {
	ScaleX float64
	ScaleY float64
	MinX   float64
	MinY   float64
	MaxX   float64
	MaxY   float64

	Width   float64
	Height  float64
	Padding float64
}

// ComputeMapping fits points into a width x height surface, leaving padding
// on each side. An empty point set yields a unit mapping anchored at the origin.
func ComputeMapping(points []Point, width, height, padding float64) Mapping {
	m := Mapping{ScaleX: 1, ScaleY: 1, Width: width, Height: height, Padding: padding}
	bbox, ok := Bounds(points)
	if !ok {
		return m
	}
	m.MinX = bbox.MinX - worldMargin
	m.MaxX = bbox.MaxX + worldMargin
	m.MinY = bbox.MinY - worldMargin
	m.MaxY = bbox.MaxY + worldMargin

	m.ScaleX = (width - 2*padding) / max(m.MaxX-m.MinX, 1)
	m.ScaleY = (height - 2*padding) / max(m.MaxY-m.MinY, 1)
	return m
}

// Project maps a world point onto the surface. World Y grows up, surface Y grows down.
func (m Mapping) Project(p Point) SurfacePoint {
	return SurfacePoint{
		X: m.Padding + (p.X-m.MinX)*m.ScaleX,
		Y: m.Height - m.Padding - (p.Y-m.MinY)*m.ScaleY,
	}
}

// Unproject is the inverse of Project.
func (m Mapping) Unproject(s SurfacePoint) Point {
	p := Point{X: m.MinX, Y: m.MinY}
	if m.ScaleX != 0 {
		p.X += (s.X - m.Padding) / m.ScaleX
	}
	if m.ScaleY != 0 {
		p.Y += (m.Height - m.Padding - s.Y) / m.ScaleY
	}
	return p
}
