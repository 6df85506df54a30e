package geom

// Point is a position in the rover's native world coordinates.
type Point struct {
	X float64
	Y float64
}

// SurfacePoint is a position on the drawing surface (Y grows downward).
type SurfacePoint struct {
	X float64
	Y float64
}

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Bounds returns the tight bounding box of points. ok is false for an empty slice.
func Bounds(points []Point) (bbox BBox, ok bool) {
	for i, p := range points {
		if i == 0 {
			bbox = BBox{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
			continue
		}
		if p.X < bbox.MinX {
			bbox.MinX = p.X
		}
		if p.Y < bbox.MinY {
			bbox.MinY = p.Y
		}
		if p.X > bbox.MaxX {
			bbox.MaxX = p.X
		}
		if p.Y > bbox.MaxY {
			bbox.MaxY = p.Y
		}
	}
	return bbox, len(points) > 0
}
