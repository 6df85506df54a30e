package scene

import "image/color"

// Surface is an immediate-mode 2D drawing target. Coordinates follow the
// usual canvas convention: origin top-left, Y growing downward. Angles are
// radians measured clockwise from +X.
type Surface interface {
	Width() float64
	Height() float64

	ClearRect(x, y, w, h float64)
	StrokeRect(x, y, w, h float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Arc(x, y, r, start, end float64)
	ClosePath()
	Stroke()
	Fill()

	SetStrokeColor(c color.Color)
	SetFillColor(c color.Color)
	SetLineWidth(w float64)
}
