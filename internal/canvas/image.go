package canvas

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgimg"
)

// Image is a Surface that rasterises through a gonum/plot vgimg canvas.
// One surface unit is one pixel.
type Image struct {
	c    *vgimg.Canvas
	w, h float64

	path      vg.Path
	stroke    color.Color
	fill      color.Color
	lineWidth float64
	bg        color.Color
}

func NewImage(w, h int) *Image {
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(w), vg.Length(h)),
		vgimg.UseDPI(int(vg.Inch)),
		vgimg.UseBackgroundColor(color.White),
	)
	return &Image{
		c:         c,
		w:         float64(w),
		h:         float64(h),
		stroke:    color.Black,
		fill:      color.Black,
		lineWidth: 1,
		bg:        color.White,
	}
}

// pt converts a top-left origin coordinate into vg's bottom-left space.
func (i *Image) pt(x, y float64) vg.Point {
	return vg.Point{X: vg.Length(x), Y: vg.Length(i.h - y)}
}

func (i *Image) rect(x, y, w, h float64) vg.Path {
	var p vg.Path
	p.Move(i.pt(x, y))
	p.Line(i.pt(x+w, y))
	p.Line(i.pt(x+w, y+h))
	p.Line(i.pt(x, y+h))
	p.Close()
	return p
}

func (i *Image) Width() float64  { return i.w }
func (i *Image) Height() float64 { return i.h }

func (i *Image) ClearRect(x, y, w, h float64) {
	i.c.SetColor(i.bg)
	i.c.Fill(i.rect(x, y, w, h))
}

func (i *Image) StrokeRect(x, y, w, h float64) {
	// inset by half a line so the outline stays on the image
	d := i.lineWidth / 2
	i.c.SetColor(i.stroke)
	i.c.SetLineWidth(vg.Length(i.lineWidth))
	i.c.Stroke(i.rect(x+d, y+d, w-2*d, h-2*d))
}

func (i *Image) BeginPath()          { i.path = nil }
func (i *Image) MoveTo(x, y float64) { i.path.Move(i.pt(x, y)) }

func (i *Image) LineTo(x, y float64) {
	if len(i.path) == 0 {
		i.path.Move(i.pt(x, y))
		return
	}
	i.path.Line(i.pt(x, y))
}

// Arc mirrors the angles because the Y axis is flipped.
func (i *Image) Arc(x, y, r, start, end float64) {
	i.path.Arc(i.pt(x, y), vg.Length(r), -start, -(end - start))
}

func (i *Image) ClosePath() { i.path.Close() }

func (i *Image) Stroke() {
	i.c.SetColor(i.stroke)
	i.c.SetLineWidth(vg.Length(i.lineWidth))
	i.c.Stroke(i.path)
}

func (i *Image) Fill() {
	i.c.SetColor(i.fill)
	i.c.Fill(i.path)
}

func (i *Image) SetStrokeColor(c color.Color) { i.stroke = c }
func (i *Image) SetFillColor(c color.Color)   { i.fill = c }
func (i *Image) SetLineWidth(w float64)       { i.lineWidth = w }

// Image returns the rasterised surface.
func (i *Image) Image() image.Image {
	return i.c.Image()
}

func (i *Image) WritePNG(w io.Writer) error {
	if _, err := (vgimg.PngCanvas{Canvas: i.c}).WriteTo(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG writes the surface to path.
func (i *Image) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := i.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
