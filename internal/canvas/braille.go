// Package canvas provides scene.Surface backends.
package canvas

import (
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

type fpoint struct{ x, y float64 }

// Braille is a Surface backed by terminal braille glyphs. Each cell carries
// a 2x4 grid of dots, so a cols x rows canvas is 2*cols x 4*rows units.
// A cell takes the colour of the last dot written into it.
type Braille struct {
	w, h int       // in cells
	px   [][]uint8 // per-dot palette index, 0 = empty
	last [][]uint8 // per-cell palette index of the last dot written

	palette []color.Color
	styles  []lipgloss.Style

	stroke, fill uint8
	subpaths     [][]fpoint
}

func NewBraille(cols, rows int) *Braille {
	b := &Braille{palette: []color.Color{nil}, styles: []lipgloss.Style{lipgloss.NewStyle()}}
	b.Resize(cols, rows)
	b.stroke = b.colorIndex(color.White)
	b.fill = b.stroke
	return b
}

// Resize reallocates the dot grid and clears it.
func (b *Braille) Resize(cols, rows int) {
	cols, rows = max(cols, 1), max(rows, 1)
	b.w, b.h = cols, rows
	b.px = make([][]uint8, rows*4)
	for i := range b.px {
		b.px[i] = make([]uint8, cols*2)
	}
	b.last = make([][]uint8, rows)
	for i := range b.last {
		b.last[i] = make([]uint8, cols)
	}
}

func (b *Braille) Cols() int { return b.w }
func (b *Braille) Rows() int { return b.h }

func (b *Braille) Width() float64  { return float64(b.w * 2) }
func (b *Braille) Height() float64 { return float64(b.h * 4) }

func (b *Braille) colorIndex(c color.Color) uint8 {
	r, g, bl, a := c.RGBA()
	for i, p := range b.palette[1:] {
		pr, pg, pb, pa := p.RGBA()
		if pr == r && pg == g && pb == bl && pa == a {
			return uint8(i + 1)
		}
	}
	if len(b.palette) == math.MaxUint8 {
		return uint8(len(b.palette) - 1)
	}
	b.palette = append(b.palette, c)
	st := lipgloss.NewStyle()
	if cf, ok := colorful.MakeColor(c); ok {
		st = st.Foreground(lipgloss.Color(cf.Hex()))
	}
	b.styles = append(b.styles, st)
	return uint8(len(b.palette) - 1)
}

func (b *Braille) SetStrokeColor(c color.Color) { b.stroke = b.colorIndex(c) }
func (b *Braille) SetFillColor(c color.Color)   { b.fill = b.colorIndex(c) }

// SetLineWidth is accepted for compatibility; dots are always one unit wide.
func (b *Braille) SetLineWidth(float64) {}

// setPixel sets a dot at micro coords (2x4 per cell)
func (b *Braille) setPixel(mx, my int, idx uint8) {
	if mx < 0 || my < 0 || my >= len(b.px) || mx >= len(b.px[my]) {
		return
	}
	b.px[my][mx] = idx
	if idx != 0 {
		b.last[my/4][mx/2] = idx
	}
}

func (b *Braille) ClearRect(x, y, w, h float64) {
	x0, y0 := int(math.Floor(x)), int(math.Floor(y))
	x1, y1 := int(math.Ceil(x+w)), int(math.Ceil(y+h))
	for my := max(y0, 0); my < min(y1, len(b.px)); my++ {
		for mx := max(x0, 0); mx < min(x1, len(b.px[my])); mx++ {
			b.px[my][mx] = 0
		}
	}
	for cy := range b.last {
		for cx := range b.last[cy] {
			if b.cellEmpty(cx, cy) {
				b.last[cy][cx] = 0
			}
		}
	}
}

func (b *Braille) cellEmpty(cx, cy int) bool {
	for dy := 0; dy < 4; dy++ {
		for dx := 0; dx < 2; dx++ {
			if b.px[cy*4+dy][cx*2+dx] != 0 {
				return false
			}
		}
	}
	return true
}

// StrokeRect outlines the rectangle along its innermost dots.
func (b *Braille) StrokeRect(x, y, w, h float64) {
	x0, y0 := int(math.Round(x)), int(math.Round(y))
	x1, y1 := int(math.Round(x+w))-1, int(math.Round(y+h))-1
	b.drawLineMicro(x0, y0, x1, y0, b.stroke)
	b.drawLineMicro(x1, y0, x1, y1, b.stroke)
	b.drawLineMicro(x1, y1, x0, y1, b.stroke)
	b.drawLineMicro(x0, y1, x0, y0, b.stroke)
}

func (b *Braille) BeginPath() { b.subpaths = nil }

func (b *Braille) MoveTo(x, y float64) {
	b.subpaths = append(b.subpaths, []fpoint{{x, y}})
}

func (b *Braille) LineTo(x, y float64) {
	if len(b.subpaths) == 0 {
		b.MoveTo(x, y)
		return
	}
	i := len(b.subpaths) - 1
	b.subpaths[i] = append(b.subpaths[i], fpoint{x, y})
}

// Arc appends a flattened arc to the current subpath.
func (b *Braille) Arc(x, y, r, start, end float64) {
	steps := max(12, int(r*4))
	for i := 0; i <= steps; i++ {
		a := start + (end-start)*float64(i)/float64(steps)
		b.LineTo(x+r*math.Cos(a), y+r*math.Sin(a))
	}
}

func (b *Braille) ClosePath() {
	if len(b.subpaths) == 0 {
		return
	}
	i := len(b.subpaths) - 1
	sp := b.subpaths[i]
	b.subpaths[i] = append(sp, sp[0])
	// drawing continues from the start of the closed subpath
	b.subpaths = append(b.subpaths, []fpoint{sp[0]})
}

func (b *Braille) Stroke() {
	for _, sp := range b.subpaths {
		if len(sp) == 1 {
			b.setPixel(int(math.Floor(sp[0].x)), int(math.Floor(sp[0].y)), b.stroke)
			continue
		}
		for i := 1; i < len(sp); i++ {
			b.drawLineMicro(int(math.Floor(sp[i-1].x)), int(math.Floor(sp[i-1].y)),
				int(math.Floor(sp[i].x)), int(math.Floor(sp[i].y)), b.stroke)
		}
	}
}

// Fill paints the interior of all subpaths with the even-odd rule, sampling
// each dot at its centre.
func (b *Braille) Fill() {
	var edges [][2]fpoint
	for _, sp := range b.subpaths {
		if len(sp) < 3 {
			continue
		}
		for i := range sp {
			edges = append(edges, [2]fpoint{sp[i], sp[(i+1)%len(sp)]})
		}
	}
	if len(edges) == 0 {
		return
	}
	for my := range b.px {
		y := float64(my) + 0.5
		var xs []float64
		for _, e := range edges {
			a, c := e[0], e[1]
			if a.y == c.y { // horizontal edge: skip
				continue
			}
			if (y >= a.y && y < c.y) || (y >= c.y && y < a.y) {
				t := (y - a.y) / (c.y - a.y)
				xs = append(xs, a.x+t*(c.x-a.x))
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			from := int(math.Ceil(xs[i] - 0.5))
			to := int(math.Floor(xs[i+1] - 0.5))
			for mx := max(0, from); mx <= to; mx++ {
				b.setPixel(mx, my, b.fill)
			}
		}
	}
}

// drawLineMicro draws a line on the dot grid using Bresenham
func (b *Braille) drawLineMicro(x0, y0, x1, y1 int, idx uint8) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0, idx)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// dotBit maps a dot within its cell to the braille pattern bit.
func dotBit(rx, ry int) uint8 {
	if rx == 0 {
		switch ry {
		case 0:
			return 0x01
		case 1:
			return 0x02
		case 2:
			return 0x04
		}
		return 0x40
	}
	switch ry {
	case 0:
		return 0x08
	case 1:
		return 0x10
	case 2:
		return 0x20
	}
	return 0x80
}

// Mask returns the braille bit mask of a cell.
func (b *Braille) Mask(cx, cy int) uint8 {
	if cx < 0 || cy < 0 || cx >= b.w || cy >= b.h {
		return 0
	}
	var mask uint8
	for ry := 0; ry < 4; ry++ {
		for rx := 0; rx < 2; rx++ {
			if b.px[cy*4+ry][cx*2+rx] != 0 {
				mask |= dotBit(rx, ry)
			}
		}
	}
	return mask
}

// CellColor returns the colour of a cell, or nil when it is blank.
func (b *Braille) CellColor(cx, cy int) color.Color {
	if cx < 0 || cy < 0 || cx >= b.w || cy >= b.h {
		return nil
	}
	return b.palette[b.last[cy][cx]]
}

// PlainLines renders the canvas without colour.
func (b *Braille) PlainLines() []string {
	return b.lines(false)
}

// Lines renders the canvas with each cell coloured by lipgloss.
func (b *Braille) Lines() []string {
	return b.lines(true)
}

func (b *Braille) String() string {
	return strings.Join(b.Lines(), "\n")
}

func (b *Braille) lines(colored bool) []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		var sb strings.Builder
		for x := 0; x < b.w; x++ {
			mask := b.Mask(x, y)
			if mask == 0 {
				sb.WriteRune(' ')
				continue
			}
			glyph := string(rune(0x2800 + int(mask)))
			if colored {
				glyph = b.styles[b.last[y][x]].Render(glyph)
			}
			sb.WriteString(glyph)
		}
		out[y] = sb.String()
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
