package scene

import "image/color"

// Op is one recorded Surface call.
type Op struct {
	Name  string
	Args  []float64
	Color color.Color
}

// Recorder is a Surface that keeps a log of every call instead of drawing.
type Recorder struct {
	W, H float64
	Ops  []Op
}

func NewRecorder(w, h float64) *Recorder {
	return &Recorder{W: w, H: h}
}

func (r *Recorder) record(name string, args ...float64) {
	r.Ops = append(r.Ops, Op{Name: name, Args: args})
}

// Frames returns the number of scenes drawn so far; every Render starts with ClearRect.
func (r *Recorder) Frames() int {
	return r.Count("ClearRect")
}

// Count reports how many times the named call was recorded.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Name == name {
			n++
		}
	}
	return n
}

// LastFrame returns the calls recorded since the most recent ClearRect.
func (r *Recorder) LastFrame() []Op {
	for i := len(r.Ops) - 1; i >= 0; i-- {
		if r.Ops[i].Name == "ClearRect" {
			return r.Ops[i:]
		}
	}
	return nil
}

func (r *Recorder) Width() float64  { return r.W }
func (r *Recorder) Height() float64 { return r.H }

func (r *Recorder) ClearRect(x, y, w, h float64)  { r.record("ClearRect", x, y, w, h) }
func (r *Recorder) StrokeRect(x, y, w, h float64) { r.record("StrokeRect", x, y, w, h) }
func (r *Recorder) BeginPath()                    { r.record("BeginPath") }
func (r *Recorder) MoveTo(x, y float64)           { r.record("MoveTo", x, y) }
func (r *Recorder) LineTo(x, y float64)           { r.record("LineTo", x, y) }
func (r *Recorder) Arc(x, y, rad, start, end float64) {
	r.record("Arc", x, y, rad, start, end)
}
func (r *Recorder) ClosePath()             { r.record("ClosePath") }
func (r *Recorder) Stroke()                { r.record("Stroke") }
func (r *Recorder) Fill()                  { r.record("Fill") }
func (r *Recorder) SetLineWidth(w float64) { r.record("SetLineWidth", w) }

func (r *Recorder) SetStrokeColor(c color.Color) {
	r.Ops = append(r.Ops, Op{Name: "SetStrokeColor", Color: c})
}

func (r *Recorder) SetFillColor(c color.Color) {
	r.Ops = append(r.Ops, Op{Name: "SetFillColor", Color: c})
}
