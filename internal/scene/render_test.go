package scene

import (
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rovermap/internal/geom"
	"rovermap/internal/track"
)

func names(ops []Op) []string {
	out := make([]string, len(ops))
	for i, op := range ops {
		out[i] = op.Name
	}
	return out
}

// fills returns the fill colours in the order Fill was called.
func fills(ops []Op) []color.Color {
	var cur color.Color
	var out []color.Color
	for _, op := range ops {
		switch op.Name {
		case "SetFillColor":
			cur = op.Color
		case "Fill":
			out = append(out, cur)
		}
	}
	return out
}

func TestRenderEmptyStateDrawsBorderOnly(t *testing.T) {
	r := NewRecorder(400, 300)
	Render(r, track.NewState(50), DefaultStyle())

	want := []string{"ClearRect", "SetStrokeColor", "SetLineWidth", "StrokeRect"}
	if diff := cmp.Diff(want, names(r.Ops)); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []float64{0, 0, 400, 300}, r.Ops[3].Args)
}

func TestRenderNilState(t *testing.T) {
	r := NewRecorder(10, 10)
	Render(r, nil, DefaultStyle())
	assert.Equal(t, 1, r.Count("StrokeRect"))
}

func TestRenderLayerOrder(t *testing.T) {
	st := track.NewState(50)
	st.RecordPoint(geom.Point{X: 0, Y: 0})
	st.RecordPoint(geom.Point{X: 3, Y: 1})
	st.RecordPoint(geom.Point{X: 4, Y: 4})
	st.RecordHeading(track.HeadingRight)
	st.ReplacePointsOfInterest([]geom.Point{{X: 1, Y: 3}, {X: 2, Y: 2}})

	style := DefaultStyle()
	r := NewRecorder(400, 300)
	Render(r, st, style)

	want := []color.Color{style.StartColor, style.SurvivorColor, style.SurvivorColor, style.RoverColor, style.GlyphColor}
	assert.Equal(t, want, fills(r.Ops))

	// path 1, start X 2, two survivor crosses 4, heading triangle 1
	assert.Equal(t, 8, r.Count("MoveTo"))
	firstStroke := -1
	firstFill := -1
	for i, op := range r.Ops {
		if op.Name == "Stroke" && firstStroke < 0 {
			firstStroke = i
		}
		if op.Name == "Fill" && firstFill < 0 {
			firstFill = i
		}
	}
	assert.Less(t, firstStroke, firstFill)
}

func TestRenderSinglePointSkipsPolyline(t *testing.T) {
	st := track.NewState(50)
	st.RecordPoint(geom.Point{X: 5, Y: 5})

	r := NewRecorder(200, 200)
	style := DefaultStyle()
	Render(r, st, style)

	// start marker X glyph is the only stroke
	assert.Equal(t, 1, r.Count("Stroke"))
	assert.Equal(t, []color.Color{style.StartColor, style.RoverColor, style.GlyphColor}, fills(r.Ops))

	// both markers sit at the centre of the surface
	var arcs [][]float64
	for _, op := range r.Ops {
		if op.Name == "Arc" {
			arcs = append(arcs, op.Args)
		}
	}
	require.Len(t, arcs, 2)
	for _, a := range arcs {
		assert.InDelta(t, 100, a[0], 1e-9)
		assert.InDelta(t, 100, a[1], 1e-9)
	}
	assert.InDelta(t, style.RoverSize/1.5, arcs[0][2], 1e-9)
	assert.InDelta(t, style.RoverSize, arcs[1][2], 1e-9)
}

func TestRenderIsIdempotent(t *testing.T) {
	st := track.NewState(50)
	st.RecordPoint(geom.Point{X: 0, Y: 0})
	st.RecordPoint(geom.Point{X: 2, Y: -1})
	st.ReplacePointsOfInterest([]geom.Point{{X: 1, Y: 1}})

	r := NewRecorder(320, 240)
	Render(r, st, DefaultStyle())
	first := append([]Op(nil), r.Ops...)
	Render(r, st, DefaultStyle())

	assert.Equal(t, 2, r.Frames())
	if diff := cmp.Diff(first, r.LastFrame()); diff != "" {
		t.Errorf("second render differs (-first +second):\n%s", diff)
	}
}

func TestRenderProjectsInsidePadding(t *testing.T) {
	st := track.NewState(50)
	for _, p := range []geom.Point{{X: -10, Y: 4}, {X: 7, Y: 9}, {X: 3, Y: -6}} {
		st.RecordPoint(p)
	}
	st.ReplacePointsOfInterest([]geom.Point{{X: 20, Y: 20}})

	style := DefaultStyle()
	r := NewRecorder(500, 400)
	Render(r, st, style)
	for _, op := range r.Ops {
		if op.Name != "Arc" {
			continue
		}
		assert.GreaterOrEqual(t, op.Args[0], style.Padding)
		assert.LessOrEqual(t, op.Args[0], 500-style.Padding)
		assert.GreaterOrEqual(t, op.Args[1], style.Padding)
		assert.LessOrEqual(t, op.Args[1], 400-style.Padding)
	}
}

func TestHeadingTriangle(t *testing.T) {
	c := geom.SurfacePoint{X: 50, Y: 50}
	const size = 12.0

	tip := func(h track.Heading) geom.SurfacePoint { return headingTriangle(c, h, size)[0] }
	assert.Equal(t, geom.SurfacePoint{X: 50, Y: 40}, tip(track.HeadingForward))
	assert.Equal(t, geom.SurfacePoint{X: 50, Y: 60}, tip(track.HeadingBackward))
	assert.Equal(t, geom.SurfacePoint{X: 40, Y: 50}, tip(track.HeadingLeft))
	assert.Equal(t, geom.SurfacePoint{X: 60, Y: 50}, tip(track.HeadingRight))

	neutral := headingTriangle(c, track.HeadingUnknown, size)
	assert.Equal(t, geom.SurfacePoint{X: 50, Y: 56}, neutral[0])
	assert.Less(t, neutral[1].Y, neutral[0].Y)
	assert.Less(t, neutral[2].Y, neutral[0].Y)

	base := headingTriangle(c, track.HeadingForward, size)
	assert.InDelta(t, size, base[1].X-base[2].X, 1e-9)
}

func TestRenderKeepsEvictedStartOnSurface(t *testing.T) {
	st := track.NewState(50)
	for i := 1; i <= 60; i++ {
		st.RecordPoint(geom.Point{X: float64(i), Y: float64(i)})
	}
	require.Len(t, st.Path, 50)
	require.Equal(t, geom.Point{X: 1, Y: 1}, *st.Start)

	style := DefaultStyle()
	r := NewRecorder(400, 300)
	m, ok := Render(r, st, style)
	require.True(t, ok)

	start := m.Project(*st.Start)
	assert.GreaterOrEqual(t, start.X, style.Padding)
	assert.LessOrEqual(t, start.X, 400-style.Padding)
	assert.GreaterOrEqual(t, start.Y, style.Padding)
	assert.LessOrEqual(t, start.Y, 300-style.Padding)

	// The start marker is the first Arc after the path stroke.
	var arcs []Op
	for _, op := range r.Ops {
		if op.Name == "Arc" {
			arcs = append(arcs, op)
		}
	}
	require.NotEmpty(t, arcs)
	assert.InDelta(t, start.X, arcs[0].Args[0], 1e-9)
	assert.InDelta(t, start.Y, arcs[0].Args[1], 1e-9)
}

func TestRenderReturnsMappingOnlyWithPath(t *testing.T) {
	_, ok := Render(NewRecorder(100, 100), track.NewState(5), DefaultStyle())
	assert.False(t, ok)

	st := track.NewState(5)
	st.RecordPoint(geom.Point{X: 2, Y: 3})
	m, ok := Render(NewRecorder(100, 100), st, DefaultStyle())
	require.True(t, ok)
	assert.Equal(t, geom.ComputeMapping(st.MappingPoints(), 100, 100, DefaultStyle().Padding), m)
}
