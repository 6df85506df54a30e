package scene

import "image/color"

// Style carries the drawing constants for a scene.
type Style struct {
	RoverSize    float64
	SurvivorSize float64
	Padding      float64

	PathWidth   float64
	BorderWidth float64
	GlyphWidth  float64

	PathColor     color.Color
	RoverColor    color.Color
	SurvivorColor color.Color
	StartColor    color.Color
	GlyphColor    color.Color
	BorderColor   color.Color
}

var (
	Green  = color.RGBA{R: 0x00, G: 0x80, B: 0x00, A: 0xff}
	Blue   = color.RGBA{R: 0x00, G: 0x00, B: 0xff, A: 0xff}
	Red    = color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}
	Orange = color.RGBA{R: 0xff, G: 0xa5, B: 0x00, A: 0xff}
	White  = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Silver = color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
)

// DefaultStyle matches the dashboard canvas: 10px rover, 8px survivors, 30px padding.
func DefaultStyle() Style {
	return Style{
		RoverSize:     10,
		SurvivorSize:  8,
		Padding:       30,
		PathWidth:     2,
		BorderWidth:   1,
		GlyphWidth:    2,
		PathColor:     Green,
		RoverColor:    Blue,
		SurvivorColor: Red,
		StartColor:    Orange,
		GlyphColor:    White,
		BorderColor:   Silver,
	}
}

// TerminalStyle shrinks markers for a braille canvas, where one unit is a
// single dot and a terminal cell is 2x4 dots.
func TerminalStyle() Style {
	s := DefaultStyle()
	s.RoverSize = 4
	s.SurvivorSize = 3
	s.Padding = 6
	s.PathWidth = 1
	s.GlyphWidth = 1
	return s
}
