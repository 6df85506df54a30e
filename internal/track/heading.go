package track

import "strings"

// Heading is the rover's facing direction at its current position.
type Heading int

const (
	HeadingUnknown Heading = iota
	HeadingForward
	HeadingBackward
	HeadingLeft
	HeadingRight
)

// ParseHeading maps a direction name to a Heading. Unrecognised names yield HeadingUnknown.
func ParseHeading(s string) Heading {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "forward":
		return HeadingForward
	case "backward":
		return HeadingBackward
	case "left":
		return HeadingLeft
	case "right":
		return HeadingRight
	}
	return HeadingUnknown
}

func (h Heading) String() string {
	switch h {
	case HeadingForward:
		return "forward"
	case HeadingBackward:
		return "backward"
	case HeadingLeft:
		return "left"
	case HeadingRight:
		return "right"
	}
	return "unknown"
}
