// Package config loads display settings for the rover map.
package config

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	colorful "github.com/lucasb-eyer/go-colorful"

	"rovermap/internal/scene"
	"rovermap/internal/track"
)

// Settings is the JSON settings file. Omitted fields keep their defaults, so
// partial files are safe. Sizes apply to snapshot images; colours apply to
// both the terminal and snapshots.
type Settings struct {
	RoverSize    *float64 `json:"rover_size,omitempty"`
	SurvivorSize *float64 `json:"survivor_size,omitempty"`
	Padding      *float64 `json:"padding,omitempty"`
	MaxPositions *int     `json:"max_positions,omitempty"`

	PathColor     *string `json:"path_color,omitempty"`
	RoverColor    *string `json:"rover_color,omitempty"`
	SurvivorColor *string `json:"survivor_color,omitempty"`
	StartColor    *string `json:"start_color,omitempty"`
	GlyphColor    *string `json:"glyph_color,omitempty"`
	BorderColor   *string `json:"border_color,omitempty"`

	SnapshotWidth  *int `json:"snapshot_width,omitempty"`
	SnapshotHeight *int `json:"snapshot_height,omitempty"`
}

const (
	defaultSnapshotWidth  = 600
	defaultSnapshotHeight = 400
	maxFileSize           = 1 << 20
)

func ptrFloat64(v float64) *float64 { return &v }
func ptrInt(v int) *int             { return &v }
func ptrString(v string) *string    { return &v }

// Load reads Settings from a .json file and validates them.
func Load(path string) (*Settings, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}
	fi, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fi.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fi.Size(), maxFileSize)
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	s := &Settings{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return s, nil
}

// Validate checks the values that are set.
func (s *Settings) Validate() error {
	for name, v := range map[string]*float64{
		"rover_size":    s.RoverSize,
		"survivor_size": s.SurvivorSize,
	} {
		if v != nil && *v <= 0 {
			return fmt.Errorf("%s must be positive, got %g", name, *v)
		}
	}
	if s.Padding != nil && *s.Padding < 0 {
		return fmt.Errorf("padding must be non-negative, got %g", *s.Padding)
	}
	if s.MaxPositions != nil && *s.MaxPositions < 1 {
		return fmt.Errorf("max_positions must be at least 1, got %d", *s.MaxPositions)
	}
	for name, v := range map[string]*int{
		"snapshot_width":  s.SnapshotWidth,
		"snapshot_height": s.SnapshotHeight,
	} {
		if v != nil && *v < 16 {
			return fmt.Errorf("%s must be at least 16, got %d", name, *v)
		}
	}
	for name, v := range s.colors() {
		if v == nil {
			continue
		}
		if _, err := colorful.Hex(*v); err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, *v, err)
		}
	}
	if s.Padding != nil {
		w, h := s.GetSnapshotSize()
		if 2**s.Padding >= float64(min(w, h)) {
			return fmt.Errorf("padding %g leaves no room in a %dx%d snapshot", *s.Padding, w, h)
		}
	}
	return nil
}

func (s *Settings) colors() map[string]*string {
	return map[string]*string{
		"path_color":     s.PathColor,
		"rover_color":    s.RoverColor,
		"survivor_color": s.SurvivorColor,
		"start_color":    s.StartColor,
		"glyph_color":    s.GlyphColor,
		"border_color":   s.BorderColor,
	}
}

// GetMaxPositions returns the path bound or the default.
func (s *Settings) GetMaxPositions() int {
	if s == nil || s.MaxPositions == nil {
		return track.DefaultMaxPositions
	}
	return *s.MaxPositions
}

// GetSnapshotSize returns the PNG snapshot size in pixels.
func (s *Settings) GetSnapshotSize() (int, int) {
	w, h := defaultSnapshotWidth, defaultSnapshotHeight
	if s == nil {
		return w, h
	}
	if s.SnapshotWidth != nil {
		w = *s.SnapshotWidth
	}
	if s.SnapshotHeight != nil {
		h = *s.SnapshotHeight
	}
	return w, h
}

// ImageStyle returns the snapshot style with all overrides applied.
func (s *Settings) ImageStyle() scene.Style {
	st := s.applyColors(scene.DefaultStyle())
	if s == nil {
		return st
	}
	if s.RoverSize != nil {
		st.RoverSize = *s.RoverSize
	}
	if s.SurvivorSize != nil {
		st.SurvivorSize = *s.SurvivorSize
	}
	if s.Padding != nil {
		st.Padding = *s.Padding
	}
	return st
}

// TerminalStyle returns the braille style with colour overrides applied.
func (s *Settings) TerminalStyle() scene.Style {
	return s.applyColors(scene.TerminalStyle())
}

func (s *Settings) applyColors(st scene.Style) scene.Style {
	if s == nil {
		return st
	}
	set := func(dst *color.Color, v *string) {
		if v == nil {
			return
		}
		if c, err := colorful.Hex(*v); err == nil {
			*dst = c
		}
	}
	set(&st.PathColor, s.PathColor)
	set(&st.RoverColor, s.RoverColor)
	set(&st.SurvivorColor, s.SurvivorColor)
	set(&st.StartColor, s.StartColor)
	set(&st.GlyphColor, s.GlyphColor)
	set(&st.BorderColor, s.BorderColor)
	return st
}
