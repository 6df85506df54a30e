package tui

import (
	"fmt"
	"path/filepath"
	"time"

	"rovermap/internal/canvas"
	"rovermap/internal/scene"
)

// snapshot renders the current session to a PNG in the snapshot directory.
func (m Model) snapshot(now time.Time) (string, error) {
	img := canvas.NewImage(m.opts.SnapshotWidth, m.opts.SnapshotHeight)
	scene.Render(img, m.state, m.opts.ImageStyle)
	name := fmt.Sprintf("rovermap-%s-%s.png", shortID(m.state.SessionID), now.Format("20060102-150405"))
	path := filepath.Join(m.opts.SnapshotDir, name)
	if err := img.SavePNG(path); err != nil {
		return "", fmt.Errorf("snapshot: %w", err)
	}
	return path, nil
}
