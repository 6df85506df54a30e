package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"rovermap/internal/feed"
	"rovermap/internal/geom"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func trackExt(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".csv", ".jsonl", ".ndjson":
		return ext
	}
	return ""
}

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if ext := trackExt(name); ext != "" {
			items = append(items, fileItem{title: name, desc: ext, path: filepath.Join(m.cwd, name)})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no track files in current directory"
	}
}

// loadPath starts playing a track file into the current session. CSV tracks
// are replayed as position updates, JSON lines files as recorded events.
func (m *Model) loadPath(p string) tea.Cmd {
	m.selPath = p
	switch ext := trackExt(p); ext {
	case ".csv":
		pts, err := geom.LoadCSV(p)
		if err != nil {
			m.status = "load error: " + err.Error()
			return nil
		}
		m.status = fmt.Sprintf("replaying %s (%d positions)", filepath.Base(p), len(pts))
		return m.startFeed(feed.Replay(pts, m.opts.ReplayInterval))
	case ".jsonl", ".ndjson":
		f, err := os.Open(p)
		if err != nil {
			m.status = "load error: " + err.Error()
			return nil
		}
		m.status = "playing " + filepath.Base(p)
		return m.startFeed(closingSource{Source: feed.Lines(f), c: f})
	default:
		m.status = "unsupported file: " + filepath.Ext(p)
		return nil
	}
}
