package tui

import (
	"path/filepath"
	"strings"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"rovermap/internal/ingest"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeMap()
	case eventMsg:
		m.ingest.Handle(msg.ev)
		m.statusFromLog()
		if m.showDiscoveries {
			m.refreshDiscoveries()
		}
		return m, waitForEvent(msg.ch)
	case feedDoneMsg:
		m.feedDone(msg.err)
		return m, nil
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
			}
			m.resizeMap()
		case "p":
			m.pasteMode = true
			m.ta.SetValue("")
			m.status = "paste mode"
			m.ta.Focus()
		case "h":
			m.helpVisible = !m.helpVisible
		case "a":
			m.showDiscoveries = !m.showDiscoveries
			if m.showDiscoveries {
				m.refreshDiscoveries()
				if len(m.log.discoveries) == 0 {
					m.status = "no survivors discovered yet"
				}
			}
		case "r":
			m.ingest.Reset()
			m.log.reset()
			m.refreshDiscoveries()
			m.status = "session reset: " + m.state.SessionID
		case "s":
			path, err := m.snapshot(time.Now())
			if err != nil {
				m.status = err.Error()
			} else {
				m.status = "snapshot saved: " + filepath.Base(path)
			}
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					return m, m.loadPath(it.path)
				}
			}
		}
	case tea.MouseMsg:
		lay := m.layout()
		cx, cy := msg.X, msg.Y
		if cx >= lay.mapX && cx < lay.mapX+lay.mapW && cy >= lay.mapY && cy < lay.mapY+lay.mapH {
			m.hovering = true
			m.hoverCellX = cx - lay.mapX
			m.hoverCellY = cy - lay.mapY
			if p, ok := m.mv.worldAt(m.hoverCellX, m.hoverCellY); ok {
				m.hoverHasWorld = true
				m.hoverX, m.hoverY = p.X, p.Y
			} else {
				m.hoverHasWorld = false
			}
		} else {
			m.hovering = false
			m.hoverHasWorld = false
		}
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	if m.showDiscoveries {
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		m.status = "view mode"
		return m, nil
	case "enter":
		w := strings.TrimSpace(m.ta.Value())
		if w == "" {
			m.status = "paste: empty"
			return m, nil
		}
		ev, err := ingest.DecodeEvent([]byte(w))
		if err != nil {
			m.status = "paste error: " + err.Error()
			return m, nil
		}
		m.ingest.Handle(ev)
		m.pasteMode = false
		m.ta.Blur()
		m.status = "applied " + ev.Name
		m.statusFromLog()
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

// statusFromLog surfaces the latest discovery message once.
func (m *Model) statusFromLog() {
	if m.log.last != "" {
		m.status = m.log.last
		m.log.last = ""
	}
}

// resizeMap fits the braille canvas to the map area and redraws.
func (m *Model) resizeMap() {
	lay := m.layout()
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, lay.contentH-2)
	}
	if m.width == 0 || m.height == 0 {
		return
	}
	if m.mv.resize(lay.mapW, lay.mapH) || m.mv.frame == "" {
		m.mv.Render(m.state)
	}
}
