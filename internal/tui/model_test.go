package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rovermap/internal/feed"
	"rovermap/internal/ingest"
)

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	nm, cmd := m.Update(msg)
	out, ok := nm.(Model)
	require.True(t, ok)
	return out, cmd
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sized(t *testing.T, opts Options) Model {
	t.Helper()
	m, _ := update(t, New(opts), tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func position(x, y float64) eventMsg {
	return eventMsg{ev: ingest.Event{Name: ingest.EventPosition, Update: ingest.Update{Position: []float64{x, y}}}}
}

func TestViewEmptyBeforeResize(t *testing.T) {
	assert.Equal(t, "", New(Options{}).View())
}

func TestEventsRenderMap(t *testing.T) {
	m := sized(t, Options{})
	assert.Contains(t, m.View(), shortID(m.state.SessionID))

	m, cmd := update(t, m, position(0, 0))
	assert.NotNil(t, cmd, "event handling re-arms the feed reader")
	m, _ = update(t, m, position(5, 3))

	assert.Len(t, m.state.Path, 2)
	assert.NotEmpty(t, m.mv.frame)
	view := m.View()
	assert.Contains(t, view, "path 2/50")
	assert.NotContains(t, view, "waiting for position updates")
}

func TestDiscoveriesReachStatusAndTable(t *testing.T) {
	m := sized(t, Options{})
	m, _ = update(t, m, key("a"))
	assert.True(t, m.showDiscoveries)

	ev := eventMsg{ev: ingest.Event{Name: ingest.EventMap, Update: ingest.Update{
		Position:  []float64{1, 1},
		Survivors: [][]float64{{2, 3}, {4, 5}},
	}}}
	m, _ = update(t, m, ev)

	require.Len(t, m.log.discoveries, 2)
	assert.Contains(t, m.status, "survivor found at X=4, Y=5")
	rows := m.tbl.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"2", "4", "5"}, []string(rows[1][:3]))

	// Same list again: nothing new.
	m, _ = update(t, m, ev)
	assert.Len(t, m.log.discoveries, 2)
}

func TestResetKey(t *testing.T) {
	m := sized(t, Options{})
	m, _ = update(t, m, position(1, 2))
	before := m.state.SessionID

	m, _ = update(t, m, key("r"))
	assert.Empty(t, m.state.Path)
	assert.Nil(t, m.state.Current)
	assert.NotEqual(t, before, m.state.SessionID)
	assert.Empty(t, m.log.discoveries)
	assert.Contains(t, m.status, "session reset")
	assert.Empty(t, m.mv.frame)
	assert.Contains(t, m.View(), "waiting for position updates")
}

func TestPasteAppliesUpdate(t *testing.T) {
	m := sized(t, Options{})
	m, _ = update(t, m, key("p"))
	require.True(t, m.pasteMode)

	m.ta.SetValue(`{"position":[3,4],"direction":"LEFT"}`)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.pasteMode)
	require.NotNil(t, m.state.Current)
	assert.Equal(t, 3.0, m.state.Current.X)
	assert.Equal(t, "left", m.state.Heading.String())
	assert.Equal(t, "applied map_update", m.status)
}

func TestPasteRejectsBadJSON(t *testing.T) {
	m := sized(t, Options{})
	m, _ = update(t, m, key("p"))
	m.ta.SetValue(`{nope`)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.pasteMode)
	assert.True(t, strings.HasPrefix(m.status, "paste error"))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.pasteMode)
}

func TestHoverShowsWorldCoordinates(t *testing.T) {
	m := sized(t, Options{})
	m, _ = update(t, m, tea.MouseMsg{X: 40, Y: 10, Action: tea.MouseActionMotion})
	assert.True(t, m.hovering)
	assert.False(t, m.hoverHasWorld, "no mapping before the first position")

	m, _ = update(t, m, position(0, 0))
	m, _ = update(t, m, position(10, 10))
	m, _ = update(t, m, tea.MouseMsg{X: 40, Y: 10, Action: tea.MouseActionMotion})
	require.True(t, m.hoverHasWorld)
	assert.InDelta(t, 5, m.hoverX, 1.5)
	assert.InDelta(t, 5, m.hoverY, 1.5)
	assert.Contains(t, m.View(), "x=")

	m, _ = update(t, m, tea.MouseMsg{X: 40, Y: 0, Action: tea.MouseActionMotion})
	assert.False(t, m.hovering)
}

func TestSnapshotKeyWritesPNG(t *testing.T) {
	dir := t.TempDir()
	m := sized(t, Options{SnapshotDir: dir, SnapshotWidth: 120, SnapshotHeight: 80})
	m, _ = update(t, m, position(0, 0))
	m, _ = update(t, m, position(2, 1))
	m, _ = update(t, m, key("s"))

	assert.Contains(t, m.status, "snapshot saved")
	matches, err := filepath.Glob(filepath.Join(dir, "rovermap-*.png"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestLoadPath(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "track.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("x,y\n0,0\n1,1\n"), 0o644))
	badPath := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(badPath, []byte("a,b\n1,2\n"), 0o644))

	m := New(Options{})
	assert.NotNil(t, m.loadPath(csvPath))
	assert.Contains(t, m.status, "replaying track.csv (2 positions)")
	assert.Equal(t, 1, m.feeds)

	assert.Nil(t, m.loadPath(badPath))
	assert.Contains(t, m.status, "load error")

	assert.Nil(t, m.loadPath(filepath.Join(dir, "notes.txt")))
	assert.Contains(t, m.status, "unsupported file")
}

func TestRefreshDirListsTrackFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.jsonl", "a.csv", "readme.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	m := New(Options{})
	m.cwd = dir
	m.refreshDir()
	require.Len(t, m.items, 2)
	assert.Equal(t, "a.csv", m.items[0].(fileItem).Title())
	assert.Equal(t, "b.jsonl", m.items[1].(fileItem).Title())
}

func TestFeedDoneStatus(t *testing.T) {
	m := New(Options{})
	m.feeds = 1
	m, _ = update(t, m, feedDoneMsg{err: context.Canceled})
	assert.Equal(t, "feed stopped", m.status)
	m, _ = update(t, m, feedDoneMsg{err: errors.New("port gone")})
	assert.Equal(t, "feed error: port gone", m.status)
	m, _ = update(t, m, feedDoneMsg{})
	assert.Equal(t, "feed finished", m.status)
}

func TestWaitForEvent(t *testing.T) {
	ch := make(chan ingest.Event, 1)
	ch <- ingest.Event{Name: ingest.EventHeading}
	msg := waitForEvent(ch)()
	ev, ok := msg.(eventMsg)
	require.True(t, ok)
	assert.Equal(t, ingest.EventHeading, ev.ev.Name)

	close(ch)
	assert.Nil(t, waitForEvent(ch)())
}

type closeCounter struct{ n int }

func (c *closeCounter) Close() error { c.n++; return nil }

func TestClosingSourceClosesAfterRun(t *testing.T) {
	c := &closeCounter{}
	src := closingSource{Source: feed.Lines(strings.NewReader(`{"position":[1,1]}` + "\n")), c: c}
	out := make(chan ingest.Event, 4)
	require.NoError(t, src.Run(context.Background(), out))
	assert.Equal(t, 1, c.n)
	assert.Len(t, out, 1)
}
