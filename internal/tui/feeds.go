package tui

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"rovermap/internal/feed"
	"rovermap/internal/ingest"
	"rovermap/internal/monitoring"
)

type eventMsg struct {
	ev ingest.Event
	ch <-chan ingest.Event
}

type feedDoneMsg struct{ err error }

// closingSource closes c once the wrapped source returns.
type closingSource struct {
	feed.Source
	c io.Closer
}

func (s closingSource) Run(ctx context.Context, out chan<- ingest.Event) error {
	defer s.c.Close()
	return s.Source.Run(ctx, out)
}

// startFeed runs src on its own goroutine and returns the commands that
// forward its events into the Update loop.
func (m *Model) startFeed(src feed.Source) tea.Cmd {
	ch := make(chan ingest.Event)
	ctx := m.opts.Context
	m.feeds++
	run := func() tea.Msg {
		err := src.Run(ctx, ch)
		close(ch)
		return feedDoneMsg{err: err}
	}
	return tea.Batch(run, waitForEvent(ch))
}

func waitForEvent(ch <-chan ingest.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return eventMsg{ev: ev, ch: ch}
	}
}

func (m *Model) feedDone(err error) {
	m.feeds--
	switch {
	case err == nil:
		m.status = "feed finished"
	case errors.Is(err, context.Canceled):
		m.status = "feed stopped"
	default:
		m.status = "feed error: " + err.Error()
		monitoring.Logf("feed: %v", err)
	}
}
