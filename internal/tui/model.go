package tui

import (
	"context"
	"os"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"rovermap/internal/feed"
	"rovermap/internal/ingest"
	"rovermap/internal/scene"
	"rovermap/internal/track"
)

// Options configures a Model.
type Options struct {
	Context context.Context
	// Source is the live feed; nil means the map is driven only by loaded
	// files and pasted updates.
	Source feed.Source

	MaxPositions   int
	TerminalStyle  scene.Style
	ImageStyle     scene.Style
	SnapshotWidth  int
	SnapshotHeight int
	SnapshotDir    string
	// ReplayInterval paces playback of CSV track files.
	ReplayInterval time.Duration
}

func (o *Options) defaults() {
	if o.Context == nil {
		o.Context = context.Background()
	}
	if o.TerminalStyle == (scene.Style{}) {
		o.TerminalStyle = scene.TerminalStyle()
	}
	if o.ImageStyle == (scene.Style{}) {
		o.ImageStyle = scene.DefaultStyle()
	}
	if o.SnapshotWidth <= 0 || o.SnapshotHeight <= 0 {
		o.SnapshotWidth, o.SnapshotHeight = 600, 400
	}
	if o.ReplayInterval <= 0 {
		o.ReplayInterval = 500 * time.Millisecond
	}
	if o.SnapshotDir == "" {
		o.SnapshotDir = "."
	}
}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	status string

	opts Options

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Tracking
	state  *track.State
	ingest *ingest.Ingestor
	mv     *mapView
	log    *sessionLog

	// feeds waiting to be started by Init
	pending []tea.Cmd
	feeds   int

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// discovery table
	showDiscoveries bool
	tbl             table.Model

	// hover state
	hovering      bool
	hoverCellX    int
	hoverCellY    int
	hoverHasWorld bool
	hoverX        float64
	hoverY        float64
}

func New(opts Options) Model {
	opts.defaults()
	m := Model{
		helpVisible: true,
		status:      "rovermap ready",
		opts:        opts,
		state:       track.NewState(opts.MaxPositions),
		mv:          newMapView(opts.TerminalStyle),
		log:         &sessionLog{},
	}
	m.ingest = ingest.New(m.state, m.mv, ingest.WithNotifier(m.log.discovered))
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Tracks"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = `Paste one JSON update, e.g. {"position":[3,4],"direction":"left","survivors":[[1,2]]}. Enter applies; Esc cancels.`
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// discovery table setup
	m.tbl = table.New(table.WithColumns(discoveryColumns), table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	if opts.Source != nil {
		m.pending = append(m.pending, m.startFeed(opts.Source))
	}
	return m
}

// NewWithPath preloads a track file at launch.
func NewWithPath(path string, opts Options) Model {
	m := New(opts)
	if cmd := m.loadPath(path); cmd != nil {
		m.pending = append(m.pending, cmd)
	}
	return m
}

// State exposes the tracked session, mainly for tests.
func (m Model) State() *track.State { return m.state }

func (m Model) Init() tea.Cmd { return tea.Batch(m.pending...) }
