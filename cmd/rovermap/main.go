package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"rovermap/internal/config"
	"rovermap/internal/feed"
	"rovermap/internal/geom"
	"rovermap/internal/monitoring"
	"rovermap/internal/sim"
	"rovermap/internal/tui"
)

var (
	configFile  = flag.String("config", "", "Path to a JSON settings file")
	serialPort  = flag.String("serial", "", "Serial port streaming JSON update lines")
	baudRate    = flag.Int("baud", feed.DefaultBaudRate, "Serial baud rate")
	listPorts   = flag.Bool("ports", false, "List available serial ports and exit")
	replayFile  = flag.String("replay", "", "CSV track to replay as position updates")
	interval    = flag.Duration("interval", 500*time.Millisecond, "Delay between replayed or simulated updates")
	simulate    = flag.Bool("simulate", false, "Drive the map with a simulated rover")
	seed        = flag.Uint64("seed", 1, "Simulator random seed")
	steps       = flag.Int("steps", 0, "Number of simulator steps (0 runs until quit)")
	readStdin   = flag.Bool("stdin", false, "Read JSON update lines from stdin")
	logFile     = flag.String("log", "", "Write logs to this file")
	snapshotDir = flag.String("snapshot-dir", ".", "Directory for PNG snapshots")
)

var errSourceConflict = errors.New("only one of -serial, -replay, -simulate and -stdin may be set")

// selectSource builds the live feed from the command line flags. It returns
// nil when no feed was requested.
func selectSource() (feed.Source, error) {
	n := 0
	for _, set := range []bool{*serialPort != "", *replayFile != "", *simulate, *readStdin} {
		if set {
			n++
		}
	}
	if n > 1 {
		return nil, errSourceConflict
	}
	switch {
	case *serialPort != "":
		return feed.Serial(*serialPort, *baudRate), nil
	case *replayFile != "":
		pts, err := geom.LoadCSV(*replayFile)
		if err != nil {
			return nil, fmt.Errorf("replay: %w", err)
		}
		return feed.Replay(pts, *interval), nil
	case *simulate:
		return feed.Simulated(sim.NewRover(*seed), *interval, *steps), nil
	case *readStdin:
		return feed.Lines(os.Stdin), nil
	}
	return nil, nil
}

func main() {
	flag.Parse()

	if *listPorts {
		ports, err := feed.Ports()
		if err != nil {
			log.Fatalf("failed to list serial ports: %v", err)
		}
		for _, p := range ports {
			fmt.Println(p)
		}
		return
	}

	if *logFile != "" {
		f, err := tea.LogToFile(*logFile, "rovermap")
		if err != nil {
			log.Fatalf("failed to open log file: %v", err)
		}
		defer f.Close()
	} else {
		// stderr would draw over the alt screen
		monitoring.SetLogger(nil)
	}

	var settings *config.Settings
	if *configFile != "" {
		var err error
		settings, err = config.Load(*configFile)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		monitoring.Logf("loaded settings from %s", *configFile)
	}

	src, err := selectSource()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w, h := settings.GetSnapshotSize()
	opts := tui.Options{
		Context:        ctx,
		Source:         src,
		MaxPositions:   settings.GetMaxPositions(),
		TerminalStyle:  settings.TerminalStyle(),
		ImageStyle:     settings.ImageStyle(),
		SnapshotWidth:  w,
		SnapshotHeight: h,
		SnapshotDir:    *snapshotDir,
		ReplayInterval: *interval,
	}

	var m tea.Model
	if flag.NArg() > 0 {
		m = tui.NewWithPath(flag.Arg(0), opts)
	} else {
		m = tui.New(opts)
	}
	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx)}
	if *readStdin {
		progOpts = append(progOpts, tea.WithInputTTY())
	}
	if _, err := tea.NewProgram(m, progOpts...).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		log.Fatal(err)
	}
}
