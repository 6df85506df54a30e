// Package feed delivers decoded rover events from a transport. Sources run
// on their own goroutine and only ever send on the output channel; they
// never touch track state.
package feed

import (
	"bufio"
	"context"
	"io"
	"time"

	"rovermap/internal/geom"
	"rovermap/internal/ingest"
	"rovermap/internal/monitoring"
	"rovermap/internal/sim"
)

// maxLineSize bounds one JSON line; large survivor lists exceed bufio's default.
const maxLineSize = 2 << 20

// Source produces events until it is exhausted, fails or ctx is cancelled.
type Source interface {
	Run(ctx context.Context, out chan<- ingest.Event) error
}

func send(ctx context.Context, out chan<- ingest.Event, ev ingest.Event) error {
	select {
	case out <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// wait blocks for d, returning early with ctx's error on cancellation.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LineSource decodes one JSON event per line.
type LineSource struct {
	r io.Reader
}

// Lines reads events from r, for example stdin or a recorded .jsonl file.
func Lines(r io.Reader) *LineSource {
	return &LineSource{r: r}
}

func (s *LineSource) Run(ctx context.Context, out chan<- ingest.Event) error {
	return readLines(ctx, s.r, out)
}

// readLines scans r on a helper goroutine so that a blocking Read does not
// hold up cancellation. Malformed lines are logged and skipped.
func readLines(ctx context.Context, r io.Reader, out chan<- ingest.Event) error {
	scan := bufio.NewScanner(r)
	scan.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineChan := make(chan []byte)
	scanErrChan := make(chan error, 1)

	go func() {
		defer close(lineChan)
		for scan.Scan() {
			line := append([]byte(nil), scan.Bytes()...)
			select {
			case lineChan <- line:
			case <-ctx.Done():
				return
			}
		}
		if err := scan.Err(); err != nil {
			scanErrChan <- err
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lineChan:
			if !ok {
				select {
				case err := <-scanErrChan:
					return err
				default:
					return nil
				}
			}
			if len(line) == 0 {
				continue
			}
			ev, err := ingest.DecodeEvent(line)
			if err != nil {
				monitoring.Logf("feed: skipping line: %v", err)
				continue
			}
			if err := send(ctx, out, ev); err != nil {
				return err
			}
		}
	}
}

// ReplaySource plays back a recorded track as position updates.
type ReplaySource struct {
	points   []geom.Point
	interval time.Duration
}

func Replay(points []geom.Point, interval time.Duration) *ReplaySource {
	return &ReplaySource{points: points, interval: interval}
}

func (s *ReplaySource) Run(ctx context.Context, out chan<- ingest.Event) error {
	for i, p := range s.points {
		if i > 0 {
			if err := wait(ctx, s.interval); err != nil {
				return err
			}
		}
		ev := ingest.Event{
			Name:   ingest.EventPosition,
			Update: ingest.Update{Position: []float64{p.X, p.Y}},
		}
		if err := send(ctx, out, ev); err != nil {
			return err
		}
	}
	return nil
}

// SimSource publishes combined updates from a simulated rover.
type SimSource struct {
	rover    *sim.Rover
	interval time.Duration
	steps    int
}

// Simulated steps rover every interval. steps <= 0 runs until cancelled.
func Simulated(rover *sim.Rover, interval time.Duration, steps int) *SimSource {
	return &SimSource{rover: rover, interval: interval, steps: steps}
}

func (s *SimSource) Run(ctx context.Context, out chan<- ingest.Event) error {
	for i := 0; s.steps <= 0 || i < s.steps; i++ {
		if i > 0 {
			if err := wait(ctx, s.interval); err != nil {
				return err
			}
		}
		ev := ingest.Event{Name: ingest.EventMap, Update: s.rover.Step()}
		if err := send(ctx, out, ev); err != nil {
			return err
		}
	}
	return nil
}
