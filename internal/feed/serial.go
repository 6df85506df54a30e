package feed

import (
	"context"
	"fmt"
	"io"

	"go.bug.st/serial"

	"rovermap/internal/ingest"
	"rovermap/internal/monitoring"
)

// DefaultBaudRate matches the rover telemetry link.
const DefaultBaudRate = 115200

// PortOpener opens a serial device. It exists so tests can run without hardware.
type PortOpener func(path string, mode *serial.Mode) (io.ReadCloser, error)

func openSerial(path string, mode *serial.Mode) (io.ReadCloser, error) {
	return serial.Open(path, mode)
}

// SerialSource reads JSON events line by line from a serial port.
type SerialSource struct {
	path string
	mode *serial.Mode
	open PortOpener
}

func Serial(path string, baud int) *SerialSource {
	if baud <= 0 {
		baud = DefaultBaudRate
	}
	return &SerialSource{
		path: path,
		mode: &serial.Mode{BaudRate: baud, DataBits: 8, Parity: serial.NoParity, StopBits: serial.OneStopBit},
		open: openSerial,
	}
}

func (s *SerialSource) Run(ctx context.Context, out chan<- ingest.Event) error {
	port, err := s.open(s.path, s.mode)
	if err != nil {
		return fmt.Errorf("open serial port %s: %w", s.path, err)
	}
	defer port.Close()
	monitoring.Logf("feed: reading %s at %d baud", s.path, s.mode.BaudRate)
	return readLines(ctx, port, out)
}

// Ports lists the serial devices present on this machine.
func Ports() ([]string, error) {
	return serial.GetPortsList()
}
