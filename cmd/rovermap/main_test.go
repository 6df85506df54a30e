package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rovermap/internal/feed"
)

func resetFlags(t *testing.T) {
	t.Helper()
	saved := struct {
		serial, replay string
		sim, stdin     bool
	}{*serialPort, *replayFile, *simulate, *readStdin}
	t.Cleanup(func() {
		*serialPort, *replayFile, *simulate, *readStdin = saved.serial, saved.replay, saved.sim, saved.stdin
	})
	*serialPort, *replayFile, *simulate, *readStdin = "", "", false, false
}

func TestFlagDefaults(t *testing.T) {
	assert.Equal(t, feed.DefaultBaudRate, *baudRate)
	assert.Equal(t, 500*time.Millisecond, *interval)
	assert.Equal(t, ".", *snapshotDir)
	assert.Equal(t, 0, *steps)
}

func TestSelectSourceNone(t *testing.T) {
	resetFlags(t)
	src, err := selectSource()
	require.NoError(t, err)
	assert.Nil(t, src)
}

func TestSelectSourceConflict(t *testing.T) {
	resetFlags(t)
	*simulate = true
	*readStdin = true
	_, err := selectSource()
	assert.ErrorIs(t, err, errSourceConflict)
}

func TestSelectSourceKinds(t *testing.T) {
	resetFlags(t)
	*simulate = true
	src, err := selectSource()
	require.NoError(t, err)
	assert.IsType(t, &feed.SimSource{}, src)

	resetFlags(t)
	*serialPort = "/dev/null"
	src, err = selectSource()
	require.NoError(t, err)
	assert.IsType(t, &feed.SerialSource{}, src)
}

func TestSelectSourceReplay(t *testing.T) {
	resetFlags(t)
	path := filepath.Join(t.TempDir(), "track.csv")
	require.NoError(t, os.WriteFile(path, []byte("x,y\n0,0\n1,2\n"), 0o644))
	*replayFile = path
	src, err := selectSource()
	require.NoError(t, err)
	assert.IsType(t, &feed.ReplaySource{}, src)

	*replayFile = filepath.Join(t.TempDir(), "missing.csv")
	_, err = selectSource()
	assert.Error(t, err)
}
