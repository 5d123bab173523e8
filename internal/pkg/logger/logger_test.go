package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONToStdout(t *testing.T) {
	var buf bytes.Buffer
	log, closer := New(Options{App: "attendance", Env: "test", Level: "info", Format: "json"}, &buf)
	defer closer.Close()

	log.Debug("hidden")
	log.Info("sync finished", "applied", 3)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "attendance", entry["app"])
	assert.EqualValues(t, 3, entry["applied"])
}

func TestNew_RotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attendance.log")
	var buf bytes.Buffer
	log, closer := New(Options{Level: "debug", Format: "text", File: path, MaxSize: 1}, &buf)

	log.Debug("written twice")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written twice")
	assert.Contains(t, buf.String(), "written twice")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("anything"))
}
