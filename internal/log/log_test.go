package log

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	ts := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

	got := format(ts, LevelWarn, CatEditor, "edit rejected", []any{"key", "a", "row", 3})
	require.Equal(t, "2026-01-02T15:04:05 [WARN] [editor] edit rejected key=a row=3\n", got)

	got = format(ts, LevelInfo, CatCLI, "odd", []any{"orphan"})
	require.Equal(t, "2026-01-02T15:04:05 [INFO] [cli] odd orphan=<missing>\n", got)
}

func TestDisabledByDefault(t *testing.T) {
	InitWriter(nil)
	require.False(t, Enabled())
	// Must not panic without a destination.
	Error(CatEditor, "dropped")
}

func TestInitWriter_MinLevel(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(func() { InitWriter(nil) })

	SetMinLevel(LevelWarn)
	Debug(CatHighlight, "skipped")
	ErrorErr(CatHighlight, "tokenise failed", errors.New("boom"))

	out := buf.String()
	require.NotContains(t, out, "skipped")
	require.Contains(t, out, "[ERROR] [highlight] tokenise failed error=boom")
}

func TestInit_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	closeFn, err := Init(path)
	require.NoError(t, err)

	Info(CatConfig, "loaded", "theme", "monokai")
	closeFn()
	require.False(t, Enabled())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "[INFO] [config] loaded theme=monokai")
}

func TestLevelString(t *testing.T) {
	require.Equal(t, "DEBUG", LevelDebug.String())
	require.Equal(t, "UNKNOWN", Level(42).String())
}
