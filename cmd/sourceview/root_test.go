package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/sourceview"
	"github.com/iw2rmb/sourceview/buffer"
	"github.com/iw2rmb/sourceview/internal/config"
)

const sample = "def f():\n    return 1\n"

// isolate keeps config lookup away from the developer's files.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func printedLines(out string) []string {
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(ansi.Strip(lines[i]), " ")
	}
	return lines
}

func TestParseSelect(t *testing.T) {
	from, to, err := parseSelect("2:5")
	require.NoError(t, err)
	require.Equal(t, 2, from)
	require.Equal(t, 5, to)

	from, to, err = parseSelect(" 7 : 3 ")
	require.NoError(t, err)
	require.Equal(t, 7, from)
	require.Equal(t, 3, to)

	for _, bad := range []string{"", "5", "a:1", "1:b", "1:2:3"} {
		_, _, err := parseSelect(bad)
		require.Truef(t, errors.Is(err, errBadFlag), "parseSelect(%q): got %v", bad, err)
	}
}

func TestParseSpan(t *testing.T) {
	span, err := parseSpan("3:4:6")
	require.NoError(t, err)
	require.Equal(t, sourceview.Span{Line: 3, Column: 4, Len: 6}, span)

	for _, bad := range []string{"", "1:2", "1:2:3:4", "x:1:1"} {
		_, err := parseSpan(bad)
		require.Truef(t, errors.Is(err, errBadFlag), "parseSpan(%q): got %v", bad, err)
	}
}

func TestReadDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.py")
	require.NoError(t, os.WriteFile(path, []byte("x = 1\r\ny = 2\r\n"), 0o600))

	name, doc, err := readDocument([]string{path}, nil)
	require.NoError(t, err)
	require.Equal(t, path, name)
	require.Equal(t, "x = 1\ny = 2\n", doc)

	name, doc, err = readDocument([]string{"-"}, strings.NewReader("pass"))
	require.NoError(t, err)
	require.Equal(t, stdinName, name)
	require.Equal(t, "pass", doc)

	_, _, err = readDocument([]string{filepath.Join(dir, "missing.py")}, nil)
	require.True(t, errors.Is(err, os.ErrNotExist), "got %v", err)
}

func TestRun_PrintFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "f.py")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	out, err := execute(t, "", "--print", "--width", "30", "--height", "3", "--select", "4:5", path)
	require.NoError(t, err)
	require.Equal(t, []string{
		"1 def f():",
		"2     return 1",
		"3",
	}, printedLines(out))
}

func TestRun_PrintStdinWithSpan(t *testing.T) {
	isolate(t)

	out, err := execute(t, sample, "--print", "--width", "30", "--height", "2", "--span", "2:4:6")
	require.NoError(t, err)
	require.Equal(t, []string{
		"1 def f():",
		"2     return 1",
	}, printedLines(out))
}

func TestRun_SelectionErrors(t *testing.T) {
	isolate(t)

	_, err := execute(t, sample, "--print", "--select", "0:999")
	require.True(t, errors.Is(err, buffer.ErrOffsetOutOfRange), "got %v", err)

	_, err = execute(t, sample, "--print", "--span", "9:0:1")
	require.True(t, errors.Is(err, buffer.ErrPosOutOfRange), "got %v", err)

	_, err = execute(t, sample, "--print", "--select", "nope")
	require.True(t, errors.Is(err, errBadFlag), "got %v", err)

	_, err = execute(t, sample, "--print", "--select", "0:1", "--span", "1:0:1")
	require.Error(t, err)
}

func TestRun_RejectsUnknownTheme(t *testing.T) {
	isolate(t)

	_, err := execute(t, sample, "--print", "--theme", "no-such-theme")
	require.True(t, errors.Is(err, config.ErrUnknownTheme), "got %v", err)
}

func TestRun_ConfigFileAndDebugLog(t *testing.T) {
	dir := isolate(t)
	cfgPath := filepath.Join(dir, "cfg.yaml")
	logPath := filepath.Join(dir, "debug.log")
	require.NoError(t, os.WriteFile(cfgPath, []byte("show_line_numbers: false\ntab_width: 2\n"), 0o600))

	out, err := execute(t, "\tpass", "--print", "--width", "20", "--height", "1",
		"--config", cfgPath, "--debug", "--log-file", logPath)
	require.NoError(t, err)
	require.Equal(t, []string{"  pass"}, printedLines(out))

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "[cli] document loaded")
}

func TestRun_Version(t *testing.T) {
	isolate(t)
	out, err := execute(t, "", "--version")
	require.NoError(t, err)
	require.Contains(t, out, sourceview.Version())
}

func TestRun_WatchFlagValidation(t *testing.T) {
	isolate(t)

	_, err := execute(t, sample, "--watch")
	require.True(t, errors.Is(err, errBadFlag), "got %v", err)

	_, err = execute(t, sample, "--watch", "--print")
	require.Error(t, err)
}

func TestStartWatcher(t *testing.T) {
	dir := t.TempDir()

	_, _, err := startWatcher(filepath.Join(dir, "missing", "a.py"))
	require.Error(t, err)

	path := filepath.Join(dir, "a.py")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))
	w, changes, err := startWatcher(path)
	require.NoError(t, err)
	require.NoError(t, w.Stop())
	_, ok := <-changes
	require.False(t, ok)
}
