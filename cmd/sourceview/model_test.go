package main

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/sourceview"
	"github.com/iw2rmb/sourceview/editor"
)

type memClipboard struct{ s string }

func (c *memClipboard) ReadText() (string, error) { return c.s, nil }
func (c *memClipboard) WriteText(s string) error  { c.s = s; return nil }

func TestModel_ResizeReservesStatusAndHelpLines(t *testing.T) {
	m := newModel(sourceview.New(sample, sourceview.WithClipboard(nil)), "f.py")

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 5})
	m = next.(model)
	require.Equal(t, 3, m.view.ViewportState().VisibleRows)

	lines := strings.Split(m.View(), "\n")
	require.Len(t, lines, 5)
	require.Contains(t, ansi.Strip(lines[3]), "f.py  Ln 1, Col 1")
	require.Contains(t, ansi.Strip(lines[4]), "select all")
}

func TestModel_QuestionMarkTogglesHelpOverlay(t *testing.T) {
	m := newModel(sourceview.New(sample, sourceview.WithClipboard(nil)), "f.py")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 12})
	m = next.(model)
	require.Equal(t, 10, m.view.ViewportState().VisibleRows)
	require.NotContains(t, ansi.Strip(m.View()), "doc start")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	m = next.(model)
	require.True(t, m.help.ShowAll)
	require.Equal(t, 10, m.view.ViewportState().VisibleRows)
	view := ansi.Strip(m.View())
	require.Contains(t, view, "doc start")
	require.Len(t, strings.Split(view, "\n"), 12)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	m = next.(model)
	require.False(t, m.help.ShowAll)
	require.NotContains(t, ansi.Strip(m.View()), "doc start")
}

func TestModel_StatusShowsSelection(t *testing.T) {
	view := sourceview.New(sample, sourceview.WithClipboard(nil))
	require.NoError(t, sourceview.SetSelection(&view, 0, 3))
	m := newModel(view, "f.py")

	status := ansi.Strip(m.status())
	require.Contains(t, status, "Ln 1, Col 4")
	require.Contains(t, status, "[0, 3)")
	require.Contains(t, status, "read-only")
}

func TestModel_QuitKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlQ},
		{Type: tea.KeyCtrlC},
	} {
		m := newModel(sourceview.New(sample, sourceview.WithClipboard(nil)), "f.py")
		_, cmd := m.Update(msg)
		require.NotNil(t, cmd, "key %q", msg.String())
		_, ok := cmd().(tea.QuitMsg)
		require.True(t, ok, "key %q did not quit", msg.String())
	}
}

func TestModel_CtrlCCopiesSelection(t *testing.T) {
	clip := &memClipboard{}
	view := sourceview.New(sample, sourceview.WithClipboard(clip))
	require.NoError(t, sourceview.SetSelection(&view, 4, 5))

	tm := teatest.NewTestModel(t, newModel(view, "f.py"), teatest.WithInitialTermSize(40, 6))
	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	fm, ok := tm.FinalModel(t, teatest.WithFinalTimeout(2*time.Second)).(model)
	require.True(t, ok)
	require.Equal(t, "f", clip.s)
	require.Equal(t, sample, fm.view.Text())
	require.Equal(t, 4, fm.view.SelectionRange().From())
}

func TestModel_StatusTruncatesToWidth(t *testing.T) {
	m := newModel(sourceview.New(sample, sourceview.WithClipboard(nil)), "a_rather_long_name.py")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 16, Height: 6})
	m = next.(model)

	status := ansi.Strip(m.status())
	require.LessOrEqual(t, ansi.StringWidth(status), 16)
	require.True(t, strings.HasSuffix(status, "…"), "status %q", status)
}

func newReloadModel(t *testing.T, load func() (string, error)) (model, chan struct{}) {
	t.Helper()
	changes := make(chan struct{}, 1)
	build := func(doc string) editor.Model {
		return sourceview.New(doc, sourceview.WithClipboard(nil))
	}
	m := newModel(build(sample), "f.py")
	m.reload = &reloader{changes: changes, load: load, build: build}
	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 8})
	return next.(model), changes
}

func TestModel_ReloadKeepsSelection(t *testing.T) {
	m, changes := newReloadModel(t, func() (string, error) {
		return "def g():\n    return 2\n", nil
	})
	require.NoError(t, sourceview.SetSelection(&m.view, 4, 5))

	next, cmd := m.Update(fileChangedMsg{})
	m = next.(model)
	require.Equal(t, "def g():\n    return 2\n", m.view.Text())
	require.Equal(t, editor.SelectionRange{Anchor: 4, Head: 5}, m.view.SelectionRange())
	require.Equal(t, 6, m.view.ViewportState().VisibleRows)
	require.Contains(t, ansi.Strip(m.status()), "reloaded")

	require.NotNil(t, cmd)
	changes <- struct{}{}
	require.Equal(t, fileChangedMsg{}, cmd())
}

func TestModel_ReloadDropsSelectionPastEnd(t *testing.T) {
	m, _ := newReloadModel(t, func() (string, error) { return "x\n", nil })
	require.NoError(t, sourceview.SetSelection(&m.view, 10, 12))

	next, _ := m.Update(fileChangedMsg{})
	m = next.(model)
	require.Equal(t, "x\n", m.view.Text())
	require.True(t, m.view.SelectionRange().Empty())
}

func TestModel_ReloadFailureKeepsView(t *testing.T) {
	m, _ := newReloadModel(t, func() (string, error) { return "", errors.New("gone") })

	next, _ := m.Update(fileChangedMsg{})
	m = next.(model)
	require.Equal(t, sample, m.view.Text())
	require.Contains(t, ansi.Strip(m.status()), "reload failed")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.NotContains(t, ansi.Strip(next.(model).status()), "reload failed")
}

func TestModel_ReloadStopsWhenChannelCloses(t *testing.T) {
	m, changes := newReloadModel(t, func() (string, error) { return sample, nil })
	close(changes)
	require.Nil(t, m.Init()())
}
