package editor

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/sourceview/buffer"
	"github.com/iw2rmb/sourceview/internal/log"
)

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	// Paste events insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		m.edit("paste", func() error { return m.buf.InsertText(string(msg.Runes)) })
		return m, nil
	}

	km := m.cfg.KeyMap
	move := func(unit buffer.MoveUnit, dir buffer.MoveDir, extend bool) {
		m.buf.Move(buffer.Move{Unit: unit, Dir: dir, Extend: extend})
	}

	switch {
	case key.Matches(msg, km.Left):
		move(buffer.MoveGrapheme, buffer.DirLeft, false)
	case key.Matches(msg, km.Right):
		move(buffer.MoveGrapheme, buffer.DirRight, false)
	case key.Matches(msg, km.Up):
		move(buffer.MoveLine, buffer.DirUp, false)
	case key.Matches(msg, km.Down):
		move(buffer.MoveLine, buffer.DirDown, false)

	case key.Matches(msg, km.ShiftLeft):
		move(buffer.MoveGrapheme, buffer.DirLeft, true)
	case key.Matches(msg, km.ShiftRight):
		move(buffer.MoveGrapheme, buffer.DirRight, true)
	case key.Matches(msg, km.ShiftUp):
		move(buffer.MoveLine, buffer.DirUp, true)
	case key.Matches(msg, km.ShiftDown):
		move(buffer.MoveLine, buffer.DirDown, true)

	case key.Matches(msg, km.WordLeft):
		move(buffer.MoveWord, buffer.DirLeft, false)
	case key.Matches(msg, km.WordRight):
		move(buffer.MoveWord, buffer.DirRight, false)

	case key.Matches(msg, km.Home):
		move(buffer.MoveLine, buffer.DirHome, false)
	case key.Matches(msg, km.End):
		move(buffer.MoveLine, buffer.DirEnd, false)
	case key.Matches(msg, km.DocStart):
		move(buffer.MoveDoc, buffer.DirHome, false)
	case key.Matches(msg, km.DocEnd):
		move(buffer.MoveDoc, buffer.DirEnd, false)
	case key.Matches(msg, km.PageUp):
		m.movePage(-1)
	case key.Matches(msg, km.PageDown):
		m.movePage(1)
	case key.Matches(msg, km.SelectAll):
		m.buf.SelectAll()

	case key.Matches(msg, km.Backspace):
		m.edit("backspace", m.buf.DeleteBackward)
	case key.Matches(msg, km.Delete):
		m.edit("delete", m.buf.DeleteForward)
	case key.Matches(msg, km.Enter):
		m.edit("newline", func() error { return m.buf.InsertText("\n") })

	case key.Matches(msg, km.Copy):
		m.copySelection()
	case key.Matches(msg, km.Cut):
		m.cutSelection()
	case key.Matches(msg, km.Paste):
		m.pasteClipboard()

	case msg.Type == tea.KeyTab:
		m.edit("tab", func() error { return m.buf.InsertText("\t") })
	case msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt:
		m.edit("insert", func() error { return m.buf.InsertText(string(msg.Runes)) })
	}

	return m, nil
}

// edit runs one buffer mutation. Read-only rejections are expected and only
// logged.
func (m Model) edit(name string, fn func() error) {
	err := fn()
	switch {
	case err == nil:
	case errors.Is(err, buffer.ErrReadOnly):
		log.Debug(log.CatEditor, "edit rejected", "action", name, "reason", "read-only")
	default:
		log.ErrorErr(log.CatEditor, "edit failed", err, "action", name)
	}
}

func (m Model) movePage(dir int) {
	rows := max(m.visibleRowCount(), 1)
	cur := m.buf.Cursor()
	m.buf.MoveTo(buffer.Pos{Row: cur.Row + dir*rows, GraphemeCol: cur.GraphemeCol}, false)
}

func (m Model) copySelection() {
	if m.cfg.Clipboard == nil {
		return
	}
	s := m.SelectedText()
	if s == "" {
		return
	}
	if err := m.cfg.Clipboard.WriteText(s); err != nil {
		log.ErrorErr(log.CatEditor, "clipboard write failed", err)
	}
}

// cutSelection copies even when the buffer rejects the deletion, matching
// copy in read-only mode.
func (m Model) cutSelection() {
	m.copySelection()
	m.edit("cut", m.buf.DeleteSelection)
}

func (m Model) pasteClipboard() {
	if m.cfg.Clipboard == nil {
		return
	}
	if m.buf.ReadOnly() {
		log.Debug(log.CatEditor, "edit rejected", "action", "paste", "reason", "read-only")
		return
	}
	s, err := m.cfg.Clipboard.ReadText()
	if err != nil {
		log.ErrorErr(log.CatEditor, "clipboard read failed", err)
		return
	}
	if s == "" {
		return
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	m.edit("paste", func() error { return m.buf.InsertText(s) })
}
