package editor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/sourceview/buffer"
)

const horizontalWheelStep = 6

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	if isWheel(msg) {
		if m.cfg.ScrollPolicy != ScrollAllowManual {
			return m, nil
		}
		switch msg.Button { //nolint:exhaustive
		case tea.MouseButtonWheelLeft:
			m.xOffset = max(m.xOffset-horizontalWheelStep, 0)
		case tea.MouseButtonWheelRight:
			m.xOffset = min(m.xOffset+horizontalWheelStep, m.maxXOffset())
		default:
			m.viewport, cmd = m.viewport.Update(msg)
		}
		return m, cmd
	}

	if !m.focused {
		return m, nil
	}

	switch msg.Action { //nolint:exhaustive
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.mouseInBounds(msg.X, msg.Y) {
			return m, nil
		}
		p := m.screenToDocPos(msg.X, msg.Y)
		if msg.Shift {
			anchor := m.buf.Cursor()
			if raw, ok := m.buf.SelectionRaw(); ok {
				anchor = raw.Start
			}
			m.mouseAnchor = anchor
			m.buf.Select(anchor, p)
		} else {
			m.mouseAnchor = p
			m.buf.Select(p, p)
		}
		m.mouseDragging = true

	case tea.MouseActionMotion:
		if !m.mouseDragging {
			return m, nil
		}
		x, y := m.clampMouseToBounds(msg.X, msg.Y)
		m.buf.Select(m.mouseAnchor, m.screenToDocPos(x, y))

	case tea.MouseActionRelease:
		m.mouseDragging = false
	}

	return m, nil
}

func isWheel(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress &&
		(msg.Button == tea.MouseButtonWheelUp ||
			msg.Button == tea.MouseButtonWheelDown ||
			msg.Button == tea.MouseButtonWheelLeft ||
			msg.Button == tea.MouseButtonWheelRight)
}

func (m Model) mouseInBounds(x, y int) bool {
	if m.viewport.Width <= 0 || m.viewport.Height <= 0 {
		return false
	}
	return x >= 0 && x < m.viewport.Width && y >= 0 && y < m.viewport.Height
}

func (m Model) clampMouseToBounds(x, y int) (int, int) {
	if m.viewport.Width > 0 {
		x = clampInt(x, 0, m.viewport.Width-1)
	}
	if m.viewport.Height > 0 {
		y = clampInt(y, 0, m.viewport.Height-1)
	}
	return x, y
}

// screenToDocPos maps viewport-local cell coordinates to a document position.
// Gutter clicks land on column 0; coordinates past the text clamp to the
// document.
func (m Model) screenToDocPos(x, y int) buffer.Pos {
	row := clampInt(m.viewport.YOffset+y, 0, m.buf.LineCount()-1)
	x -= m.gutterWidth()
	if x < 0 {
		return buffer.Pos{Row: row}
	}
	lc := layoutLine(m.buf.Line(row), m.cfg.tabWidth())
	return buffer.Pos{Row: row, GraphemeCol: lc.colAt(x + m.xOffset)}
}

// ScreenToDoc maps viewport-local screen coordinates to a document position.
func (m Model) ScreenToDoc(x, y int) buffer.Pos { return m.screenToDocPos(x, y) }
