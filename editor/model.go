package editor

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/sourceview/buffer"
	"github.com/iw2rmb/sourceview/internal/log"
)

// Model is a Bubble Tea component that renders and interacts with a buffer.
//
// The buffer is shared between copies of a Model; the caller owns the value
// returned by New and its copies.
type Model struct {
	cfg Config
	buf *buffer.Buffer

	focused bool

	viewport viewport.Model
	xOffset  int

	lastBufVersion  uint64
	lastTextVersion uint64
	lastCursor      buffer.Pos
	lastYOffset     int
	lastXOffset     int

	hlSynced  bool
	hlVersion uint64

	mouseDragging bool
	mouseAnchor   buffer.Pos
}

func New(cfg Config) Model {
	if cfg.KeyMap.isZero() {
		cfg.KeyMap = DefaultKeyMap()
	}
	m := Model{
		cfg:      cfg,
		buf:      buffer.New(cfg.Text, buffer.Options{ReadOnly: cfg.ReadOnly}),
		focused:  true,
		viewport: viewport.New(0, 0),
	}
	m.lastBufVersion = m.buf.Version()
	m.lastTextVersion = m.buf.TextVersion()
	m.lastCursor = m.buf.Cursor()
	m.rebuildContent()
	return m
}

func (m Model) Buffer() *buffer.Buffer { return m.buf }

// Text returns the current document.
func (m Model) Text() string { return m.buf.Text() }

func (m Model) ReadOnly() bool { return m.buf.ReadOnly() }

// KeyMap returns the bindings in effect.
func (m Model) KeyMap() KeyMap { return m.cfg.KeyMap }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	m.viewport.Width = max(width, 0)
	m.viewport.Height = max(height, 0)

	m.rebuildContent()
	m.followCursor()
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.rebuildContent()
		m.followCursor()
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.updateKey(msg)
		m.sync(true)
		return m, cmd
	case tea.MouseMsg:
		var cmd tea.Cmd
		m, cmd = m.updateMouse(msg)
		// Don't force-follow the cursor here; the wheel may scroll away from it.
		m.sync(false)
		return m, cmd
	default:
		// Hosts may mutate the buffer directly between messages.
		m.sync(true)
		return m, nil
	}
}

func (m Model) View() string { return m.viewport.View() }

// sync re-renders after buffer or scroll changes and emits a ChangeEvent for
// every new buffer version. With follow set, a moved cursor is scrolled into
// view.
func (m *Model) sync(follow bool) {
	ver := m.buf.Version()
	cur := m.buf.Cursor()
	bufChanged := ver != m.lastBufVersion
	cursorMoved := cur != m.lastCursor
	textChanged := m.buf.TextVersion() != m.lastTextVersion

	m.lastBufVersion = ver
	m.lastCursor = cur
	m.lastTextVersion = m.buf.TextVersion()

	if bufChanged {
		if follow && cursorMoved {
			m.scrollTo(cur)
		}
		m.rebuildContent()
		if m.cfg.OnChange != nil {
			m.cfg.OnChange(buildChangeEvent(m.buf, textChanged))
		}
		return
	}
	if m.viewport.YOffset != m.lastYOffset || m.xOffset != m.lastXOffset {
		m.rebuildContent()
	}
}

func (m *Model) rebuildContent() {
	m.viewport.SetContent(m.renderContent())
	m.lastYOffset = m.viewport.YOffset
	m.lastXOffset = m.xOffset
}

func (m *Model) followCursor() {
	if m.scrollTo(m.buf.Cursor()) {
		m.rebuildContent()
	}
}

// ScrollIntoView scrolls the viewport so that p is visible.
func (m *Model) ScrollIntoView(p buffer.Pos) {
	if m.scrollTo(p) {
		m.rebuildContent()
	}
}

// scrollTo adjusts the vertical and horizontal offsets so p is on screen and
// reports whether anything moved.
func (m *Model) scrollTo(p buffer.Pos) bool {
	moved := false

	if h := m.visibleRowCount(); h > 0 {
		y := m.viewport.YOffset
		switch {
		case p.Row < y:
			m.viewport.SetYOffset(p.Row)
		case p.Row >= y+h:
			m.viewport.SetYOffset(p.Row - h + 1)
		}
		moved = m.viewport.YOffset != y
	}

	if w := m.contentWidth(); w > 0 {
		cell := layoutLine(m.buf.Line(p.Row), m.cfg.tabWidth()).cellOf(p.GraphemeCol)
		x := m.xOffset
		switch {
		case cell < x:
			m.xOffset = cell
		case cell >= x+w:
			m.xOffset = cell - w + 1
		}
		if m.xOffset != x {
			moved = true
		}
	}

	if moved {
		log.Debug(log.CatEditor, "scrolled into view", "row", p.Row, "col", p.GraphemeCol,
			"top", m.viewport.YOffset, "left", m.xOffset)
	}
	return moved
}

// maxXOffset is the horizontal offset that still shows the end of the widest
// line, including the end-of-line cursor cell. It is 0 when unsized.
func (m Model) maxXOffset() int {
	w := m.contentWidth()
	if w == 0 {
		return 0
	}
	widest := 0
	for row := 0; row < m.buf.LineCount(); row++ {
		widest = max(widest, layoutLine(m.buf.Line(row), m.cfg.tabWidth()).width())
	}
	return max(widest+1-w, 0)
}

func (m Model) visibleRowCount() int {
	return max(m.viewport.Height-m.viewport.Style.GetVerticalFrameSize(), 0)
}

func (m Model) gutterWidth() int {
	if !m.cfg.ShowLineNums {
		return 0
	}
	return gutterDigits(m.buf.LineCount()) + 1
}

// contentWidth is the number of text cells per row, or 0 when unsized.
func (m Model) contentWidth() int {
	w := m.viewport.Width - m.viewport.Style.GetHorizontalFrameSize()
	if w <= 0 {
		return 0
	}
	return max(w-m.gutterWidth(), 1)
}

func gutterDigits(lineCount int) int {
	d := 1
	for n := max(lineCount, 1); n >= 10; n /= 10 {
		d++
	}
	return d
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
