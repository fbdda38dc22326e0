package editor

import (
	"fmt"
	"math"
	"strings"

	"github.com/iw2rmb/sourceview/buffer"
	"github.com/iw2rmb/sourceview/internal/grapheme"
	"github.com/iw2rmb/sourceview/internal/log"
)

func (m *Model) renderContent() string {
	lineCount := m.buf.LineCount()
	cursor := m.buf.Cursor()
	sel, selOK := m.buf.Selection()

	digits := gutterDigits(lineCount)
	left := max(m.xOffset, 0)
	right := math.MaxInt
	if w := m.contentWidth(); w > 0 {
		right = left + w
	}

	top := clampInt(m.viewport.YOffset, 0, lineCount)
	bottom := min(top+m.visibleRowCount(), lineCount)
	if top < bottom {
		m.syncHighlighter()
	}

	out := make([]string, 0, lineCount)
	for row := 0; row < lineCount; row++ {
		var sb strings.Builder

		if m.cfg.ShowLineNums {
			numStyle := m.cfg.Style.LineNum
			if m.cfg.HighlightActiveLine && m.focused && row == cursor.Row {
				numStyle = m.cfg.Style.LineNumActive
			}
			sb.WriteString(numStyle.Render(fmt.Sprintf("%*d", digits, row+1)))
			sb.WriteString(m.cfg.Style.Gutter.Render(" "))
		}

		text := m.buf.Line(row)
		var spans []HighlightSpan
		if row >= top && row < bottom {
			spans = m.highlightForLine(row, text, cursor)
		}

		sb.WriteString(renderLine(lineRender{
			style:   m.cfg.Style,
			cells:   layoutLine(text, m.cfg.tabWidth()),
			row:     row,
			cursor:  cursor,
			focused: m.focused,
			sel:     sel,
			selOK:   selOK,
			spans:   spans,
			left:    left,
			right:   right,
		}))
		out = append(out, sb.String())
	}
	return strings.Join(out, "\n")
}

func (m *Model) syncHighlighter() {
	dh, ok := m.cfg.Highlighter.(DocumentHighlighter)
	if !ok {
		return
	}
	ver := m.buf.TextVersion()
	if m.hlSynced && m.hlVersion == ver {
		return
	}
	if err := dh.SyncDocument(ver, m.buf.Text()); err != nil {
		log.ErrorErr(log.CatHighlight, "document sync failed", err, "version", ver)
	}
	m.hlSynced = true
	m.hlVersion = ver
}

func (m *Model) highlightForLine(row int, text string, cursor buffer.Pos) []HighlightSpan {
	if m.cfg.Highlighter == nil {
		return nil
	}

	ctx := LineContext{Row: row, Text: text, CursorGraphemeCol: -1}
	if cursor.Row == row {
		ctx.HasCursor = true
		ctx.CursorGraphemeCol = cursor.GraphemeCol
	}

	spans, err := m.cfg.Highlighter.HighlightLine(ctx)
	if err != nil {
		log.Debug(log.CatHighlight, "line highlight failed", "row", row, "error", err)
		return nil
	}
	return normalizeHighlightSpans(spans, grapheme.Count(text))
}

type lineRender struct {
	style   Style
	cells   lineCells
	row     int
	cursor  buffer.Pos
	focused bool
	sel     buffer.Range
	selOK   bool
	spans   []HighlightSpan
	// Visible cell window [left, right).
	left, right int
}

// renderLine draws one logical line clipped to the visible cell window. Each
// grapheme is styled by precedence: cursor, selection, highlight, text.
func renderLine(r lineRender) string {
	st := r.style
	n := len(r.cells.clusters)

	cursorCol := -1
	if r.focused && r.row == r.cursor.Row {
		cursorCol = clampInt(r.cursor.GraphemeCol, 0, n)
	}
	selStart, selEnd, hasSel := selectionColsForRow(r.sel, r.selOK, r.row, n)

	var sb strings.Builder
	for i := 0; i < n; i++ {
		segL, segR := r.cells.start[i], r.cells.start[i+1]
		spanL, spanR := max(segL, r.left), min(segR, r.right)
		if spanL >= spanR {
			continue
		}

		style := st.Text
		switch {
		case i == cursorCol:
			style = st.Cursor
		case hasSel && i >= selStart && i < selEnd:
			style = st.Selection
		case isControl(r.cells.clusters[i]):
			style = st.ControlChar.Inherit(st.Text)
		default:
			if hl, ok := styleAt(r.spans, i); ok {
				style = hl.Inherit(st.Text)
			}
		}

		text := r.cells.display[i]
		if spanL != segL || spanR != segR {
			// Partially visible wide grapheme or tab: keep alignment with blanks.
			text = strings.Repeat(" ", spanR-spanL)
		}
		sb.WriteString(style.Render(text))
	}

	// Cursor at end of line is a one-cell placeholder.
	if cursorCol == n {
		eol := r.cells.width()
		if eol >= r.left && eol < r.right {
			sb.WriteString(st.Cursor.Render(" "))
		}
	}
	return sb.String()
}

func selectionColsForRow(sel buffer.Range, ok bool, row, lineLen int) (start, end int, has bool) {
	if !ok || row < sel.Start.Row || row > sel.End.Row {
		return 0, 0, false
	}
	start, end = 0, lineLen
	if row == sel.Start.Row {
		start = sel.Start.GraphemeCol
	}
	if row == sel.End.Row {
		end = sel.End.GraphemeCol
	}
	return start, end, start < end
}
