package buffer

import (
	"strings"

	"github.com/iw2rmb/sourceview/internal/grapheme"
)

// Options configures a Buffer.
type Options struct {
	// ReadOnly rejects every text edit with ErrReadOnly. Cursor and selection
	// stay mutable.
	ReadOnly bool
}

type selectionState struct {
	active bool
	anchor Pos
	head   Pos
}

// Buffer is the document state: text as grapheme clusters, cursor and one
// selection.
type Buffer struct {
	lines [][]string

	version     uint64
	textVersion uint64

	cursor Pos
	sel    selectionState

	opt Options
}

func New(text string, opt Options) *Buffer {
	return &Buffer{
		lines: splitLines(text),
		opt:   opt,
	}
}

// Text returns the document. It is byte-identical to the text passed to New
// until an edit is applied.
func (b *Buffer) Text() string {
	var sb strings.Builder
	for i, line := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(grapheme.Join(line))
	}
	return sb.String()
}

// Version changes on every effective cursor, selection or text change.
func (b *Buffer) Version() uint64 { return b.version }

// TextVersion changes only when the text changes.
func (b *Buffer) TextVersion() uint64 { return b.textVersion }

func (b *Buffer) ReadOnly() bool { return b.opt.ReadOnly }

func (b *Buffer) LineCount() int { return len(b.lines) }

// Line returns the text of row, or "" when row is out of range.
func (b *Buffer) Line(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return grapheme.Join(b.lines[row])
}

// LineLen returns the grapheme length of row.
func (b *Buffer) LineLen(row int) int { return b.lineLen(row) }

func (b *Buffer) Cursor() Pos { return b.cursor }

func (b *Buffer) SetCursor(p Pos) {
	next := b.clampPos(p)
	if next == b.cursor {
		return
	}
	b.cursor = next
	b.version++
}

// Selection returns the normalized selection. ok is false when no selection is
// active or it is empty.
func (b *Buffer) Selection() (Range, bool) {
	if !b.sel.active || b.sel.anchor == b.sel.head {
		return Range{}, false
	}
	return NormalizeRange(Range{Start: b.sel.anchor, End: b.sel.head}), true
}

// SelectionRaw returns the selection as (anchor, head) without normalizing it.
func (b *Buffer) SelectionRaw() (Range, bool) {
	if !b.sel.active || b.sel.anchor == b.sel.head {
		return Range{}, false
	}
	return Range{Start: b.sel.anchor, End: b.sel.head}, true
}

// SetSelection replaces the selection with r, keeping r's direction. The
// cursor is not moved.
func (b *Buffer) SetSelection(r Range) {
	r = ClampRange(r, len(b.lines), b.lineLen)
	next := selectionState{active: true, anchor: r.Start, head: r.End}
	if r.IsEmpty() {
		next = selectionState{}
	}
	b.setState(b.cursor, next)
}

// Select replaces the cursor and selection in one step: the selection runs
// from anchor to head and the cursor lands on head. When anchor == head the
// result is a bare cursor with no selection.
func (b *Buffer) Select(anchor, head Pos) {
	anchor = b.clampPos(anchor)
	head = b.clampPos(head)
	next := selectionState{}
	if anchor != head {
		next = selectionState{active: true, anchor: anchor, head: head}
	}
	b.setState(head, next)
}

func (b *Buffer) ClearSelection() {
	b.setState(b.cursor, selectionState{})
}

func (b *Buffer) setState(cursor Pos, sel selectionState) {
	if cursor == b.cursor && selectionStateEqual(b.sel, sel) {
		b.sel = sel
		return
	}
	b.cursor = cursor
	b.sel = sel
	b.version++
}

func (b *Buffer) lineLen(row int) int {
	if row < 0 || row >= len(b.lines) {
		return 0
	}
	return len(b.lines[row])
}

func (b *Buffer) clampPos(p Pos) Pos {
	return ClampPos(p, len(b.lines), b.lineLen)
}

func splitLines(text string) [][]string {
	parts := strings.Split(text, "\n")
	lines := make([][]string, 0, len(parts))
	for _, s := range parts {
		lines = append(lines, grapheme.Split(s))
	}
	return lines
}
