package buffer

import (
	"errors"
	"strings"

	"github.com/iw2rmb/sourceview/internal/grapheme"
)

// ErrReadOnly is returned by every edit on a read-only buffer.
var ErrReadOnly = errors.New("buffer: read-only")

// InsertText inserts s at the cursor, replacing the selection if one is active.
func (b *Buffer) InsertText(s string) error {
	if b.opt.ReadOnly {
		return ErrReadOnly
	}
	r, ok := b.Selection()
	if !ok {
		r = Range{Start: b.cursor, End: b.cursor}
	}
	b.commit(b.replaceRange(r, s))
	return nil
}

// DeleteBackward applies backspace semantics.
func (b *Buffer) DeleteBackward() error {
	if b.opt.ReadOnly {
		return ErrReadOnly
	}
	if r, ok := b.Selection(); ok {
		b.commit(b.replaceRange(r, ""))
		return nil
	}
	start := b.stepGrapheme(b.cursor, DirLeft)
	b.commit(b.replaceRange(Range{Start: start, End: b.cursor}, ""))
	return nil
}

// DeleteForward applies delete-key semantics.
func (b *Buffer) DeleteForward() error {
	if b.opt.ReadOnly {
		return ErrReadOnly
	}
	if r, ok := b.Selection(); ok {
		b.commit(b.replaceRange(r, ""))
		return nil
	}
	end := b.stepGrapheme(b.cursor, DirRight)
	b.commit(b.replaceRange(Range{Start: b.cursor, End: end}, ""))
	return nil
}

// DeleteSelection removes the selected text, if any.
func (b *Buffer) DeleteSelection() error {
	if b.opt.ReadOnly {
		return ErrReadOnly
	}
	if r, ok := b.Selection(); ok {
		b.commit(b.replaceRange(r, ""))
	}
	return nil
}

// Apply applies edits in order; each range is read against the document as
// left by the previous edit. Ranges are clamped. The cursor ends at the end of
// the last effective edit and the selection is cleared.
func (b *Buffer) Apply(edits ...TextEdit) error {
	if b.opt.ReadOnly {
		return ErrReadOnly
	}
	var last Pos
	changed := false
	for _, e := range edits {
		cur, ok := b.replaceRange(e.Range, e.Text)
		if ok {
			last, changed = cur, true
		}
	}
	b.commit(last, changed)
	return nil
}

func (b *Buffer) commit(cursor Pos, changed bool) {
	if !changed {
		return
	}
	b.cursor = b.clampPos(cursor)
	b.sel = selectionState{}
	b.version++
	b.textVersion++
}

// replaceRange swaps the text in r for text and reports the position right
// after the inserted text.
func (b *Buffer) replaceRange(r Range, text string) (Pos, bool) {
	r = NormalizeRange(ClampRange(r, len(b.lines), b.lineLen))
	if r.IsEmpty() && text == "" {
		return b.cursor, false
	}
	if textInRange(b.lines, r) == text {
		return b.cursor, false
	}

	prefix := b.lines[r.Start.Row][:r.Start.GraphemeCol]
	suffix := b.lines[r.End.Row][r.End.GraphemeCol:]

	parts := strings.Split(text, "\n")
	repl := make([][]string, len(parts))
	for i, p := range parts {
		repl[i] = grapheme.Split(p)
	}

	lastIdx := len(repl) - 1
	next := Pos{Row: r.Start.Row + lastIdx, GraphemeCol: len(repl[lastIdx])}
	if lastIdx == 0 {
		next.GraphemeCol += len(prefix)
	}

	repl[0] = append(append([]string(nil), prefix...), repl[0]...)
	repl[lastIdx] = append(repl[lastIdx], suffix...)

	out := make([][]string, 0, len(b.lines)-(r.End.Row-r.Start.Row)+lastIdx)
	out = append(out, b.lines[:r.Start.Row]...)
	out = append(out, repl...)
	out = append(out, b.lines[r.End.Row+1:]...)
	b.lines = out
	return next, true
}

// TextInRange returns the document text covered by r.
func (b *Buffer) TextInRange(r Range) string {
	return textInRange(b.lines, NormalizeRange(ClampRange(r, len(b.lines), b.lineLen)))
}

func textInRange(lines [][]string, r Range) string {
	if r.IsEmpty() {
		return ""
	}
	if r.Start.Row == r.End.Row {
		return grapheme.Join(lines[r.Start.Row][r.Start.GraphemeCol:r.End.GraphemeCol])
	}

	var sb strings.Builder
	for row := r.Start.Row; row <= r.End.Row; row++ {
		from, to := 0, len(lines[row])
		if row == r.Start.Row {
			from = r.Start.GraphemeCol
		} else {
			sb.WriteByte('\n')
		}
		if row == r.End.Row {
			to = r.End.GraphemeCol
		}
		sb.WriteString(grapheme.Join(lines[row][from:to]))
	}
	return sb.String()
}
