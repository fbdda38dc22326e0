package editor

import (
	"github.com/iw2rmb/sourceview/buffer"
	"github.com/iw2rmb/sourceview/internal/log"
)

// SelectionRange is the main selection in rune offsets. Anchor is where the
// selection started and Head is where the cursor is; they are equal for a bare
// cursor.
type SelectionRange struct {
	Anchor int
	Head   int
}

func (r SelectionRange) From() int { return min(r.Anchor, r.Head) }

func (r SelectionRange) To() int { return max(r.Anchor, r.Head) }

func (r SelectionRange) Empty() bool { return r.Anchor == r.Head }

// SetSelection replaces the current selection with the single range from
// anchor to head (rune offsets) and scrolls head into view. Any previous
// selection is discarded. anchor == head places a bare cursor.
//
// Offsets are validated by the buffer: values outside [0, Len()] return
// buffer.ErrOffsetOutOfRange and offsets inside a grapheme cluster return
// buffer.ErrOffsetSplitsGrapheme. On error the view is unchanged.
func (m *Model) SetSelection(anchor, head int) error {
	r, err := m.buf.RangeFromOffsets(anchor, head)
	if err != nil {
		log.Debug(log.CatEditor, "selection rejected", "anchor", anchor, "head", head, "error", err)
		return err
	}
	m.buf.Select(r.Start, r.End)
	m.scrollTo(r.End)
	m.sync(false)
	return nil
}

// SelectionRange reports the main selection.
func (m Model) SelectionRange() SelectionRange {
	return selectionRangeOf(m.buf)
}

// SelectedText returns the text of the active selection, or "".
func (m Model) SelectedText() string {
	r, ok := m.buf.Selection()
	if !ok {
		return ""
	}
	return m.buf.TextInRange(r)
}

func selectionRangeOf(b *buffer.Buffer) SelectionRange {
	raw, ok := b.SelectionRaw()
	if !ok {
		head, _ := b.OffsetFromPos(b.Cursor())
		return SelectionRange{Anchor: head, Head: head}
	}
	anchor, _ := b.OffsetFromPos(raw.Start)
	head, _ := b.OffsetFromPos(raw.End)
	return SelectionRange{Anchor: anchor, Head: head}
}
