package editor

import "github.com/iw2rmb/sourceview/buffer"

// ChangeEvent describes the buffer state after an effective change.
type ChangeEvent struct {
	Version     uint64
	TextVersion uint64
	Cursor      buffer.Pos
	Selection   struct {
		Range  buffer.Range
		Active bool
	}
	// Offsets is the main selection in rune offsets; empty when only a
	// cursor is placed.
	Offsets SelectionRange

	// TextChanged is true when the text itself changed.
	TextChanged bool
}

func buildChangeEvent(b *buffer.Buffer, textChanged bool) ChangeEvent {
	ev := ChangeEvent{
		Version:     b.Version(),
		TextVersion: b.TextVersion(),
		Cursor:      b.Cursor(),
		Offsets:     selectionRangeOf(b),
		TextChanged: textChanged,
	}
	if r, ok := b.Selection(); ok {
		ev.Selection.Active = true
		ev.Selection.Range = r
	}
	return ev
}
