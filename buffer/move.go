package buffer

import "github.com/iw2rmb/sourceview/internal/grapheme"

type MoveUnit int

const (
	MoveGrapheme MoveUnit = iota
	MoveWord
	MoveLine
	MoveDoc
)

type MoveDir int

const (
	DirLeft MoveDir = iota
	DirRight
	DirUp
	DirDown
	DirHome // line start, or doc start for MoveDoc
	DirEnd  // line end, or doc end for MoveDoc
)

// Move describes one cursor motion. With Extend set the selection grows from
// its current anchor (or the old cursor) to the new cursor; otherwise the
// selection is dropped.
type Move struct {
	Unit   MoveUnit
	Dir    MoveDir
	Extend bool
}

func (b *Buffer) Move(m Move) {
	from := b.cursor
	to := b.clampPos(b.step(from, m))
	b.moveTo(from, to, m.Extend)
}

// MoveTo places the cursor at p, extending the selection when extend is set.
func (b *Buffer) MoveTo(p Pos, extend bool) {
	b.moveTo(b.cursor, b.clampPos(p), extend)
}

func (b *Buffer) moveTo(from, to Pos, extend bool) {
	next := selectionState{}
	if extend {
		anchor := from
		if b.sel.active && b.sel.anchor != b.sel.head {
			anchor = b.sel.anchor
		}
		if anchor != to {
			next = selectionState{active: true, anchor: anchor, head: to}
		}
	}
	b.setState(to, next)
}

func selectionStateEqual(a, b selectionState) bool {
	if !a.active || !b.active {
		return a.active == b.active
	}
	return a.anchor == b.anchor && a.head == b.head
}

func (b *Buffer) step(p Pos, m Move) Pos {
	switch m.Unit {
	case MoveGrapheme:
		return b.stepGrapheme(p, m.Dir)
	case MoveWord:
		return b.stepWord(p, m.Dir)
	case MoveLine:
		return b.stepLine(p, m.Dir)
	case MoveDoc:
		return b.stepDoc(p, m.Dir)
	default:
		return p
	}
}

func (b *Buffer) stepGrapheme(p Pos, dir MoveDir) Pos {
	lastRow := len(b.lines) - 1
	switch dir {
	case DirLeft:
		if p.GraphemeCol > 0 {
			return Pos{Row: p.Row, GraphemeCol: p.GraphemeCol - 1}
		}
		if p.Row == 0 {
			return p
		}
		return Pos{Row: p.Row - 1, GraphemeCol: len(b.lines[p.Row-1])}
	case DirRight:
		if p.GraphemeCol < len(b.lines[p.Row]) {
			return Pos{Row: p.Row, GraphemeCol: p.GraphemeCol + 1}
		}
		if p.Row == lastRow {
			return p
		}
		return Pos{Row: p.Row + 1}
	default:
		return b.stepLine(p, dir)
	}
}

// stepWord treats the line break as a hard boundary: skip whitespace, then skip
// non-whitespace.
func (b *Buffer) stepWord(p Pos, dir MoveDir) Pos {
	line := b.lines[p.Row]
	i := clampInt(p.GraphemeCol, 0, len(line))
	switch dir {
	case DirLeft:
		for i > 0 && grapheme.IsSpace(line[i-1]) {
			i--
		}
		for i > 0 && !grapheme.IsSpace(line[i-1]) {
			i--
		}
	case DirRight:
		for i < len(line) && grapheme.IsSpace(line[i]) {
			i++
		}
		for i < len(line) && !grapheme.IsSpace(line[i]) {
			i++
		}
	default:
		return b.stepLine(p, dir)
	}
	return Pos{Row: p.Row, GraphemeCol: i}
}

func (b *Buffer) stepLine(p Pos, dir MoveDir) Pos {
	switch dir {
	case DirHome:
		return Pos{Row: p.Row}
	case DirEnd:
		return Pos{Row: p.Row, GraphemeCol: len(b.lines[p.Row])}
	case DirUp:
		if p.Row == 0 {
			return p
		}
		return Pos{Row: p.Row - 1, GraphemeCol: min(p.GraphemeCol, len(b.lines[p.Row-1]))}
	case DirDown:
		if p.Row == len(b.lines)-1 {
			return p
		}
		return Pos{Row: p.Row + 1, GraphemeCol: min(p.GraphemeCol, len(b.lines[p.Row+1]))}
	default:
		return p
	}
}

func (b *Buffer) stepDoc(p Pos, dir MoveDir) Pos {
	lastRow := len(b.lines) - 1
	switch dir {
	case DirHome, DirUp:
		return Pos{}
	case DirEnd, DirDown:
		return Pos{Row: lastRow, GraphemeCol: len(b.lines[lastRow])}
	default:
		return p
	}
}

// SelectAll selects the whole document with the cursor at the end.
func (b *Buffer) SelectAll() {
	b.Select(Pos{}, b.stepDoc(b.cursor, DirEnd))
}
