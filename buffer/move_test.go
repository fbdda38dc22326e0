package buffer

import "testing"

func TestBuffer_MoveGrapheme_BoundsAndLineCrossing(t *testing.T) {
	b := New("ab\nçd", Options{})

	b.Move(Move{Unit: MoveGrapheme, Dir: DirLeft})
	if got := b.Cursor(); got != (Pos{Row: 0, GraphemeCol: 0}) {
		t.Fatalf("cursor=%v, want (0,0)", got)
	}

	b.SetCursor(Pos{Row: 0, GraphemeCol: 2})
	b.Move(Move{Unit: MoveGrapheme, Dir: DirRight})
	if got := b.Cursor(); got != (Pos{Row: 1, GraphemeCol: 0}) {
		t.Fatalf("cursor=%v, want (1,0)", got)
	}

	b.Move(Move{Unit: MoveGrapheme, Dir: DirLeft})
	if got := b.Cursor(); got != (Pos{Row: 0, GraphemeCol: 2}) {
		t.Fatalf("cursor=%v, want (0,2)", got)
	}
}

func TestBuffer_MoveLine_HomeEndAndVerticalClamp(t *testing.T) {
	b := New("hello\nw\nworld", Options{})

	b.SetCursor(Pos{Row: 0, GraphemeCol: 3})
	b.Move(Move{Unit: MoveLine, Dir: DirEnd})
	if got := b.Cursor(); got != (Pos{Row: 0, GraphemeCol: 5}) {
		t.Fatalf("cursor=%v, want (0,5)", got)
	}

	b.Move(Move{Unit: MoveLine, Dir: DirHome})
	if got := b.Cursor(); got != (Pos{Row: 0, GraphemeCol: 0}) {
		t.Fatalf("cursor=%v, want (0,0)", got)
	}

	b.SetCursor(Pos{Row: 2, GraphemeCol: 5})
	b.Move(Move{Unit: MoveLine, Dir: DirUp})
	if got := b.Cursor(); got != (Pos{Row: 1, GraphemeCol: 1}) {
		t.Fatalf("cursor=%v, want (1,1)", got)
	}
}

func TestBuffer_MoveDoc_StartEnd(t *testing.T) {
	b := New("a\nbc", Options{})

	b.Move(Move{Unit: MoveDoc, Dir: DirEnd})
	if got := b.Cursor(); got != (Pos{Row: 1, GraphemeCol: 2}) {
		t.Fatalf("cursor=%v, want (1,2)", got)
	}
	b.Move(Move{Unit: MoveDoc, Dir: DirHome})
	if got := b.Cursor(); got != (Pos{}) {
		t.Fatalf("cursor=%v, want (0,0)", got)
	}
}

func TestBuffer_MoveWord(t *testing.T) {
	b := New("def  run(self):", Options{})

	b.Move(Move{Unit: MoveWord, Dir: DirRight})
	if got := b.Cursor(); got != (Pos{GraphemeCol: 3}) {
		t.Fatalf("cursor=%v, want (0,3)", got)
	}
	b.Move(Move{Unit: MoveWord, Dir: DirRight})
	if got := b.Cursor(); got != (Pos{GraphemeCol: 15}) {
		t.Fatalf("cursor=%v, want (0,15)", got)
	}
	b.Move(Move{Unit: MoveWord, Dir: DirLeft})
	if got := b.Cursor(); got != (Pos{GraphemeCol: 5}) {
		t.Fatalf("cursor=%v, want (0,5)", got)
	}
}

func TestBuffer_MoveExtend_KeepsAnchor(t *testing.T) {
	b := New("abcdef", Options{})
	b.SetCursor(Pos{GraphemeCol: 2})

	b.Move(Move{Unit: MoveGrapheme, Dir: DirRight, Extend: true})
	b.Move(Move{Unit: MoveGrapheme, Dir: DirRight, Extend: true})

	r, ok := b.Selection()
	if !ok || r != (Range{Start: Pos{GraphemeCol: 2}, End: Pos{GraphemeCol: 4}}) {
		t.Fatalf("selection=%v ok=%v, want 2..4", r, ok)
	}

	b.Move(Move{Unit: MoveGrapheme, Dir: DirLeft, Extend: true})
	b.Move(Move{Unit: MoveGrapheme, Dir: DirLeft, Extend: true})
	if _, ok := b.Selection(); ok {
		t.Fatalf("expected selection collapsed back onto its anchor")
	}

	b.Move(Move{Unit: MoveGrapheme, Dir: DirRight, Extend: true})
	b.Move(Move{Unit: MoveGrapheme, Dir: DirRight})
	if _, ok := b.Selection(); ok {
		t.Fatalf("plain move should drop the selection")
	}
}

func TestBuffer_SelectAll(t *testing.T) {
	b := New("ab\ncd", Options{})
	b.SelectAll()

	r, ok := b.Selection()
	if !ok || r != (Range{Start: Pos{}, End: Pos{Row: 1, GraphemeCol: 2}}) {
		t.Fatalf("selection=%v ok=%v, want whole doc", r, ok)
	}
}
