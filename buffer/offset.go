package buffer

import (
	"errors"
	"unicode/utf8"
)

var (
	// ErrOffsetOutOfRange is returned for offsets outside [0, Len()].
	ErrOffsetOutOfRange = errors.New("buffer: offset out of range")
	// ErrOffsetSplitsGrapheme is returned for offsets that fall inside a
	// multi-rune grapheme cluster.
	ErrOffsetSplitsGrapheme = errors.New("buffer: offset splits a grapheme cluster")
	// ErrPosOutOfRange is returned for positions outside the document.
	ErrPosOutOfRange = errors.New("buffer: position out of range")
)

// Len returns the document length in runes, counting each '\n' as one rune.
func (b *Buffer) Len() int {
	total := 0
	for row, line := range b.lines {
		total += runeLen(line)
		if row < len(b.lines)-1 {
			total++
		}
	}
	return total
}

// LineStart returns the offset of the first rune of row.
func (b *Buffer) LineStart(row int) (int, error) {
	if row < 0 || row >= len(b.lines) {
		return 0, ErrPosOutOfRange
	}
	return b.posToOffset(Pos{Row: row}), nil
}

// PosFromOffset converts a rune offset into a position.
func (b *Buffer) PosFromOffset(off int) (Pos, error) {
	if off < 0 {
		return Pos{}, ErrOffsetOutOfRange
	}

	cur := 0
	for row, line := range b.lines {
		if off == cur {
			return Pos{Row: row}, nil
		}
		for col, cluster := range line {
			next := cur + utf8.RuneCountInString(cluster)
			if off > cur && off < next {
				return Pos{}, ErrOffsetSplitsGrapheme
			}
			cur = next
			if off == cur {
				return Pos{Row: row, GraphemeCol: col + 1}, nil
			}
		}
		cur++ // '\n'
	}
	return Pos{}, ErrOffsetOutOfRange
}

// OffsetFromPos converts a position into a rune offset.
func (b *Buffer) OffsetFromPos(p Pos) (int, error) {
	if b.clampPos(p) != p {
		return 0, ErrPosOutOfRange
	}
	return b.posToOffset(p), nil
}

// RangeFromOffsets converts a pair of offsets into an unnormalized range.
func (b *Buffer) RangeFromOffsets(from, to int) (Range, error) {
	start, err := b.PosFromOffset(from)
	if err != nil {
		return Range{}, err
	}
	end, err := b.PosFromOffset(to)
	if err != nil {
		return Range{}, err
	}
	return Range{Start: start, End: end}, nil
}

func (b *Buffer) posToOffset(p Pos) int {
	off := 0
	for row := 0; row < p.Row; row++ {
		off += runeLen(b.lines[row]) + 1
	}
	for col := 0; col < p.GraphemeCol; col++ {
		off += utf8.RuneCountInString(b.lines[p.Row][col])
	}
	return off
}

func runeLen(line []string) int {
	n := 0
	for _, cluster := range line {
		n += utf8.RuneCountInString(cluster)
	}
	return n
}
