// Package buffer holds the document behind a source view: grapheme-accurate
// lines, the cursor and a single selection.
//
// Positions are 0-based (Row, GraphemeCol). Offsets are 0-based rune offsets
// into the whole document with '\n' counted as one rune. Ranges are half-open:
// [Start, End).
package buffer
