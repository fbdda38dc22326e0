package editor

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// HighlightSpan styles the grapheme columns [StartGraphemeCol, EndGraphemeCol)
// of one line.
type HighlightSpan struct {
	StartGraphemeCol int
	EndGraphemeCol   int
	Style            lipgloss.Style
}

type LineContext struct {
	Row int
	// Text is the line text without its trailing newline.
	Text string

	// CursorGraphemeCol is the cursor column when HasCursor is set, otherwise -1.
	CursorGraphemeCol int
	HasCursor         bool
}

// Highlighter styles one line at a time. It is only asked about rows that are
// currently visible. An error drops highlighting for that line.
type Highlighter interface {
	HighlightLine(ctx LineContext) ([]HighlightSpan, error)
}

// DocumentHighlighter is a Highlighter that needs the whole document, for
// lexers whose state crosses lines (block comments, triple-quoted strings).
// SyncDocument is called before any HighlightLine call whenever textVersion
// differs from the previous sync.
type DocumentHighlighter interface {
	Highlighter
	SyncDocument(textVersion uint64, text string) error
}

// normalizeHighlightSpans clamps spans to the line, drops empty ones, sorts them
// and removes overlaps by keeping the earlier span.
func normalizeHighlightSpans(spans []HighlightSpan, lineLen int) []HighlightSpan {
	if len(spans) == 0 {
		return nil
	}
	lineLen = max(lineLen, 0)

	out := make([]HighlightSpan, 0, len(spans))
	for _, sp := range spans {
		start := clampInt(sp.StartGraphemeCol, 0, lineLen)
		end := clampInt(sp.EndGraphemeCol, 0, lineLen)
		if end < start {
			start, end = end, start
		}
		if start == end {
			continue
		}
		out = append(out, HighlightSpan{StartGraphemeCol: start, EndGraphemeCol: end, Style: sp.Style})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].StartGraphemeCol != out[j].StartGraphemeCol {
			return out[i].StartGraphemeCol < out[j].StartGraphemeCol
		}
		return out[i].EndGraphemeCol < out[j].EndGraphemeCol
	})

	merged := out[:0]
	for _, sp := range out {
		if n := len(merged); n > 0 && sp.StartGraphemeCol < merged[n-1].EndGraphemeCol {
			continue
		}
		merged = append(merged, sp)
	}
	return merged
}

// styleAt returns the span style covering col, if any. spans must be
// normalized.
func styleAt(spans []HighlightSpan, col int) (lipgloss.Style, bool) {
	i := sort.Search(len(spans), func(i int) bool { return spans[i].EndGraphemeCol > col })
	if i < len(spans) && spans[i].StartGraphemeCol <= col {
		return spans[i].Style, true
	}
	return lipgloss.Style{}, false
}
