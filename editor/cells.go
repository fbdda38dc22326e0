package editor

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/iw2rmb/sourceview/internal/grapheme"
)

const defaultTabWidth = 4

// lineCells maps the grapheme clusters of one line onto terminal cells.
// start has len(clusters)+1 entries; start[i] is the first cell of cluster i
// and the last entry is the line width.
type lineCells struct {
	clusters []string
	display  []string
	start    []int
}

func layoutLine(text string, tabWidth int) lineCells {
	if tabWidth <= 0 {
		tabWidth = defaultTabWidth
	}
	clusters := grapheme.Split(text)
	lc := lineCells{
		clusters: clusters,
		display:  make([]string, len(clusters)),
		start:    make([]int, len(clusters)+1),
	}
	cell := 0
	for i, c := range clusters {
		lc.start[i] = cell
		disp, w := displayCluster(c, cell, tabWidth)
		lc.display[i] = disp
		cell += w
	}
	lc.start[len(clusters)] = cell
	return lc
}

func (lc lineCells) width() int { return lc.start[len(lc.start)-1] }

// cellOf returns the first cell of grapheme column col; col == len(clusters)
// maps to the end-of-line cell.
func (lc lineCells) cellOf(col int) int {
	return lc.start[clampInt(col, 0, len(lc.clusters))]
}

// colAt returns the grapheme column under cell.
func (lc lineCells) colAt(cell int) int {
	for i := range lc.clusters {
		if cell < lc.start[i+1] {
			return i
		}
	}
	return len(lc.clusters)
}

// displayCluster returns what is drawn for cluster c starting at cell and how
// many cells it takes. Tabs expand to the next stop; control characters use
// caret notation.
func displayCluster(c string, cell, tabWidth int) (string, int) {
	if c == "\t" {
		w := tabWidth - cell%tabWidth
		return strings.Repeat(" ", w), w
	}
	if isControl(c) {
		return "^" + string(c[0]^0x40), 2
	}

	w := runewidth.StringWidth(c)
	if w <= 0 {
		w = grapheme.Width(c)
	}
	return c, max(w, 0)
}

// isControl reports whether c is a single C0 control character or DEL. Tabs
// are laid out separately.
func isControl(c string) bool {
	return len(c) == 1 && c != "\t" && (c[0] < 0x20 || c[0] == 0x7f)
}
