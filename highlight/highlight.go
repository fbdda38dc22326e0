// Package highlight implements editor.DocumentHighlighter on top of chroma
// lexers and styles.
//
// The whole document is tokenised once per text version, so constructs that
// span lines (triple-quoted strings, block comments) are coloured correctly
// on every row. Tokens the lexer cannot match come back as chroma.Error and
// get a dedicated style.
package highlight

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/sourceview/editor"
	"github.com/iw2rmb/sourceview/internal/grapheme"
	"github.com/iw2rmb/sourceview/internal/log"
)

// DefaultTheme is the chroma style used when no theme is given.
const DefaultTheme = "monokai"

var (
	ErrUnknownLanguage = errors.New("highlight: unknown language")
	ErrUnknownTheme    = errors.New("highlight: unknown theme")
)

// Span is one styled token run inside a row.
type Span struct {
	StartGraphemeCol int
	EndGraphemeCol   int
	Type             chroma.TokenType
}

type Option func(*Highlighter)

// WithTheme selects a chroma style by name.
func WithTheme(name string) Option {
	return func(h *Highlighter) { h.theme = name }
}

// WithRenderer builds every style from r instead of the default renderer.
func WithRenderer(r *lipgloss.Renderer) Option {
	return func(h *Highlighter) { h.renderer = r }
}

// WithErrorStyle overrides the style used for chroma.Error tokens.
func WithErrorStyle(st lipgloss.Style) Option {
	return func(h *Highlighter) {
		h.errStyle = st
		h.errStyleSet = true
	}
}

// Highlighter colours one document for one language.
type Highlighter struct {
	language string
	theme    string
	lexer    chroma.Lexer
	style    *chroma.Style

	renderer    *lipgloss.Renderer
	errStyle    lipgloss.Style
	errStyleSet bool
	cache       map[chroma.TokenType]cachedStyle

	version uint64
	rows    [][]Span
}

type cachedStyle struct {
	style lipgloss.Style
	ok    bool
}

var _ editor.DocumentHighlighter = (*Highlighter)(nil)

// New returns a Highlighter for language, which is any name or alias chroma
// knows ("python", "py", "go", ...).
func New(language string, opts ...Option) (*Highlighter, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, language)
	}

	h := &Highlighter{
		language: language,
		theme:    DefaultTheme,
		lexer:    chroma.Coalesce(lexer),
		cache:    make(map[chroma.TokenType]cachedStyle),
	}
	for _, opt := range opts {
		opt(h)
	}

	h.style = styles.Get(h.theme)
	if h.style == styles.Fallback && h.theme != styles.Fallback.Name {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, h.theme)
	}
	if !h.errStyleSet {
		h.errStyle = h.newStyle().Foreground(lipgloss.Color("#ff5555")).Underline(true)
	}

	log.Debug(log.CatHighlight, "highlighter ready", "language", language, "lexer", lexer.Config().Name, "theme", h.theme)
	return h, nil
}

func (h *Highlighter) Language() string { return h.language }

func (h *Highlighter) Theme() string { return h.theme }

// SyncDocument tokenises text and replaces the per-row spans.
func (h *Highlighter) SyncDocument(textVersion uint64, text string) error {
	it, err := h.lexer.Tokenise(nil, text)
	if err != nil {
		h.rows = nil
		return fmt.Errorf("tokenising %s: %w", h.language, err)
	}
	h.rows = splitRows(it.Tokens(), strings.Split(text, "\n"))
	h.version = textVersion
	return nil
}

// Spans returns the token spans of row as computed by the last sync.
func (h *Highlighter) Spans(row int) []Span {
	if row < 0 || row >= len(h.rows) {
		return nil
	}
	return h.rows[row]
}

// HighlightLine implements editor.Highlighter.
func (h *Highlighter) HighlightLine(ctx editor.LineContext) ([]editor.HighlightSpan, error) {
	spans := h.Spans(ctx.Row)
	if len(spans) == 0 {
		return nil, nil
	}
	out := make([]editor.HighlightSpan, 0, len(spans))
	for _, sp := range spans {
		st, ok := h.styleFor(sp.Type)
		if !ok {
			continue
		}
		out = append(out, editor.HighlightSpan{
			StartGraphemeCol: sp.StartGraphemeCol,
			EndGraphemeCol:   sp.EndGraphemeCol,
			Style:            st,
		})
	}
	return out, nil
}

// splitRows cuts the token stream at newlines into per-row grapheme spans.
// Token byte ranges are mapped onto the row's own cluster boundaries, so a
// token that starts inside a cluster maps to the cluster containing it. Where
// two tokens share a cluster the earlier one keeps it. Plain text and
// whitespace carry no span.
func splitRows(tokens []chroma.Token, lines []string) [][]Span {
	rows := make([][]Span, len(lines))
	if len(lines) == 0 {
		return rows
	}

	row, off := 0, 0
	ends := clusterEnds(lines[0])
	lastEnd := 0
	for _, tok := range tokens {
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				row++
				if row >= len(lines) {
					return rows
				}
				off, lastEnd = 0, 0
				ends = clusterEnds(lines[row])
			}
			from, to := off, min(off+len(part), len(lines[row]))
			off += len(part)
			if from >= to || !styled(tok.Type) {
				continue
			}
			startCol := max(colOfByte(ends, from), lastEnd)
			endCol := colOfByte(ends, to-1) + 1
			if startCol >= endCol {
				continue
			}
			rows[row] = append(rows[row], Span{StartGraphemeCol: startCol, EndGraphemeCol: endCol, Type: tok.Type})
			lastEnd = endCol
		}
	}
	return rows
}

// clusterEnds returns the byte offset just past each grapheme cluster of line.
func clusterEnds(line string) []int {
	clusters := grapheme.Split(line)
	ends := make([]int, len(clusters))
	n := 0
	for i, c := range clusters {
		n += len(c)
		ends[i] = n
	}
	return ends
}

// colOfByte returns the index of the cluster containing byte offset b.
func colOfByte(ends []int, b int) int {
	return sort.Search(len(ends), func(i int) bool { return ends[i] > b })
}

func styled(tt chroma.TokenType) bool {
	return tt != chroma.Text && tt != chroma.TextWhitespace && tt != chroma.Whitespace
}

func (h *Highlighter) styleFor(tt chroma.TokenType) (lipgloss.Style, bool) {
	if c, ok := h.cache[tt]; ok {
		return c.style, c.ok
	}
	st, ok := h.convert(tt)
	h.cache[tt] = cachedStyle{style: st, ok: ok}
	return st, ok
}

// convert maps a chroma style entry onto lipgloss. Backgrounds are dropped so
// selection and cursor styles stay readable.
func (h *Highlighter) convert(tt chroma.TokenType) (lipgloss.Style, bool) {
	if tt == chroma.Error {
		return h.errStyle, true
	}

	entry := h.style.Get(tt)
	st := h.newStyle()
	ok := false
	if entry.Colour.IsSet() {
		st = st.Foreground(lipgloss.Color(entry.Colour.String()))
		ok = true
	}
	if entry.Bold == chroma.Yes {
		st = st.Bold(true)
		ok = true
	}
	if entry.Italic == chroma.Yes {
		st = st.Italic(true)
		ok = true
	}
	if entry.Underline == chroma.Yes {
		st = st.Underline(true)
		ok = true
	}
	return st, ok
}

func (h *Highlighter) newStyle() lipgloss.Style {
	if h.renderer != nil {
		return h.renderer.NewStyle()
	}
	return lipgloss.NewStyle()
}
