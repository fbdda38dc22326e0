// Package sourceview builds read-only, Python-highlighted source views on top
// of the editor component and moves their selection by character offset.
//
// A view is an editor.Model: embed it in a Bubble Tea program, forward
// messages to its Update and render its View.
package sourceview

import (
	"github.com/iw2rmb/sourceview/editor"
	"github.com/iw2rmb/sourceview/highlight"
	"github.com/iw2rmb/sourceview/internal/log"
)

// Language is the highlighting language of every view.
const Language = "python"

// New creates a read-only view over document with Python highlighting.
//
// The view carries the baseline editor bundle: line numbers, active line
// number, default key bindings, the system clipboard and tab stops every 4
// cells. Read-only mode is always on. When the highlighter cannot be built
// (for example an unknown theme) the document is shown as plain text.
func New(document string, opts ...Option) editor.Model {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	cfg := editor.Config{
		Text:                document,
		ReadOnly:            true,
		ShowLineNums:        o.lineNumbers,
		HighlightActiveLine: true,
		TabWidth:            o.tabWidth,
		Style:               o.style,
		KeyMap:              editor.DefaultKeyMap(),
		Clipboard:           o.clipboard,
		OnChange:            o.onChange,
		ScrollPolicy:        editor.ScrollAllowManual,
	}

	hl, err := highlight.New(Language, highlight.WithTheme(o.theme))
	if err != nil {
		log.ErrorErr(log.CatHighlight, "highlighter unavailable, showing plain text", err, "theme", o.theme)
	} else {
		cfg.Highlighter = hl
	}

	view := editor.New(cfg)
	if o.width > 0 || o.height > 0 {
		view = view.SetSize(o.width, o.height)
	}
	log.Debug(log.CatEditor, "view created", "runes", view.Buffer().Len(), "lines", view.Buffer().LineCount())
	return view
}

// SetSelection replaces the selection of view with the single range
// [from, to) in character offsets and scrolls it into view. Offsets are not
// checked here; the editor's error, if any, is returned as is.
func SetSelection(view *editor.Model, from, to int) error {
	return view.SetSelection(from, to)
}

// Span locates a run of characters by line and column, as reported by
// compilers and linters. Line is 1-based, Column is 0-based and Len counts
// characters.
type Span struct {
	Line   int
	Column int
	Len    int
}

// SelectSpan selects span in view. A line outside the document returns
// buffer.ErrPosOutOfRange; column and length are checked like SetSelection
// offsets.
func SelectSpan(view *editor.Model, span Span) error {
	start, err := view.Buffer().LineStart(span.Line - 1)
	if err != nil {
		return err
	}
	from := start + span.Column
	return SetSelection(view, from, from+span.Len)
}
