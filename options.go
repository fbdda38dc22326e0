package sourceview

import (
	"github.com/iw2rmb/sourceview/editor"
	"github.com/iw2rmb/sourceview/highlight"
)

// Option customizes a view built by New. No option can make a view editable.
type Option func(*options)

type options struct {
	theme       string
	width       int
	height      int
	tabWidth    int
	lineNumbers bool
	style       editor.Style
	clipboard   editor.Clipboard
	onChange    func(editor.ChangeEvent)
}

func defaultOptions() options {
	return options{
		theme:       highlight.DefaultTheme,
		tabWidth:    4,
		lineNumbers: true,
		style:       editor.DefaultStyle(),
		clipboard:   editor.SystemClipboard{},
	}
}

// WithTheme selects the chroma style used for highlighting.
func WithTheme(name string) Option {
	return func(o *options) { o.theme = name }
}

// WithSize sizes the view up front instead of waiting for a WindowSizeMsg.
func WithSize(width, height int) Option {
	return func(o *options) {
		o.width = width
		o.height = height
	}
}

func WithTabWidth(n int) Option {
	return func(o *options) { o.tabWidth = n }
}

func WithLineNumbers(show bool) Option {
	return func(o *options) { o.lineNumbers = show }
}

func WithStyle(st editor.Style) Option {
	return func(o *options) { o.style = st }
}

// WithClipboard replaces the system clipboard; nil disables copy.
func WithClipboard(c editor.Clipboard) Option {
	return func(o *options) { o.clipboard = c }
}

// WithOnChange registers a callback for cursor and selection changes.
func WithOnChange(fn func(editor.ChangeEvent)) Option {
	return func(o *options) { o.onChange = fn }
}
