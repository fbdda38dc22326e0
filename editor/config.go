package editor

// Config configures the editor Model.
type Config struct {
	// Initial text for the internal buffer.
	Text string

	// ReadOnly rejects edits from keys, paste and cut. Cursor movement,
	// selection, copy and scrolling keep working.
	ReadOnly bool

	// Rendering options.
	ShowLineNums bool
	// HighlightActiveLine renders the cursor row's line number with
	// Style.LineNumActive.
	HighlightActiveLine bool
	// TabWidth is the tab stop distance in cells. Zero means 4.
	TabWidth int
	Style    Style

	// KeyMap overrides DefaultKeyMap when any binding is set.
	KeyMap KeyMap

	Highlighter Highlighter
	Clipboard   Clipboard

	// OnChange is called after every effective change to text, cursor or
	// selection made through the Model.
	OnChange func(ChangeEvent)

	ScrollPolicy ScrollPolicy
}

func (c Config) tabWidth() int {
	if c.TabWidth <= 0 {
		return defaultTabWidth
	}
	return c.TabWidth
}
