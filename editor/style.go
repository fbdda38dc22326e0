package editor

import "github.com/charmbracelet/lipgloss"

// Style controls the editor's rendering. Per grapheme, Cursor wins over
// Selection, Selection over highlight spans, and highlight spans over Text.
type Style struct {
	Gutter        lipgloss.Style
	LineNum       lipgloss.Style
	LineNumActive lipgloss.Style

	Text      lipgloss.Style
	Selection lipgloss.Style
	Cursor    lipgloss.Style

	// ControlChar styles control characters, which render in caret notation
	// (^A, ^M).
	ControlChar lipgloss.Style
}

func DefaultStyle() Style {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return Style{
		Gutter:        dim,
		LineNum:       dim,
		LineNumActive: lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true),
		Text:          lipgloss.NewStyle(),
		Selection:     lipgloss.NewStyle().Background(lipgloss.Color("24")),
		Cursor:        lipgloss.NewStyle().Reverse(true),
		ControlChar:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
}
