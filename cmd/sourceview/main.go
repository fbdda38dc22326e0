// Command sourceview shows a Python file in a read-only, highlighted terminal
// view and optionally selects a character range in it.
package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

func init() {
	// Query the terminal background before Bubble Tea owns stdin.
	_ = lipgloss.HasDarkBackground()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
