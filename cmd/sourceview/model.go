package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/iw2rmb/sourceview/editor"
	"github.com/iw2rmb/sourceview/internal/log"
)

var (
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("241")).Padding(0, 1)
)

// chromeRows is the status line plus the one-line key help.
const chromeRows = 2

// reloader rebuilds the view when the watched file changes.
type reloader struct {
	changes <-chan struct{}
	load    func() (string, error)
	build   func(doc string) editor.Model
}

type fileChangedMsg struct{}

func (r *reloader) wait() tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-r.changes; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

// model hosts one view with a status line and key help below it. The full
// key help opens as a box over the view.
type model struct {
	view   editor.Model
	help   help.Model
	reload *reloader
	name   string
	notice string
	width  int
	height int
}

func newModel(view editor.Model, name string) model {
	return model{view: view, help: help.New(), name: name}
}

func (m model) Init() tea.Cmd {
	if m.reload != nil {
		return m.reload.wait()
	}
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil
	case fileChangedMsg:
		if m.reload == nil {
			return m, nil
		}
		m.reloadDocument()
		return m, m.reload.wait()
	case tea.KeyMsg:
		m.notice = ""
		switch msg.String() {
		case "?":
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case "q", "esc", "ctrl+q":
			log.Debug(log.CatCLI, "quit", "key", msg.String())
			return m, tea.Quit
		case "ctrl+c":
			// ctrl+c copies while something is selected and quits otherwise.
			if m.view.SelectionRange().Empty() {
				return m, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

// reloadDocument swaps in a view of the file's new contents, keeping the
// selection when it still fits the document.
func (m *model) reloadDocument() {
	doc, err := m.reload.load()
	if err != nil {
		log.ErrorErr(log.CatWatch, "reload failed", err, "name", m.name)
		m.notice = "reload failed"
		return
	}

	sel := m.view.SelectionRange()
	view := m.reload.build(doc)
	if !m.view.Focused() {
		view = view.Blur()
	}
	m.view = view
	m.resize()
	if err := m.view.SetSelection(sel.Anchor, sel.Head); err != nil {
		log.Debug(log.CatWatch, "selection dropped on reload", "error", err)
	}
	log.Info(log.CatWatch, "document reloaded", "name", m.name, "bytes", len(doc))
	m.notice = "reloaded"
}

func (m *model) resize() {
	if m.width == 0 && m.height == 0 {
		return
	}
	m.view = m.view.SetSize(m.width, max(m.height-chromeRows, 0))
}

func (m model) View() string {
	km := m.view.KeyMap()
	body := m.view.View()
	if m.help.ShowAll {
		box := helpBoxStyle.Render(m.help.FullHelpView(km.FullHelp()))
		body = overlay.Composite(box, body, overlay.Center, overlay.Center, 0, 0)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, m.status(), m.help.ShortHelpView(km.ShortHelp()))
}

func (m model) status() string {
	cur := m.view.Buffer().Cursor()
	s := fmt.Sprintf(" %s  Ln %d, Col %d", m.name, cur.Row+1, cur.GraphemeCol+1)
	if sel := m.view.SelectionRange(); !sel.Empty() {
		s += fmt.Sprintf("  [%d, %d)", sel.From(), sel.To())
	}
	s += "  read-only"
	if m.notice != "" {
		s += "  " + m.notice
	}
	if m.width > 0 {
		s = truncate.StringWithTail(s, uint(m.width), "…")
	}
	return statusStyle.Render(s)
}
