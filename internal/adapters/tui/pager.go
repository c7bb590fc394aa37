// Package tui holds the interactive console adapters: the bubbletea pager
// behind the more command and the terminal confirmer behind destructive
// operations.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"libris/internal/adapters/tui/styles"
	"libris/internal/ports"
)

// Pager pages text through a fullscreen bubbletea viewport
type Pager struct{}

// Ensure Pager implements ports.Pager
var _ ports.Pager = (*Pager)(nil)

// NewPager creates a pager
func NewPager() *Pager {
	return &Pager{}
}

// Page displays content until the user quits the view
func (p *Pager) Page(content string) error {
	program := tea.NewProgram(newPagerModel(content), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// PagerKeyMap defines key bindings for the pager view
type PagerKeyMap struct {
	Quit     key.Binding
	PageDown key.Binding
	PageUp   key.Binding
}

// DefaultPagerKeys returns the default pager key bindings
var DefaultPagerKeys = PagerKeyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	PageDown: key.NewBinding(
		key.WithKeys(" ", "f", "pgdown"),
		key.WithHelp("space", "page down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("b", "pgup"),
		key.WithHelp("b", "page up"),
	),
}

type pagerModel struct {
	content  string
	viewport viewport.Model
	keys     PagerKeyMap
	ready    bool
}

func newPagerModel(content string) pagerModel {
	return pagerModel{
		content: content,
		keys:    DefaultPagerKeys,
	}
}

func (m pagerModel) Init() tea.Cmd {
	return nil
}

func (m pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.PageDown):
			m.viewport.ViewDown()
			return m, nil
		case key.Matches(msg, m.keys.PageUp):
			m.viewport.ViewUp()
			return m, nil
		}

	case tea.WindowSizeMsg:
		footerHeight := 1
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-footerHeight)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - footerHeight
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m pagerModel) View() string {
	if !m.ready {
		return ""
	}
	return m.viewport.View() + "\n" + styles.PagerFooter.Render("space to scroll, q to quit")
}
