package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ledgerkit/ledger-tui/internal/ui/state"
)

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Interact key.Binding
	Cancel   key.Binding
	Delete   key.Binding
	Search   key.Binding
	Notices  key.Binding
	Seed     key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// Vim-style letters only count as navigation while nothing captures text.
var letterNav = map[string]bool{"j": true, "k": true, "h": true, "l": true}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("→/l", "right"),
		),
		Interact: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "edit/save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "D"),
			key.WithHelp("d", "delete"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Notices: key.NewBinding(
			key.WithKeys("n", "N"),
			key.WithHelp("n", "notices"),
		),
		Seed: key.NewBinding(
			key.WithKeys("g", "G"),
			key.WithHelp("g", "add samples"),
		),
		Back: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "exit now"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Interact, k.Cancel, k.Delete, k.Search, k.Seed, k.Notices, k.Back}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Interact, k.Cancel, k.Delete, k.Search},
		{k.Seed, k.Notices, k.Back, k.Quit},
	}
}

// navFor maps a key to a navigation action. Letter aliases are ignored
// while capturing so they reach the text input.
func (k keyMap) navFor(msg tea.KeyMsg, capturing bool) (state.Nav, bool) {
	if capturing && letterNav[msg.String()] {
		return 0, false
	}
	switch {
	case key.Matches(msg, k.Up):
		return state.NavUp, true
	case key.Matches(msg, k.Down):
		return state.NavDown, true
	case key.Matches(msg, k.Left):
		return state.NavLeft, true
	case key.Matches(msg, k.Right):
		return state.NavRight, true
	case key.Matches(msg, k.Interact):
		return state.NavInteract, true
	case key.Matches(msg, k.Cancel):
		return state.NavCancel, true
	}
	return 0, false
}
