// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the progress view.
// It implements help.KeyMap.
type KeyMap struct {
	// Cancel stops the running job.
	Cancel key.Binding

	// Reveal toggles showing the current candidate in clear text.
	Reveal key.Binding

	// Help toggles the full help.
	Help key.Binding

	// Quit cancels the job if needed and exits once it has ended.
	Quit key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Cancel: key.NewBinding(
			key.WithKeys("c", "esc"),
			key.WithHelp("c/esc", "cancel"),
		),
		Reveal: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reveal"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Cancel, k.Reveal, k.Quit}
}

// FinishedHelp returns the bindings that still apply once the job ended.
func (k *KeyMap) FinishedHelp() []key.Binding {
	return []key.Binding{k.Reveal, k.Quit}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Cancel, k.Reveal},
		{k.Help, k.Quit},
	}
}
