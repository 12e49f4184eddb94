// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/zirar/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/zirar/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/zirar/internal/core/domain"
)

// Bar displays the job state and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   domain.JobState
	message string
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  domain.JobIdle,
		width:  80,
	}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	label := s.state.String()
	if s.message != "" {
		label = fmt.Sprintf("%s: %s", label, s.message)
	}

	switch s.state {
	case domain.JobFound:
		return s.styles.Success.Render(label)
	case domain.JobFailed:
		return s.styles.Error.Render(label)
	case domain.JobStopped, domain.JobExhausted:
		return s.styles.Warning.Render(label)
	case domain.JobRunning:
		return s.styles.Normal.Render(label)
	default:
		return s.styles.Muted.Render(label)
	}
}

func (s *Bar) renderRight() string {
	bindings := s.keymap.ShortHelp()
	if s.state.IsTerminal() {
		bindings = s.keymap.FinishedHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// Bindings returns the hints currently shown.
func (s *Bar) Bindings() []key.Binding {
	if s.state.IsTerminal() {
		return s.keymap.FinishedHelp()
	}
	return s.keymap.ShortHelp()
}

// SetState sets the job state shown.
func (s *Bar) SetState(state domain.JobState) {
	s.state = state
}

// State returns the job state shown.
func (s *Bar) State() domain.JobState {
	return s.state
}

// SetMessage sets a short note shown after the state.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current note.
func (s *Bar) Message() string {
	return s.message
}

// SetWidth sets the bar width.
func (s *Bar) SetWidth(width int) {
	if width > 0 {
		s.width = width
	}
}

// Width returns the bar width.
func (s *Bar) Width() int {
	return s.width
}
