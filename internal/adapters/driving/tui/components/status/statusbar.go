// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/deepscout/internal/adapters/driving/tui/styles"
)

// State represents what the session is doing.
type State string

const (
	StateReady     State = "ready"
	StateSearching State = "searching"
	StateAnswering State = "answering"
	StateError     State = "error"
)

// Bar displays the session state on the left and key hints on the right.
type Bar struct {
	styles  *styles.Styles
	state   State
	message string
	hints   []key.Binding
	width   int
}

// NewBar creates a new status bar.
func NewBar(s *styles.Styles) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Bar{
		styles: s,
		state:  StateReady,
		width:  80,
	}
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	// The style's horizontal padding takes columns from the content.
	inner := b.width - b.styles.StatusBar.GetHorizontalFrameSize()
	padding := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return b.styles.StatusBar.Width(b.width).Render(left + strings.Repeat(" ", padding) + right)
}

func (b *Bar) renderLeft() string {
	switch b.state {
	case StateSearching:
		if b.message != "" {
			return b.styles.Warning.Render(b.message)
		}
		return b.styles.Warning.Render("Searching...")
	case StateAnswering:
		return b.styles.Warning.Render("Thinking...")
	case StateError:
		if b.message != "" {
			return b.styles.Error.Render("Error: " + b.message)
		}
		return b.styles.Error.Render("Error")
	case StateReady:
	}
	if b.message != "" {
		return b.styles.Normal.Render(b.message)
	}
	return b.styles.Muted.Render("Ready")
}

func (b *Bar) renderRight() string {
	hints := make([]string, 0, len(b.hints))
	for _, h := range b.hints {
		help := h.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", help.Key, help.Desc))
	}
	return b.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (b *Bar) SetState(state State) {
	b.state = state
}

// State returns the current state.
func (b *Bar) State() State {
	return b.state
}

// SetMessage sets the text shown next to the state.
func (b *Bar) SetMessage(message string) {
	b.message = message
}

// Message returns the current message.
func (b *Bar) Message() string {
	return b.message
}

// SetHints replaces the keybinding hints.
func (b *Bar) SetHints(hints []key.Binding) {
	b.hints = hints
}

// SetWidth sets the status bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Width returns the current width.
func (b *Bar) Width() int {
	return b.width
}

// Clear resets the bar to the ready state.
func (b *Bar) Clear() {
	b.state = StateReady
	b.message = ""
}
