package status

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBar(t *testing.T) {
	b := NewBar(nil)

	require.NotNil(t, b)
	assert.Equal(t, StateReady, b.State())
	assert.Equal(t, 80, b.Width())
	assert.Contains(t, b.View(), "Ready")
}

func TestBar_States(t *testing.T) {
	tests := []struct {
		state   State
		message string
		want    string
	}{
		{StateSearching, "", "Searching..."},
		{StateSearching, "Deep search: fetching pages", "Deep search: fetching pages"},
		{StateAnswering, "", "Thinking..."},
		{StateError, "boom", "Error: boom"},
		{StateError, "", "Error"},
		{StateReady, "3 sources", "3 sources"},
	}
	for _, tt := range tests {
		t.Run(string(tt.state)+tt.message, func(t *testing.T) {
			b := NewBar(nil)
			b.SetWidth(120)
			b.SetState(tt.state)
			b.SetMessage(tt.message)

			assert.Contains(t, b.View(), tt.want)
		})
	}
}

func TestBar_Hints(t *testing.T) {
	b := NewBar(nil)
	b.SetWidth(120)
	b.SetHints([]key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	})

	view := b.View()

	assert.Contains(t, view, "enter: send")
	assert.Contains(t, view, "esc: back")
}

func TestBar_FitsOnOneLine(t *testing.T) {
	for _, width := range []int{60, 80, 120} {
		b := NewBar(nil)
		b.SetWidth(width)
		b.SetState(StateSearching)
		b.SetMessage("Deep search: fetching pages")
		b.SetHints([]key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		})

		view := b.View()

		assert.NotContains(t, view, "\n", "width %d", width)
		assert.Equal(t, width, lipgloss.Width(view), "width %d", width)
	}
}

func TestBar_Clear(t *testing.T) {
	b := NewBar(nil)
	b.SetState(StateError)
	b.SetMessage("boom")

	b.Clear()

	assert.Equal(t, StateReady, b.State())
	assert.Empty(t, b.Message())
}
