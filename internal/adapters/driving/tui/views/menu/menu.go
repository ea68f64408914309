// Package menu provides the start menu for the TUI.
package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/deepscout/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/deepscout/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/deepscout/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/deepscout/internal/core/domain"
)

// Item is one entry of the start menu. Quit entries carry no view.
type Item struct {
	Label string
	Hint  string
	View  messages.ViewType
	Mode  domain.SearchMode
	Quit  bool
}

// View is the start menu.
type View struct {
	styles   *styles.Styles
	keys     *keymap.KeyMap
	items    []Item
	selected int
	ready    bool
}

// NewView creates a new menu view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		keys:   keymap.DefaultKeyMap(),
		items: []Item{
			{
				Label: "Quick answer", Hint: "One LLM call plus search links",
				View: messages.ViewSession, Mode: domain.SearchModeShallow,
			},
			{
				Label: "Deep research", Hint: "Expand, fetch every result, write a sourced report",
				View: messages.ViewSession, Mode: domain.SearchModeDeep,
			},
			{Label: "History", Hint: "Reopen a past search", View: messages.ViewHistory},
			{Label: "Quit", Quit: true},
		},
	}
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		k := msg.String()
		switch {
		case keymap.Matches(k, v.keys.Up):
			if v.selected > 0 {
				v.selected--
			}
		case keymap.Matches(k, v.keys.Down):
			if v.selected < len(v.items)-1 {
				v.selected++
			}
		case keymap.Matches(k, v.keys.Select):
			return v, v.choose(v.items[v.selected])
		case k == "q":
			return v, tea.Quit
		}
	}
	return v, nil
}

func (v *View) choose(item Item) tea.Cmd {
	if item.Quit {
		return tea.Quit
	}
	return func() tea.Msg {
		return messages.ViewChanged{View: item.View, Mode: item.Mode}
	}
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("DeepScout"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("Web research with an LLM"))
	b.WriteString("\n\n")

	for i, item := range v.items {
		if i != v.selected {
			b.WriteString("  " + v.styles.Normal.Render(item.Label) + "\n")
			continue
		}
		b.WriteString("> " + v.styles.Subtitle.Render(item.Label))
		if item.Hint != "" {
			b.WriteString("  " + v.styles.Muted.Render(item.Hint))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Select  [q] Quit"))
	return b.String()
}

// SetDimensions marks the view ready; the menu does not depend on size.
func (v *View) SetDimensions(_, _ int) {
	v.ready = true
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}

// Items returns the menu entries.
func (v *View) Items() []Item {
	return v.items
}
