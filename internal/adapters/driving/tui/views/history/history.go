// Package history provides the list of stored searches.
package history

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/deepscout/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/deepscout/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/deepscout/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/deepscout/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/deepscout/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/deepscout/internal/core/ports/driving"
)

// Limit caps how many searches are listed.
const Limit = 50

// View lists recent searches; Enter opens one in the session view.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	list      *list.SearchList
	statusbar *status.Bar

	research driving.ResearchService
	ctx      context.Context

	err   error
	ready bool
}

// NewView creates a history view.
func NewView(s *styles.Styles, km *keymap.KeyMap, research driving.ResearchService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	bar := status.NewBar(s)
	bar.SetHints(km.HistoryHelp())

	return &View{
		styles:    s,
		keymap:    km,
		list:      list.NewSearchList(s),
		statusbar: bar,
		research:  research,
		ctx:       context.Background(),
	}
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Load returns a command that fetches the recent searches.
func (v *View) Load() tea.Cmd {
	return func() tea.Msg {
		if v.research == nil {
			return messages.HistoryLoaded{}
		}
		searches, err := v.research.List(v.ctx, Limit)
		return messages.HistoryLoaded{Searches: searches, Err: err}
	}
}

// Update handles messages for the history view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case messages.ErrorOccurred:
		v.fail(msg.Err)

	case messages.HistoryLoaded:
		if msg.Err != nil {
			v.fail(msg.Err)
			return v, nil
		}
		v.err = nil
		v.statusbar.Clear()
		v.list.SetSearches(msg.Searches)

	case tea.KeyMsg:
		keyStr := msg.String()
		switch {
		case keymap.Matches(keyStr, v.keymap.Back):
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case keymap.Matches(keyStr, v.keymap.Up):
			v.list.MoveUp()
		case keymap.Matches(keyStr, v.keymap.Down):
			v.list.MoveDown()
		case keymap.Matches(keyStr, v.keymap.Select):
			selected := v.list.SelectedSearch()
			if selected == nil {
				return v, nil
			}
			id := selected.ID
			return v, func() tea.Msg {
				return messages.OpenSearch{ID: id}
			}
		}
	}
	return v, nil
}

func (v *View) fail(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// View renders the history list.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		v.styles.Title.Render("History"),
		"",
		v.list.View(),
		"",
		v.statusbar.View(),
	)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.ready = true
	v.list.SetDimensions(width, height-5)
	v.statusbar.SetWidth(width)
}

// Count returns the number of listed searches.
func (v *View) Count() int {
	return v.list.Count()
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}
