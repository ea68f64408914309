package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/deepscout/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/deepscout/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/deepscout/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/deepscout/internal/adapters/driving/tui/views/history"
	"github.com/custodia-labs/deepscout/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/deepscout/internal/adapters/driving/tui/views/session"
)

// App is the root Bubbletea model. It routes messages to the active view.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles

	menuView    *menu.View
	sessionView *session.View
	historyView *history.View

	currentView messages.ViewType

	// openID is a search to load on start.
	openID string

	err    error
	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		menuView:    menu.NewView(s),
		sessionView: session.NewView(s, km, ports.Research),
		historyView: history.NewView(s, km, ports.Research),
		currentView: messages.ViewMenu,
	}, nil
}

// WithContext sets the context for service calls made by the views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.sessionView.WithContext(ctx)
	a.historyView.WithContext(ctx)
	return a
}

// WithSearch opens the given search in the session view on start.
func (a *App) WithSearch(id string) *App {
	a.openID = id
	if id != "" {
		a.currentView = messages.ViewSession
	}
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tea.SetWindowTitle("deepscout"),
		a.sessionView.Init(),
	}
	if a.openID != "" {
		cmds = append(cmds, a.openSearch(a.openID))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.routeToCurrent(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewSession:
			a.sessionView.Reset(msg.Mode)
			return a, a.sessionView.Init()
		case messages.ViewHistory:
			return a, a.historyView.Load()
		case messages.ViewMenu:
		}
		return a, nil

	case messages.OpenSearch:
		return a, a.openSearch(msg.ID)

	case messages.SearchOpened:
		a.err = msg.Err
		if msg.Err != nil {
			return a, a.routeToCurrent(messages.ErrorOccurred{Err: msg.Err})
		}
		a.sessionView.Reset("")
		a.currentView = messages.ViewSession
		a.sessionView, cmd = a.sessionView.Update(msg)
		return a, cmd

	case messages.SearchCompleted, messages.AnswerReceived:
		a.sessionView, cmd = a.sessionView.Update(msg)
		a.err = a.sessionView.Err()
		return a, cmd

	case messages.HistoryLoaded:
		a.historyView, cmd = a.historyView.Update(msg)
		a.err = msg.Err
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, a.routeToCurrent(msg)
	}

	return a, a.routeToCurrent(msg)
}

func (a *App) routeToCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSession:
		a.sessionView, cmd = a.sessionView.Update(msg)
	case messages.ViewHistory:
		a.historyView, cmd = a.historyView.Update(msg)
	}
	return cmd
}

func (a *App) openSearch(id string) tea.Cmd {
	research := a.ports.Research
	ctx := a.ctx
	return func() tea.Msg {
		out, err := research.Get(ctx, id)
		return messages.SearchOpened{Outcome: out, Err: err}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	switch a.currentView {
	case messages.ViewSession:
		return a.sessionView.View()
	case messages.ViewHistory:
		return a.historyView.View()
	case messages.ViewMenu:
	}
	return a.menuView.View()
}

// Run starts the program in the alternate screen and blocks until it exits.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the active view.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Session returns the session view.
func (a *App) Session() *session.View {
	return a.sessionView
}

// Err returns the last error that reached the app.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sizes every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.sessionView.SetDimensions(width, height)
	a.historyView.SetDimensions(width, height)
}
