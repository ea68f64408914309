// Package session provides the research conversation view: the first
// submission runs a search, every later one asks a follow-up against it.
package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/deepscout/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/deepscout/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/deepscout/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/deepscout/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/deepscout/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/deepscout/internal/core/domain"
	"github.com/custodia-labs/deepscout/internal/core/ports/driving"
)

const (
	queryLabel       = "Query:"
	queryPlaceholder = "What do you want to know?"
	askLabel         = "Ask:"
	askPlaceholder   = "Follow-up question"

	// rows used by header, prompt and status bar
	chromeHeight = 8
)

// View is the research conversation view.
type View struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	prompt     *input.Prompt
	transcript viewport.Model
	statusbar  *status.Bar

	research driving.ResearchService
	ctx      context.Context

	mode    domain.SearchMode
	search  *domain.Search
	pages   []domain.WebPage
	links   []domain.Candidate
	pending string
	busy    bool
	err     error

	width  int
	height int
	ready  bool
}

// NewView creates a session view in shallow mode.
func NewView(s *styles.Styles, km *keymap.KeyMap, research driving.ResearchService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:     s,
		keymap:     km,
		prompt:     input.NewPrompt(s, queryLabel, queryPlaceholder),
		transcript: viewport.New(80, 24-chromeHeight),
		statusbar:  status.NewBar(s),
		research:   research,
		ctx:        context.Background(),
		mode:       domain.SearchModeShallow,
		width:      80,
		height:     24,
	}
	v.refresh()
	return v
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init starts the prompt cursor.
func (v *View) Init() tea.Cmd {
	return v.prompt.Init()
}

// Update handles messages for the session view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)

	case messages.SearchCompleted:
		v.finish(msg.Outcome, msg.Err)
		return v, nil

	case messages.AnswerReceived:
		v.finish(msg.Outcome, msg.Err)
		return v, nil

	case messages.SearchOpened:
		v.finish(msg.Outcome, msg.Err)
		return v, nil

	case messages.ErrorOccurred:
		v.fail(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.prompt, cmd = v.prompt.Update(msg)
	return v, cmd
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}

	case keymap.Matches(keyStr, v.keymap.PageUp), keymap.Matches(keyStr, v.keymap.PageDown):
		var cmd tea.Cmd
		v.transcript, cmd = v.transcript.Update(msg)
		return v, cmd
	}

	if v.busy {
		return v, nil
	}

	switch {
	case keymap.Matches(keyStr, v.keymap.ToggleMode):
		if v.search == nil {
			v.toggleMode()
		}
		return v, nil

	case keymap.Matches(keyStr, v.keymap.NewSearch):
		v.Reset(v.mode)
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Submit):
		return v, v.submit()
	}

	var cmd tea.Cmd
	v.prompt, cmd = v.prompt.Update(msg)
	return v, cmd
}

func (v *View) submit() tea.Cmd {
	text := strings.TrimSpace(v.prompt.Value())
	if text == "" {
		return nil
	}

	v.prompt.Reset()
	v.pending = text
	v.busy = true
	v.err = nil

	if v.search == nil {
		v.statusbar.SetState(status.StateSearching)
		if v.mode == domain.SearchModeDeep {
			v.statusbar.SetMessage("Deep search: expanding, fetching and synthesising...")
		}
		v.refresh()
		return v.runSearch(text, v.mode)
	}

	v.statusbar.SetState(status.StateAnswering)
	v.refresh()
	return v.runAsk(v.search.ID, text)
}

func (v *View) runSearch(query string, mode domain.SearchMode) tea.Cmd {
	return func() tea.Msg {
		if v.research == nil {
			return messages.ErrorOccurred{Err: ErrNoResearchService}
		}
		out, err := v.research.Search(v.ctx, query, mode)
		return messages.SearchCompleted{Outcome: out, Err: err}
	}
}

func (v *View) runAsk(searchID, question string) tea.Cmd {
	return func() tea.Msg {
		if v.research == nil {
			return messages.ErrorOccurred{Err: ErrNoResearchService}
		}
		out, err := v.research.Ask(v.ctx, searchID, question)
		return messages.AnswerReceived{Outcome: out, Err: err}
	}
}

func (v *View) finish(out *domain.Outcome, err error) {
	v.busy = false
	v.pending = ""
	if err != nil {
		v.fail(err)
		return
	}
	if out == nil {
		v.refresh()
		return
	}
	v.Load(out)
}

func (v *View) fail(err error) {
	v.busy = false
	v.pending = ""
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
	v.refresh()
}

// Load shows an outcome and switches the prompt to follow-up questions.
// Pages replace the current ones only when the outcome carries any.
func (v *View) Load(out *domain.Outcome) {
	search := out.Search.Clone()
	if v.search == nil || v.search.ID != search.ID {
		v.pages = nil
		v.links = nil
	}
	v.search = &search
	v.mode = search.Mode
	if len(out.Pages) > 0 {
		v.pages = out.Pages
	}
	if len(out.Links) > 0 {
		v.links = out.Links
	}

	v.err = nil
	v.prompt.SetLabel(askLabel, askPlaceholder)
	v.prompt.SetWidth(v.width)
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage(v.summary())
	v.refresh()
	v.transcript.GotoBottom()
}

func (v *View) summary() string {
	switch {
	case len(v.pages) > 0:
		return fmt.Sprintf("%d sources", len(v.pages))
	case len(v.links) > 0:
		return fmt.Sprintf("%d links", len(v.links))
	}
	return ""
}

func (v *View) toggleMode() {
	if v.mode == domain.SearchModeDeep {
		v.mode = domain.SearchModeShallow
	} else {
		v.mode = domain.SearchModeDeep
	}
	v.refresh()
}

// Reset starts a fresh session in the given mode. An invalid mode keeps the current one.
func (v *View) Reset(mode domain.SearchMode) {
	if mode.IsValid() {
		v.mode = mode
	}
	v.search = nil
	v.pages = nil
	v.links = nil
	v.pending = ""
	v.busy = false
	v.err = nil
	v.prompt.Reset()
	v.prompt.SetLabel(queryLabel, queryPlaceholder)
	v.prompt.SetWidth(v.width)
	v.prompt.Focus()
	v.statusbar.Clear()
	v.refresh()
}

// refresh re-renders the transcript content and the status hints.
func (v *View) refresh() {
	v.statusbar.SetHints(v.keymap.SessionHelp(v.search != nil))
	v.transcript.SetContent(v.renderTranscript())
}

func (v *View) renderTranscript() string {
	wrap := lipgloss.NewStyle().Width(max(v.width-2, 20))
	var b strings.Builder

	if v.search == nil {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("Mode: %s (tab to switch)", v.mode)))
		b.WriteString("\n")
		if v.pending != "" {
			b.WriteString("\n" + v.renderTurn(domain.Turn{Role: domain.RoleUser, Content: v.pending}, wrap))
		}
		return b.String()
	}

	turns := v.search.Conversation
	if len(turns) == 0 {
		turns = domain.Conversation{
			{Role: domain.RoleUser, Content: v.search.Query},
			{Role: domain.RoleAssistant, Content: v.search.Response},
		}
	}
	for _, t := range turns {
		b.WriteString(v.renderTurn(t, wrap))
		b.WriteString("\n")
	}
	if v.pending != "" {
		b.WriteString(v.renderTurn(domain.Turn{Role: domain.RoleUser, Content: v.pending}, wrap))
		b.WriteString("\n")
	}

	if sources := v.renderSources(); sources != "" {
		b.WriteString(sources)
	}
	return b.String()
}

func (v *View) renderTurn(t domain.Turn, wrap lipgloss.Style) string {
	label := v.styles.AssistantTurn.Render("DeepScout")
	if t.Role == domain.RoleUser {
		label = v.styles.UserTurn.Render("You")
	}
	return label + "\n" + wrap.Render(v.styles.Normal.Render(t.Content)) + "\n"
}

func (v *View) renderSources() string {
	var lines []string
	for _, p := range v.pages {
		lines = append(lines, fmt.Sprintf("  %s  %s", p.Title, v.styles.Link.Render(p.URL)))
	}
	for _, l := range v.links {
		lines = append(lines, fmt.Sprintf("  %s  %s", l.Title, v.styles.Link.Render(l.URL)))
	}
	if len(lines) == 0 {
		return ""
	}
	return v.styles.Subtitle.Render("Sources") + "\n" + strings.Join(lines, "\n") + "\n"
}

// View renders the session.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	title := "DeepScout"
	if v.search != nil {
		title = v.search.Query
	}
	header := v.styles.Title.Render(title) + "  " + v.styles.Muted.Render("["+v.mode.String()+"]")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		v.transcript.View(),
		"",
		v.prompt.View(),
		v.statusbar.View(),
	)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.prompt.SetWidth(width)
	v.statusbar.SetWidth(width)
	v.transcript.Width = width
	v.transcript.Height = max(height-chromeHeight, 3)
	v.refresh()
}

// Mode returns the mode used for the next new search.
func (v *View) Mode() domain.SearchMode {
	return v.mode
}

// Search returns the loaded search, or nil before the first result.
func (v *View) Search() *domain.Search {
	return v.search
}

// Busy reports whether a service call is outstanding.
func (v *View) Busy() bool {
	return v.busy
}

// Err returns the last error, if any.
func (v *View) Err() error {
	return v.err
}

// Transcript returns the rendered conversation.
func (v *View) Transcript() string {
	return v.renderTranscript()
}

// Ready returns whether the view has dimensions.
func (v *View) Ready() bool {
	return v.ready
}
