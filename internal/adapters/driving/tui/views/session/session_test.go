package session

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deepscout/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/deepscout/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/deepscout/internal/core/domain"
)

type mockResearch struct {
	searchMode  domain.SearchMode
	searchQuery string
	askID       string
	askQuestion string
	err         error
}

func (m *mockResearch) Search(_ context.Context, query string, mode domain.SearchMode) (*domain.Outcome, error) {
	m.searchQuery = query
	m.searchMode = mode
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Outcome{
		Search: domain.Search{
			ID: "s1", Query: query, Mode: mode, Response: "the answer",
			Conversation: domain.Conversation{
				{Role: domain.RoleUser, Content: query},
				{Role: domain.RoleAssistant, Content: "the answer"},
			},
		},
		Links:  []domain.Candidate{{Title: "Example", URL: "https://example.com"}},
		Answer: "the answer",
	}, nil
}

func (m *mockResearch) ShallowSearch(ctx context.Context, query string) (*domain.Outcome, error) {
	return m.Search(ctx, query, domain.SearchModeShallow)
}

func (m *mockResearch) DeepSearch(ctx context.Context, query string) (*domain.Outcome, error) {
	return m.Search(ctx, query, domain.SearchModeDeep)
}

func (m *mockResearch) Ask(_ context.Context, searchID, question string) (*domain.Outcome, error) {
	m.askID = searchID
	m.askQuestion = question
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Outcome{
		Search: domain.Search{
			ID: searchID, Query: "q", Mode: domain.SearchModeShallow,
			Conversation: domain.Conversation{
				{Role: domain.RoleUser, Content: "q"},
				{Role: domain.RoleAssistant, Content: "the answer"},
				{Role: domain.RoleUser, Content: question},
				{Role: domain.RoleAssistant, Content: "more detail"},
			},
		},
		Answer: "more detail",
	}, nil
}

func (m *mockResearch) Get(context.Context, string) (*domain.Outcome, error) {
	return nil, domain.ErrNotFound
}

func (m *mockResearch) List(context.Context, int) ([]domain.Search, error) {
	return nil, nil
}

func newTestView(r *mockResearch) *View {
	v := NewView(nil, nil, r)
	v.SetDimensions(100, 40)
	return v
}

func typeText(v *View, text string) *View {
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return v
}

func TestNewView_Defaults(t *testing.T) {
	v := NewView(nil, nil, nil)

	assert.Equal(t, domain.SearchModeShallow, v.Mode())
	assert.Nil(t, v.Search())
	assert.False(t, v.Ready())
	assert.Equal(t, "Initialising...", v.View())
}

func TestView_ToggleMode(t *testing.T) {
	v := newTestView(&mockResearch{})

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, domain.SearchModeDeep, v.Mode())
	assert.Contains(t, v.Transcript(), "Mode: deep")

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, domain.SearchModeShallow, v.Mode())
}

func TestView_EnterEmptyDoesNothing(t *testing.T) {
	v := newTestView(&mockResearch{})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.False(t, v.Busy())
}

func TestView_SubmitRunsSearch(t *testing.T) {
	r := &mockResearch{}
	v := newTestView(r)
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyTab})
	v = typeText(v, "history of bread")

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, v.Busy())
	assert.Contains(t, v.Transcript(), "history of bread")

	msg := cmd()
	completed, ok := msg.(messages.SearchCompleted)
	require.True(t, ok)
	assert.Equal(t, "history of bread", r.searchQuery)
	assert.Equal(t, domain.SearchModeDeep, r.searchMode)

	v, _ = v.Update(completed)
	assert.False(t, v.Busy())
	require.NotNil(t, v.Search())
	assert.Equal(t, "s1", v.Search().ID)
	assert.Contains(t, v.Transcript(), "the answer")
	assert.Contains(t, v.Transcript(), "https://example.com")
	assert.Contains(t, v.View(), "Ask:")
}

func TestView_SubmitAfterSearchAsks(t *testing.T) {
	r := &mockResearch{}
	v := newTestView(r)
	out, _ := r.Search(context.Background(), "q", domain.SearchModeShallow)
	v.Load(out)

	v = typeText(v, "tell me more")
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, status.StateAnswering, v.statusbar.State())

	msg := cmd()
	answered, ok := msg.(messages.AnswerReceived)
	require.True(t, ok)
	assert.Equal(t, "s1", r.askID)
	assert.Equal(t, "tell me more", r.askQuestion)

	v, _ = v.Update(answered)
	assert.Contains(t, v.Transcript(), "more detail")
	// shallow links from the first outcome survive a follow-up without links
	assert.Contains(t, v.Transcript(), "https://example.com")
}

func TestView_TabIgnoredAfterSearch(t *testing.T) {
	r := &mockResearch{}
	v := newTestView(r)
	out, _ := r.Search(context.Background(), "q", domain.SearchModeShallow)
	v.Load(out)

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyTab})

	assert.Equal(t, domain.SearchModeShallow, v.Mode())
}

func TestView_SearchError(t *testing.T) {
	v := newTestView(&mockResearch{})

	v, _ = v.Update(messages.SearchCompleted{Err: errors.New("store down")})

	require.Error(t, v.Err())
	assert.Equal(t, status.StateError, v.statusbar.State())
	assert.Contains(t, v.View(), "store down")
}

func TestView_NilServiceReportsError(t *testing.T) {
	v := NewView(nil, nil, nil)
	v.SetDimensions(80, 24)
	v = typeText(v, "q")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	errMsg, ok := msg.(messages.ErrorOccurred)
	require.True(t, ok)
	assert.ErrorIs(t, errMsg.Err, ErrNoResearchService)
}

func TestView_EscGoesToMenu(t *testing.T) {
	v := newTestView(&mockResearch{})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_ResetClearsSession(t *testing.T) {
	r := &mockResearch{}
	v := newTestView(r)
	out, _ := r.Search(context.Background(), "q", domain.SearchModeShallow)
	v.Load(out)

	v.Reset(domain.SearchModeDeep)

	assert.Nil(t, v.Search())
	assert.Equal(t, domain.SearchModeDeep, v.Mode())
	assert.Contains(t, v.View(), "Query:")
}

func TestView_LoadWithoutConversationShowsResponse(t *testing.T) {
	v := newTestView(&mockResearch{})

	v.Load(&domain.Outcome{
		Search: domain.Search{ID: "d1", Query: "deep q", Mode: domain.SearchModeDeep, Response: domain.MsgNoContent},
	})

	assert.Contains(t, v.Transcript(), "deep q")
	assert.Contains(t, v.Transcript(), "Could not collect enough information")
	assert.Equal(t, domain.SearchModeDeep, v.Mode())
}

func TestView_LoadDeepShowsPages(t *testing.T) {
	v := newTestView(&mockResearch{})

	v.Load(&domain.Outcome{
		Search: domain.Search{ID: "d1", Query: "deep q", Mode: domain.SearchModeDeep, Response: "report"},
		Pages:  []domain.WebPage{{Title: "Bread", URL: "https://bread.example"}},
	})

	assert.Contains(t, v.Transcript(), "Sources")
	assert.Contains(t, v.Transcript(), "https://bread.example")
	assert.Equal(t, "1 sources", v.statusbar.Message())
}
