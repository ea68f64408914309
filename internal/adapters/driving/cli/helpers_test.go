package cli

import (
	"bytes"
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/deepscout/internal/core/domain"
	"github.com/custodia-labs/deepscout/internal/core/ports/driving"
)

// mockResearchService records calls and returns canned outcomes.
type mockResearchService struct {
	lastQuery    string
	lastMode     domain.SearchMode
	lastSearchID string
	lastQuestion string
	lastLimit    int

	searches []domain.Search
	err      error
}

var _ driving.ResearchService = (*mockResearchService)(nil)

func (m *mockResearchService) Search(_ context.Context, query string, mode domain.SearchMode) (*domain.Outcome, error) {
	m.lastQuery = query
	m.lastMode = mode
	if m.err != nil {
		return nil, m.err
	}
	out := &domain.Outcome{
		Search: domain.Search{ID: "search-1", Query: query, Mode: mode},
		Answer: "Mock answer for " + query,
	}
	if mode == domain.SearchModeDeep {
		out.Pages = []domain.WebPage{{ID: "p1", SearchID: "search-1", URL: "https://deep.example", Title: "Deep Page"}}
	} else {
		out.Links = []domain.Candidate{{Title: "Shallow Link", URL: "https://shallow.example"}}
	}
	return out, nil
}

func (m *mockResearchService) ShallowSearch(ctx context.Context, query string) (*domain.Outcome, error) {
	return m.Search(ctx, query, domain.SearchModeShallow)
}

func (m *mockResearchService) DeepSearch(ctx context.Context, query string) (*domain.Outcome, error) {
	return m.Search(ctx, query, domain.SearchModeDeep)
}

func (m *mockResearchService) Ask(_ context.Context, searchID, question string) (*domain.Outcome, error) {
	m.lastSearchID = searchID
	m.lastQuestion = question
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Outcome{
		Search: domain.Search{ID: searchID, Mode: domain.SearchModeShallow},
		Answer: "Follow-up answer",
	}, nil
}

func (m *mockResearchService) Get(_ context.Context, searchID string) (*domain.Outcome, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Outcome{
		Search: domain.Search{
			ID: searchID, Query: "stored query", Mode: domain.SearchModeDeep,
			Response:  "# Report\n\nBody",
			CreatedAt: time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC),
			Conversation: domain.Conversation{
				{Role: domain.RoleUser, Content: "stored query"},
				{Role: domain.RoleAssistant, Content: "# Report\n\nBody"},
				{Role: domain.RoleUser, Content: "why?"},
				{Role: domain.RoleAssistant, Content: "because"},
			},
		},
		Pages: []domain.WebPage{{ID: "p1", SearchID: searchID, URL: "https://stored.example", Title: "Stored Page"}},
	}, nil
}

func (m *mockResearchService) List(_ context.Context, limit int) ([]domain.Search, error) {
	m.lastLimit = limit
	return m.searches, m.err
}

// mockSettingsService keeps settings in memory.
type mockSettingsService struct {
	settings domain.AppSettings
	key      string
	setErr   error
}

var _ driving.SettingsService = (*mockSettingsService)(nil)

func newMockSettingsService() *mockSettingsService {
	return &mockSettingsService{settings: domain.DefaultAppSettings()}
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(settings *domain.AppSettings) error {
	m.settings = *settings
	return nil
}

func (m *mockSettingsService) SetLLMProvider(provider domain.AIProvider, model, baseURL string) error {
	if m.setErr != nil {
		return m.setErr
	}
	if !provider.IsValid() {
		return domain.ErrUnsupportedType
	}
	if model == "" {
		model = domain.DefaultLLMModels()[provider]
	}
	m.settings.LLM = domain.LLMSettings{Provider: provider, Model: model, BaseURL: baseURL}
	return nil
}

func (m *mockSettingsService) SetAPIKey(key string) error {
	if key == "" {
		return domain.ErrInvalidInput
	}
	m.key = key
	return nil
}

func (m *mockSettingsService) APIKeySource() string {
	if m.key == "" {
		return "not configured"
	}
	return "config file"
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (m *mockSettingsService) ConfigPath() string {
	return "/tmp/deepscout/config.toml"
}

// setupTestServices installs fresh mocks and returns a cleanup func.
func setupTestServices() func() {
	prevResearch, prevSettings, prevWatcher := researchService, settingsService, promptWatcher
	researchService = &mockResearchService{}
	settingsService = newMockSettingsService()
	promptWatcher = nil
	resetFlags(rootCmd)

	return func() {
		researchService, settingsService, promptWatcher = prevResearch, prevSettings, prevWatcher
		resetFlags(rootCmd)
	}
}

// resetFlags restores every flag to its default so tests do not leak state.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue) //nolint:errcheck // defaults always parse
		f.Changed = false
	})
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// runCmd executes rootCmd with args and returns the combined output.
func runCmd(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(new(bytes.Buffer))
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
