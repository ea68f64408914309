package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/deepscout/internal/core/domain"
	"github.com/custodia-labs/deepscout/internal/core/ports/driven"
	"github.com/custodia-labs/deepscout/internal/core/ports/driving"
	"github.com/custodia-labs/deepscout/internal/logger"
)

// Ensure ResearchService implements the interface.
var _ driving.ResearchService = (*ResearchService)(nil)

// failureExcerptChars bounds the content excerpt embedded in a failed report.
const failureExcerptChars = 500

// pipelineState names the stages of a deep search.
type pipelineState string

const (
	stateExpanding    pipelineState = "EXPANDING"
	stateHarvesting   pipelineState = "HARVESTING"
	stateFetching     pipelineState = "FETCHING"
	stateSynthesizing pipelineState = "SYNTHESIZING"
	stateDone         pipelineState = "DONE"
	stateNoContent    pipelineState = "NO_CONTENT"
)

// ResearchService answers shallow and deep searches and their follow-ups.
// Every network-bound step runs sequentially on the calling goroutine.
type ResearchService struct {
	searches driven.SearchStore
	pages    driven.WebPageStore
	provider driven.SearchProvider
	fetcher  driven.PageFetcher
	expander *QueryExpander
	synth    *Synthesizer
	convo    *ConversationManager
	settings domain.AppSettings

	newID func() string
	now   func() time.Time
}

// NewResearchService creates a research service.
func NewResearchService(
	searches driven.SearchStore,
	pages driven.WebPageStore,
	provider driven.SearchProvider,
	fetcher driven.PageFetcher,
	expander *QueryExpander,
	synth *Synthesizer,
	settings domain.AppSettings,
) *ResearchService {
	return &ResearchService{
		searches: searches,
		pages:    pages,
		provider: provider,
		fetcher:  fetcher,
		expander: expander,
		synth:    synth,
		convo:    NewConversationManager(pages, provider, settings),
		settings: settings,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// Search dispatches to ShallowSearch or DeepSearch by mode.
func (s *ResearchService) Search(ctx context.Context, query string, mode domain.SearchMode) (*domain.Outcome, error) {
	switch mode {
	case domain.SearchModeShallow:
		return s.ShallowSearch(ctx, query)
	case domain.SearchModeDeep:
		return s.DeepSearch(ctx, query)
	default:
		return nil, fmt.Errorf("%w: search mode %q", domain.ErrUnsupportedType, mode)
	}
}

// ShallowSearch answers with one LLM call plus fresh search-engine links.
// A missing API key yields the key-not-configured text; the record is saved regardless.
func (s *ResearchService) ShallowSearch(ctx context.Context, query string) (*domain.Outcome, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is empty", domain.ErrInvalidInput)
	}

	start := time.Now()
	logger.Section("Shallow search")

	mode := SynthesisPlain
	if s.settings.DetailedAnswers {
		mode = SynthesisDetailed
	}
	answer := s.synth.Synthesize(ctx, mode, query, "")

	var links []domain.Candidate
	if s.provider != nil {
		var err error
		links, err = s.provider.Search(ctx, query, s.settings.MaxResults)
		if err != nil {
			logger.Warn("search engine query failed: %v", err)
		}
	}

	search := s.newSearch(query, domain.SearchModeShallow, answer)
	search.Conversation = domain.Conversation{
		{Role: domain.RoleUser, Content: query},
		{Role: domain.RoleAssistant, Content: answer},
	}
	if err := s.searches.Create(ctx, search); err != nil {
		return nil, fmt.Errorf("create search: %w", err)
	}

	logger.Elapsed("shallow search", start)
	return &domain.Outcome{
		Search: search.Clone(),
		Links:  links,
		Answer: answer,
	}, nil
}

// DeepSearch runs EXPANDING, HARVESTING, FETCHING and SYNTHESIZING in order.
// The Search record is created before any search-engine traffic, so its ID is
// valid even if a later stage fails. Per-URL failures never abort the run.
func (s *ResearchService) DeepSearch(ctx context.Context, query string) (*domain.Outcome, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is empty", domain.ErrInvalidInput)
	}

	start := time.Now()

	s.enter(stateExpanding)
	subQueries := s.expand(ctx, query)

	s.enter(stateHarvesting)
	search := s.newSearch(query, domain.SearchModeDeep, domain.MsgSearchInProgress)
	if err := s.searches.Create(ctx, search); err != nil {
		return nil, fmt.Errorf("create search: %w", err)
	}
	urls := s.harvest(ctx, subQueries)
	logger.Info("Harvested %d unique URLs from %d sub-queries", len(urls), len(subQueries))

	s.enter(stateFetching)
	var aggregate strings.Builder
	var accepted []domain.WebPage
	for _, u := range urls {
		res := s.processURL(ctx, search.ID, u)
		switch {
		case res.OK():
			aggregate.WriteString("\n\n# " + res.Page.Title + "\n\n" + res.Page.Content)
			accepted = append(accepted, *res.Page)
		case res.Skipped:
			logger.Debug("Skipped %s: %v", res.URL, res.Err)
		default:
			logger.Warn("Failed %s: %v", res.URL, res.Err)
		}
	}
	logger.Info("Accepted %d of %d pages", len(accepted), len(urls))

	var response string
	if len(accepted) == 0 {
		s.enter(stateNoContent)
		response = domain.MsgNoContent
	} else {
		s.enter(stateSynthesizing)
		response = s.synthesizeReport(ctx, query, aggregate.String())
	}

	search.Response = response
	search.Conversation = domain.Conversation{
		{Role: domain.RoleUser, Content: query},
		{Role: domain.RoleAssistant, Content: response},
	}
	search.UpdatedAt = s.now()
	if err := s.searches.Save(ctx, search); err != nil {
		return nil, fmt.Errorf("save search: %w", err)
	}

	if len(accepted) > 0 {
		s.enter(stateDone)
	}
	logger.Elapsed("deep search", start)

	return &domain.Outcome{
		Search: search.Clone(),
		Pages:  accepted,
		Answer: response,
	}, nil
}

// Ask answers a follow-up question against an existing search and records
// the exchange in its conversation.
func (s *ResearchService) Ask(ctx context.Context, searchID, question string) (*domain.Outcome, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is empty", domain.ErrInvalidInput)
	}

	search, err := s.searches.Get(ctx, searchID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("search %s: %w", searchID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get search: %w", err)
	}

	fc, err := s.convo.BuildContext(ctx, search, question)
	if err != nil {
		return nil, err
	}

	mode := SynthesisFollowup
	if search.Mode == domain.SearchModeDeep {
		mode = SynthesisDeepFollowup
	}
	answer := s.synth.Synthesize(ctx, mode, question, fc.Text)

	search.Conversation = AppendTurn(search.Conversation, domain.RoleUser, question)
	search.Conversation = AppendTurn(search.Conversation, domain.RoleAssistant, answer)
	search.UpdatedAt = s.now()
	if err := s.searches.Save(ctx, search); err != nil {
		return nil, fmt.Errorf("save search: %w", err)
	}

	return &domain.Outcome{
		Search: search.Clone(),
		Pages:  fc.Pages,
		Links:  fc.Links,
		Answer: answer,
	}, nil
}

// Get retrieves a search with its pages.
func (s *ResearchService) Get(ctx context.Context, searchID string) (*domain.Outcome, error) {
	search, err := s.searches.Get(ctx, searchID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("search %s: %w", searchID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get search: %w", err)
	}

	pages, err := s.pages.ListBySearch(ctx, searchID)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}

	return &domain.Outcome{
		Search: search.Clone(),
		Pages:  pages,
		Answer: search.Response,
	}, nil
}

// List returns recent searches, newest first.
func (s *ResearchService) List(ctx context.Context, limit int) ([]domain.Search, error) {
	searches, err := s.searches.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list searches: %w", err)
	}
	return searches, nil
}

func (s *ResearchService) enter(state pipelineState) {
	logger.Section(string(state))
}

func (s *ResearchService) newSearch(query string, mode domain.SearchMode, response string) *domain.Search {
	now := s.now()
	return &domain.Search{
		ID:           s.newID(),
		Query:        query,
		Mode:         mode,
		Response:     response,
		Conversation: domain.Conversation{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// expand returns the sub-queries to harvest. A failed expansion yields none.
func (s *ResearchService) expand(ctx context.Context, query string) []string {
	if s.expander == nil {
		return nil
	}
	subQueries, err := s.expander.Expand(ctx, query, s.settings.Deep.SubQueries)
	if err != nil {
		logger.Warn("query expansion failed: %v", err)
		return nil
	}
	for i, q := range subQueries {
		logger.Debug("Sub-query %d: %s", i+1, q)
	}
	return subQueries
}

// harvest merges the result URLs of every sub-query, first occurrence wins.
func (s *ResearchService) harvest(ctx context.Context, subQueries []string) []string {
	if s.provider == nil {
		return nil
	}
	seen := make(map[string]bool)
	var urls []string
	for _, q := range subQueries {
		results, err := s.provider.Search(ctx, q, s.settings.Deep.ResultsPerQuery)
		if err != nil {
			logger.Warn("search for %q failed: %v", q, err)
		}
		for _, r := range results {
			if r.URL == "" || seen[r.URL] {
				continue
			}
			seen[r.URL] = true
			urls = append(urls, r.URL)
		}
	}
	return urls
}

// processURL fetches one URL and persists it if accepted.
// It never panics or returns an error; the outcome is carried in the result.
func (s *ResearchService) processURL(ctx context.Context, searchID, url string) (res domain.PageResult) {
	res.URL = url
	defer func() {
		if r := recover(); r != nil {
			res = domain.PageResult{URL: url, Err: fmt.Errorf("%w: panic: %v", domain.ErrFetchFailed, r)}
		}
	}()

	fetched, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		res.Err = err
		return res
	}

	content := strings.TrimSpace(fetched.Content)
	if len([]rune(content)) < s.settings.Deep.MinContentChars {
		res.Skipped = true
		res.Err = domain.ErrContentTooShort
		return res
	}

	title := strings.TrimSpace(fetched.Title)
	if title == "" {
		title = url
	}
	icon := fetched.IconURL
	if icon == "" {
		icon = domain.DefaultIconURL
	}

	page := &domain.WebPage{
		ID:        s.newID(),
		SearchID:  searchID,
		URL:       url,
		Title:     title,
		IconURL:   icon,
		Content:   content,
		CreatedAt: s.now(),
	}
	if err := s.pages.Add(ctx, page); err != nil {
		res.Err = fmt.Errorf("store page: %w", err)
		return res
	}

	res.Page = page
	return res
}

// synthesizeReport truncates the aggregate and generates the report.
// Failures become display text that embeds an excerpt of the sources.
func (s *ResearchService) synthesizeReport(ctx context.Context, query, aggregate string) string {
	sources := truncateRunes(aggregate, s.settings.Deep.MaxContextChars)

	report, err := s.synth.Generate(ctx, SynthesisReport, query, sources)
	switch {
	case err == nil:
		return report
	case errors.Is(err, domain.ErrAPIKeyMissing):
		return domain.MsgReportKeyNotConfigured
	default:
		logger.Error("report synthesis failed: %v", err)
		excerpt := truncateRunes(strings.TrimSpace(sources), failureExcerptChars)
		return fmt.Sprintf(domain.MsgSynthesisFailed, err.Error(), excerpt)
	}
}
