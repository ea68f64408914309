package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/deepscout/internal/core/domain"
	"github.com/custodia-labs/deepscout/internal/core/ports/driven"
	"github.com/custodia-labs/deepscout/internal/logger"
)

// FollowupContext is the material a follow-up answer is built from.
type FollowupContext struct {
	// Text is the prompt context: sources or links, then the history.
	Text string

	// Pages are the stored pages of a deep search.
	Pages []domain.WebPage

	// Links are fresh search-engine results for a shallow search.
	Links []domain.Candidate
}

// ConversationManager builds follow-up context for a Search.
type ConversationManager struct {
	pages      driven.WebPageStore
	provider   driven.SearchProvider
	maxContext int
	maxResults int
}

// NewConversationManager creates a conversation manager.
func NewConversationManager(
	pages driven.WebPageStore,
	provider driven.SearchProvider,
	settings domain.AppSettings,
) *ConversationManager {
	return &ConversationManager{
		pages:      pages,
		provider:   provider,
		maxContext: settings.Deep.MaxContextChars,
		maxResults: settings.MaxResults,
	}
}

// BuildContext assembles the context for answering question about search.
// Deep searches use their stored pages; shallow searches re-query the engine.
func (m *ConversationManager) BuildContext(
	ctx context.Context,
	search *domain.Search,
	question string,
) (*FollowupContext, error) {
	fc := &FollowupContext{}
	var sb strings.Builder

	switch search.Mode {
	case domain.SearchModeDeep:
		pages, err := m.pages.ListBySearch(ctx, search.ID)
		if err != nil {
			return nil, fmt.Errorf("load pages: %w", err)
		}
		fc.Pages = pages
		sb.WriteString("Sources:\n")
		sb.WriteString(truncateRunes(aggregatePages(pages), m.maxContext))

	default:
		if m.provider != nil {
			links, err := m.provider.Search(ctx, question, m.maxResults)
			if err != nil {
				logger.Warn("follow-up link search failed: %v", err)
			}
			fc.Links = links
		}
		sb.WriteString("Original query: ")
		sb.WriteString(search.Query)
		if len(fc.Links) > 0 {
			sb.WriteString("\n\nRelated links:\n")
			for _, l := range fc.Links {
				fmt.Fprintf(&sb, "- %s (%s)\n", l.Title, l.URL)
			}
		}
	}

	if history := BuildFollowupContext(search.Conversation); history != "" {
		sb.WriteString("\n\nConversation so far:\n\n")
		sb.WriteString(history)
	}

	fc.Text = sb.String()
	return fc, nil
}

// BuildFollowupContext renders a history as "Question/Answer" blocks.
// Entries are consumed in pairs; a trailing unpaired entry is ignored.
func BuildFollowupContext(history domain.Conversation) string {
	blocks := make([]string, 0, len(history)/2)
	for i := 0; i+1 < len(history); i += 2 {
		blocks = append(blocks, fmt.Sprintf("Question: %s\nAnswer: %s",
			history[i].Content, history[i+1].Content))
	}
	return strings.Join(blocks, "\n\n")
}

// AppendTurn returns a new history with one more entry. history is not modified.
func AppendTurn(history domain.Conversation, role domain.Role, content string) domain.Conversation {
	out := make(domain.Conversation, len(history), len(history)+1)
	copy(out, history)
	return append(out, domain.Turn{Role: role, Content: content})
}

// aggregatePages concatenates pages as "# title" sections in order.
func aggregatePages(pages []domain.WebPage) string {
	var sb strings.Builder
	for _, p := range pages {
		sb.WriteString("\n\n# ")
		sb.WriteString(p.Title)
		sb.WriteString("\n\n")
		sb.WriteString(p.Content)
	}
	return sb.String()
}

// truncateRunes returns the longest prefix of s with at most limit runes.
// A non-positive limit disables truncation.
func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
