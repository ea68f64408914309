// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/custodia-labs/deepscout/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the start menu.
	ViewMenu ViewType = iota
	// ViewSession is the query and follow-up conversation.
	ViewSession
	// ViewHistory lists stored searches.
	ViewHistory
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSession:
		return "session"
	case ViewHistory:
		return "history"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views. Mode preselects the
// search mode when opening a fresh session.
type ViewChanged struct {
	View ViewType
	Mode domain.SearchMode
}

// SearchCompleted carries the outcome of a new shallow or deep search.
type SearchCompleted struct {
	Outcome *domain.Outcome
	Err     error
}

// AnswerReceived carries the outcome of a follow-up question.
type AnswerReceived struct {
	Outcome *domain.Outcome
	Err     error
}

// SearchOpened carries a stored search loaded for continuation.
type SearchOpened struct {
	Outcome *domain.Outcome
	Err     error
}

// HistoryLoaded carries recent searches for the history view.
type HistoryLoaded struct {
	Searches []domain.Search
	Err      error
}

// OpenSearch requests loading the search with the given ID.
type OpenSearch struct {
	ID string
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}
