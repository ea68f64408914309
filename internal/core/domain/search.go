package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// SearchMode selects how a query is answered.
type SearchMode string

// Available search modes.
const (
	// SearchModeShallow is a single LLM call plus a one-shot search-engine query.
	SearchModeShallow SearchMode = "shallow"

	// SearchModeDeep scrapes source pages and synthesises a report from them.
	SearchModeDeep SearchMode = "deep"
)

// IsValid returns true if the search mode is recognised.
func (m SearchMode) IsValid() bool {
	return m == SearchModeShallow || m == SearchModeDeep
}

// String returns the string representation.
func (m SearchMode) String() string {
	return string(m)
}

// ParseSearchMode converts user input to a SearchMode.
// An empty string selects shallow mode.
func ParseSearchMode(s string) (SearchMode, error) {
	if s == "" {
		return SearchModeShallow, nil
	}
	mode := SearchMode(s)
	if !mode.IsValid() {
		return "", fmt.Errorf("%w: search mode %q", ErrUnsupportedType, s)
	}
	return mode, nil
}

// Role identifies the author of a conversation turn.
type Role string

// Conversation roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is a single entry in a Search conversation.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Conversation is the ordered Q&A history of a Search.
type Conversation []Turn

// MarshalText encodes the conversation as the JSON array stored with the record.
func (c Conversation) MarshalText() ([]byte, error) {
	if c == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Turn(c))
}

// UnmarshalText decodes a stored conversation. Empty input yields an empty history.
func (c *Conversation) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*c = Conversation{}
		return nil
	}
	var turns []Turn
	if err := json.Unmarshal(data, &turns); err != nil {
		return fmt.Errorf("decoding conversation: %w", err)
	}
	if turns == nil {
		turns = []Turn{}
	}
	*c = turns
	return nil
}

// Search is a persisted top-level query.
type Search struct {
	// ID is assigned at creation and never changes.
	ID string `json:"id"`

	// Query is the original user query.
	Query string `json:"query"`

	// Mode is shallow or deep.
	Mode SearchMode `json:"mode"`

	// Response holds the synthesised answer or report. For deep searches it
	// starts as a placeholder and is overwritten once synthesis completes.
	Response string `json:"response"`

	// Conversation is the follow-up history.
	Conversation Conversation `json:"conversation"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Candidate is a search-engine result before fetching. Not persisted.
type Candidate struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Outcome is the single envelope returned by research operations.
// Display text (answers, sentinel messages) always lives in the text fields;
// only lookup and storage failures are returned as Go errors.
type Outcome struct {
	// Search is a snapshot of the record taken after the operation committed.
	Search Search `json:"search"`

	// Pages are the WebPages owned by the search (deep mode).
	Pages []WebPage `json:"pages,omitempty"`

	// Links are fresh search-engine results (shallow mode).
	Links []Candidate `json:"links,omitempty"`

	// Answer is the text produced by this operation: the initial response
	// for a new search, or the follow-up answer for Ask.
	Answer string `json:"answer"`
}

// Clone returns a copy that shares no mutable state with s.
func (s Search) Clone() Search {
	out := s
	if s.Conversation != nil {
		out.Conversation = make(Conversation, len(s.Conversation))
		copy(out.Conversation, s.Conversation)
	}
	return out
}
