package list

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deepscout/internal/core/domain"
)

func testSearches() []domain.Search {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	return []domain.Search{
		{ID: "a", Query: "what is rust", Mode: domain.SearchModeShallow, Response: "Rust is a language.\nMore", CreatedAt: now},
		{ID: "b", Query: "history of bread", Mode: domain.SearchModeDeep, Response: "# Bread", CreatedAt: now},
		{ID: "c", Query: "go generics", Mode: domain.SearchModeShallow, CreatedAt: now},
	}
}

func TestSearchList_Empty(t *testing.T) {
	l := NewSearchList(nil)

	assert.Contains(t, l.View(), "No searches yet")
	assert.Nil(t, l.SelectedSearch())
}

func TestSearchList_Navigation(t *testing.T) {
	l := NewSearchList(nil)
	l.SetSearches(testSearches())

	l.MoveUp()
	assert.Equal(t, 0, l.Selected())

	l.MoveDown()
	l.MoveDown()
	l.MoveDown()
	assert.Equal(t, 2, l.Selected())

	require.NotNil(t, l.SelectedSearch())
	assert.Equal(t, "c", l.SelectedSearch().ID)
}

func TestSearchList_SetSearchesResetsSelection(t *testing.T) {
	l := NewSearchList(nil)
	l.SetSearches(testSearches())
	l.MoveDown()

	l.SetSearches(testSearches()[:1])

	assert.Equal(t, 0, l.Selected())
	assert.Equal(t, 1, l.Count())
}

func TestSearchList_View(t *testing.T) {
	l := NewSearchList(nil)
	l.SetDimensions(100, 20)
	l.SetSearches(testSearches())

	view := l.View()

	assert.Contains(t, view, "Searches (3)")
	assert.Contains(t, view, "what is rust")
	assert.Contains(t, view, "[deep]")
	assert.Contains(t, view, "Rust is a language.")
	assert.NotContains(t, view, "More")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ééé...", truncate("éééééééé", 6))
}
