// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/deepscout/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/deepscout/internal/core/domain"
)

// SearchList displays stored searches in a navigable list.
type SearchList struct {
	searches []domain.Search
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewSearchList creates an empty search list.
func NewSearchList(s *styles.Styles) *SearchList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &SearchList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// View renders the visible window of the list around the selection.
func (l *SearchList) View() string {
	if len(l.searches) == 0 {
		return l.styles.Muted.Render("No searches yet")
	}

	lines := make([]string, 0, len(l.searches)*2+2)
	lines = append(lines, l.styles.Subtitle.Render(fmt.Sprintf("Searches (%d)", len(l.searches))), "")

	// each entry takes two lines
	visible := (l.height - 2) / 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := min(start+visible, len(l.searches))

	for i := start; i < end; i++ {
		lines = append(lines, l.renderSearch(i, &l.searches[i]))
	}
	return strings.Join(lines, "\n")
}

func (l *SearchList) renderSearch(index int, s *domain.Search) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	query := truncate(s.Query, max(l.width-24, 10))
	stamp := s.CreatedAt.Local().Format("2006-01-02 15:04")
	mode := fmt.Sprintf("[%s]", s.Mode)

	var head string
	if index == l.selected {
		head = l.styles.Selected.Render(fmt.Sprintf("%s%-7s %s", indicator, mode, query))
	} else {
		head = l.styles.Normal.Render(fmt.Sprintf("%s%-7s %s", indicator, mode, query))
	}

	preview := strings.TrimSpace(firstLine(s.Response))
	preview = truncate(preview, max(l.width-24, 20))
	return head + "\n" + l.styles.Muted.Render("    "+stamp+"  "+preview)
}

// SetSearches replaces the list contents and resets the selection.
func (l *SearchList) SetSearches(searches []domain.Search) {
	l.searches = searches
	l.selected = 0
}

// Searches returns the current entries.
func (l *SearchList) Searches() []domain.Search {
	return l.searches
}

// Selected returns the index of the selected entry.
func (l *SearchList) Selected() int {
	return l.selected
}

// SelectedSearch returns the selected entry, or nil when the list is empty.
func (l *SearchList) SelectedSearch() *domain.Search {
	if l.selected < 0 || l.selected >= len(l.searches) {
		return nil
	}
	return &l.searches[l.selected]
}

// MoveUp moves selection up.
func (l *SearchList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *SearchList) MoveDown() {
	if l.selected < len(l.searches)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *SearchList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of entries.
func (l *SearchList) Count() int {
	return len(l.searches)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "..."
}
