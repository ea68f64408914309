package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deepscout/internal/core/domain"
)

func TestListCmd_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := runCmd("list")

	require.NoError(t, err)
	assert.Contains(t, out, "No searches yet.")
	assert.Equal(t, 20, researchService.(*mockResearchService).lastLimit)
}

func TestListCmd_PrintsSearches(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	mock := researchService.(*mockResearchService)
	mock.searches = []domain.Search{
		{ID: "id-1", Query: "first", Mode: domain.SearchModeShallow, CreatedAt: time.Now()},
		{ID: "id-2", Query: "second", Mode: domain.SearchModeDeep, CreatedAt: time.Now()},
	}

	out, err := runCmd("list", "-n", "5")

	require.NoError(t, err)
	assert.Equal(t, 5, mock.lastLimit)
	assert.Contains(t, out, "id-1")
	assert.Contains(t, out, "second")
	assert.Contains(t, out, "deep")
}

func TestListCmd_RejectsArgs(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := runCmd("list", "extra")

	assert.Error(t, err)
}
