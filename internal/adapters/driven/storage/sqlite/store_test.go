package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deepscout/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

// createTestSearch inserts a search to satisfy foreign key constraints.
func createTestSearch(t *testing.T, store *Store, id string, created time.Time) *domain.Search {
	t.Helper()
	search := &domain.Search{
		ID:        id,
		Query:     "query " + id,
		Mode:      domain.SearchModeDeep,
		Response:  domain.MsgSearchInProgress,
		CreatedAt: created,
		UpdatedAt: created,
	}
	require.NoError(t, store.SearchStore().Create(context.Background(), search))
	return search
}

// ==================== Store Creation ====================

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "deepscout.db"), store.Path())
	_, err = os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestNewStore_MigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	createTestSearch(t, first, "s1", time.Now())
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	var versions int
	require.NoError(t, second.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&versions))
	assert.Equal(t, 1, versions)

	got, err := second.SearchStore().Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "query s1", got.Query)
}

// ==================== Search Store ====================

func TestSearchStore_CreateAndGet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	search := &domain.Search{
		ID:       "s1",
		Query:    "how do tides work",
		Mode:     domain.SearchModeShallow,
		Response: "the moon",
		Conversation: domain.Conversation{
			{Role: domain.RoleUser, Content: "how do tides work"},
			{Role: domain.RoleAssistant, Content: "the moon"},
		},
		CreatedAt: created,
		UpdatedAt: created,
	}
	require.NoError(t, store.SearchStore().Create(ctx, search))

	got, err := store.SearchStore().Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, search.Query, got.Query)
	assert.Equal(t, domain.SearchModeShallow, got.Mode)
	assert.Equal(t, "the moon", got.Response)
	assert.Equal(t, search.Conversation, got.Conversation)
	assert.True(t, created.Equal(got.CreatedAt))
}

func TestSearchStore_Create_EmptyConversationStoredAsArray(t *testing.T) {
	store := setupTestStore(t)
	createTestSearch(t, store, "s1", time.Now())

	var raw string
	require.NoError(t, store.db.QueryRow("SELECT conversation FROM searches WHERE id = 's1'").Scan(&raw))
	assert.Equal(t, "[]", raw)

	got, err := store.SearchStore().Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.NotNil(t, got.Conversation)
	assert.Empty(t, got.Conversation)
}

func TestSearchStore_Create_Duplicate(t *testing.T) {
	store := setupTestStore(t)
	createTestSearch(t, store, "s1", time.Now())

	err := store.SearchStore().Create(context.Background(), &domain.Search{ID: "s1", Query: "q", Mode: domain.SearchModeDeep})
	assert.Error(t, err)
}

func TestSearchStore_Create_InvalidMode(t *testing.T) {
	store := setupTestStore(t)
	err := store.SearchStore().Create(context.Background(), &domain.Search{ID: "s1", Query: "q", Mode: "wide"})
	assert.Error(t, err)
}

func TestSearchStore_Get_NotFound(t *testing.T) {
	store := setupTestStore(t)
	_, err := store.SearchStore().Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSearchStore_Save_VisibleToGet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	search := createTestSearch(t, store, "s1", time.Now())

	search.Response = "final report"
	search.Conversation = domain.Conversation{
		{Role: domain.RoleUser, Content: "query s1"},
		{Role: domain.RoleAssistant, Content: "final report"},
	}
	search.UpdatedAt = time.Now().Add(time.Minute)
	require.NoError(t, store.SearchStore().Save(ctx, search))

	got, err := store.SearchStore().Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "final report", got.Response)
	assert.Equal(t, search.Conversation, got.Conversation)
}

func TestSearchStore_Save_NotFound(t *testing.T) {
	store := setupTestStore(t)
	err := store.SearchStore().Save(context.Background(), &domain.Search{ID: "ghost", Mode: domain.SearchModeDeep})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSearchStore_List(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		createTestSearch(t, store, fmt.Sprintf("s%d", i), base.Add(time.Duration(i)*time.Hour))
	}

	all, err := store.SearchStore().List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "s4", all[0].ID)
	assert.Equal(t, "s0", all[4].ID)

	limited, err := store.SearchStore().List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "s4", limited[0].ID)
	assert.Equal(t, "s3", limited[1].ID)
}

func TestSearchStore_List_Empty(t *testing.T) {
	store := setupTestStore(t)
	all, err := store.SearchStore().List(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, all)
}

// ==================== WebPage Store ====================

func TestWebPageStore_AddAndList(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	createTestSearch(t, store, "s1", time.Now())
	createTestSearch(t, store, "s2", time.Now())

	pages := store.WebPageStore()
	for i, u := range []string{"https://c.example", "https://a.example", "https://b.example"} {
		require.NoError(t, pages.Add(ctx, &domain.WebPage{
			ID:       fmt.Sprintf("p%d", i),
			SearchID: "s1",
			URL:      u,
			Title:    "Title " + u,
			IconURL:  domain.DefaultIconURL,
			Content:  "content of " + u,
		}))
	}
	require.NoError(t, pages.Add(ctx, &domain.WebPage{ID: "other", SearchID: "s2", URL: "https://x.example"}))

	got, err := pages.ListBySearch(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "https://c.example", got[0].URL, "insertion order is preserved")
	assert.Equal(t, "https://a.example", got[1].URL)
	assert.Equal(t, "https://b.example", got[2].URL)
	assert.Equal(t, "content of https://a.example", got[1].Content)
	assert.Equal(t, domain.DefaultIconURL, got[1].IconURL)
	assert.False(t, got[0].CreatedAt.IsZero())
}

func TestWebPageStore_Add_DuplicateURLInSearch(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	createTestSearch(t, store, "s1", time.Now())

	pages := store.WebPageStore()
	require.NoError(t, pages.Add(ctx, &domain.WebPage{ID: "p1", SearchID: "s1", URL: "https://a.example"}))
	err := pages.Add(ctx, &domain.WebPage{ID: "p2", SearchID: "s1", URL: "https://a.example"})
	assert.Error(t, err)
}

func TestWebPageStore_Add_UnknownSearch(t *testing.T) {
	store := setupTestStore(t)
	err := store.WebPageStore().Add(context.Background(), &domain.WebPage{ID: "p1", SearchID: "ghost", URL: "u"})
	assert.Error(t, err, "foreign key must reject orphan pages")
}

func TestWebPageStore_Add_Invalid(t *testing.T) {
	store := setupTestStore(t)
	err := store.WebPageStore().Add(context.Background(), &domain.WebPage{URL: "u"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWebPageStore_ListBySearch_None(t *testing.T) {
	store := setupTestStore(t)
	got, err := store.WebPageStore().ListBySearch(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Empty(t, got)
}
