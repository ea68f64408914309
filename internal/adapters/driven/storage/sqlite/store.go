package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/deepscout/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/deepscout/internal/core/domain"
	"github.com/custodia-labs/deepscout/internal/core/ports/driven"
)

// dbFileName is the database file inside the data directory.
const dbFileName = "deepscout.db"

// Store is a SQLite-based storage that provides access to
// the research store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.deepscout/data/deepscout.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".deepscout", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFileName)

	// Pragmas in the DSN apply to every pooled connection; foreign keys drive page cascades.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// SearchStore returns a SearchStore interface backed by this store.
func (s *Store) SearchStore() driven.SearchStore {
	return &searchStore{store: s}
}

// WebPageStore returns a WebPageStore interface backed by this store.
func (s *Store) WebPageStore() driven.WebPageStore {
	return &webPageStore{store: s}
}

// migrate applies every embedded NNN_name.up.sql newer than the recorded version.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.applyMigration(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) applyMigration(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(script); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// ==================== Search Store ====================

// searchStore implements driven.SearchStore.
type searchStore struct {
	store *Store
}

var _ driven.SearchStore = (*searchStore)(nil)

const searchColumns = "id, query, mode, response, conversation, created_at, updated_at"

// Create inserts a new search.
func (s *searchStore) Create(ctx context.Context, search *domain.Search) error {
	if search == nil || search.ID == "" {
		return fmt.Errorf("%w: search ID is required", domain.ErrInvalidInput)
	}

	conversation, err := search.Conversation.MarshalText()
	if err != nil {
		return fmt.Errorf("marshalling conversation: %w", err)
	}

	now := time.Now().UTC()
	if search.CreatedAt.IsZero() {
		search.CreatedAt = now
	}
	if search.UpdatedAt.IsZero() {
		search.UpdatedAt = search.CreatedAt
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO searches (`+searchColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, search.ID, search.Query, search.Mode.String(), search.Response, string(conversation),
		search.CreatedAt.UTC(), search.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("creating search: %w", err)
	}
	return nil
}

// Get retrieves a search by ID.
func (s *searchStore) Get(ctx context.Context, id string) (*domain.Search, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+searchColumns+" FROM searches WHERE id = ?", id)

	search, err := scanSearch(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning search: %w", err)
	}
	return search, nil
}

// Save replaces the response and conversation of an existing search.
func (s *searchStore) Save(ctx context.Context, search *domain.Search) error {
	if search == nil {
		return fmt.Errorf("%w: search is nil", domain.ErrInvalidInput)
	}

	conversation, err := search.Conversation.MarshalText()
	if err != nil {
		return fmt.Errorf("marshalling conversation: %w", err)
	}

	if search.UpdatedAt.IsZero() {
		search.UpdatedAt = time.Now().UTC()
	}

	res, err := s.store.db.ExecContext(ctx, `
		UPDATE searches
		SET query = ?, mode = ?, response = ?, conversation = ?, updated_at = ?
		WHERE id = ?
	`, search.Query, search.Mode.String(), search.Response, string(conversation),
		search.UpdatedAt.UTC(), search.ID)
	if err != nil {
		return fmt.Errorf("saving search: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("saving search: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns the most recent searches, newest first. A non-positive limit returns all.
func (s *searchStore) List(ctx context.Context, limit int) ([]domain.Search, error) {
	query := "SELECT " + searchColumns + " FROM searches ORDER BY created_at DESC, rowid DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying searches: %w", err)
	}
	defer rows.Close()

	var searches []domain.Search //nolint:prealloc // size unknown from query
	for rows.Next() {
		search, err := scanSearch(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning search: %w", err)
		}
		searches = append(searches, *search)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating searches: %w", err)
	}
	return searches, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSearch(row rowScanner) (*domain.Search, error) {
	var search domain.Search
	var mode, conversation string
	var createdAt, updatedAt sql.NullTime

	if err := row.Scan(&search.ID, &search.Query, &mode, &search.Response,
		&conversation, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	search.Mode = domain.SearchMode(mode)
	if err := search.Conversation.UnmarshalText([]byte(conversation)); err != nil {
		return nil, err
	}
	if createdAt.Valid {
		search.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		search.UpdatedAt = updatedAt.Time
	}
	return &search, nil
}

// ==================== WebPage Store ====================

// webPageStore implements driven.WebPageStore.
type webPageStore struct {
	store *Store
}

var _ driven.WebPageStore = (*webPageStore)(nil)

// Add inserts a page after its owning search. Pages are never updated.
func (s *webPageStore) Add(ctx context.Context, page *domain.WebPage) error {
	if page == nil || page.SearchID == "" || page.ID == "" {
		return fmt.Errorf("%w: page ID and search ID are required", domain.ErrInvalidInput)
	}
	if page.CreatedAt.IsZero() {
		page.CreatedAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO webpages (id, search_id, seq, url, title, icon_url, content, created_at)
		VALUES (?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM webpages WHERE search_id = ?), ?, ?, ?, ?, ?)
	`, page.ID, page.SearchID, page.SearchID, page.URL, page.Title, page.IconURL, page.Content,
		page.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("adding page: %w", err)
	}
	return nil
}

// ListBySearch returns the pages of a search in insertion order.
func (s *webPageStore) ListBySearch(ctx context.Context, searchID string) ([]domain.WebPage, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, search_id, url, title, icon_url, content, created_at
		FROM webpages WHERE search_id = ?
		ORDER BY seq
	`, searchID)
	if err != nil {
		return nil, fmt.Errorf("querying pages: %w", err)
	}
	defer rows.Close()

	pages := []domain.WebPage{}
	for rows.Next() {
		var page domain.WebPage
		var createdAt sql.NullTime
		if err := rows.Scan(&page.ID, &page.SearchID, &page.URL, &page.Title,
			&page.IconURL, &page.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning page: %w", err)
		}
		if createdAt.Valid {
			page.CreatedAt = createdAt.Time
		}
		pages = append(pages, page)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pages: %w", err)
	}
	return pages, nil
}
