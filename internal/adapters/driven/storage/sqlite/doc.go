// Package sqlite provides a SQLite-based implementation of the research stores.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. A single connection serves both stores:
//
//   - SearchStore: top-level queries, their responses and conversations
//   - WebPageStore: source pages accepted by deep searches
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.deepscout/data/deepscout.db
//
// # Thread Safety
//
// All operations are thread-safe. Each record mutation commits on its own;
// a deep search interrupted mid-run leaves its placeholder response and
// whatever pages were already written.
package sqlite
