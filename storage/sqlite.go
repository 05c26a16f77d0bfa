package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// OpenSQLite opens (creating if needed) the SQLite database at path and
// ensures the schema exists.
func OpenSQLite(ctx context.Context, path string) (*SQLStore, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("sqlite: create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// a single connection keeps :memory: databases intact and serialises writers
	db.SetMaxOpenConns(1)

	if path != MemoryPath {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite: set journal mode: %w", err)
		}
	}

	return newSQLStore(ctx, db, sqliteDialect)
}
