// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package consolidate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// dbFile is the SQLite index written next to the consolidated JSON.
const dbFile = "analysis.db"

// ErrNotFound reports a lookup miss for a cleansed player name.
var ErrNotFound = errors.New("player not found")

// Index is a queryable SQLite copy of the consolidated lookup. The
// JSON file stays the canonical handoff format; the index exists so
// individual players can be looked up without re-reading every file.
type Index struct {
	db *sql.DB
}

// OpenIndex opens or creates the index database in dir.
func OpenIndex(dir string) (*Index, error) {
	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening index database: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS players (
		name TEXT PRIMARY KEY,
		analysis TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating index schema: %w", err)
	}

	return &Index{db: db}, nil
}

// Close releases the database connection.
func (x *Index) Close() error {
	return x.db.Close()
}

// Rebuild replaces the index contents with the given lookup. The
// consolidation run owns the index, so a full rewrite per run mirrors
// the JSON file's rebuild-from-scratch semantics.
func (x *Index) Rebuild(ctx context.Context, lookup map[string]string) error {
	tx, err := x.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning index transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM players`); err != nil {
		return fmt.Errorf("clearing index: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO players (name, analysis) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing index insert: %w", err)
	}
	defer stmt.Close()

	for name, analysis := range lookup {
		if _, err := stmt.ExecContext(ctx, name, analysis); err != nil {
			return fmt.Errorf("indexing %q: %w", name, err)
		}
	}

	return tx.Commit()
}

// Lookup returns the analysis stored under a final lookup key (already
// cleansed and alias-resolved).
func (x *Index) Lookup(ctx context.Context, name string) (string, error) {
	var analysis string
	err := x.db.QueryRowContext(ctx,
		`SELECT analysis FROM players WHERE name = ?`, name,
	).Scan(&analysis)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("querying index: %w", err)
	}
	return analysis, nil
}
