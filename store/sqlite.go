package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// ErrSinkClosed is returned when writing to a closed sink
var ErrSinkClosed = errors.New("sink is closed")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	direction  TEXT NOT NULL,
	started_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS trees (
	run_id     TEXT NOT NULL REFERENCES runs(id),
	source     TEXT NOT NULL,
	tree_index INTEGER NOT NULL,
	tree_id    TEXT NOT NULL,
	sentence   TEXT NOT NULL,
	output     TEXT NOT NULL,
	error      TEXT
);
CREATE INDEX IF NOT EXISTS trees_tree_id ON trees (tree_id);
`

// Row is a stored tree as read back from the corpus database.
type Row struct {
	Source   string
	Index    int
	TreeID   string
	Sentence string
	Output   string
	Error    string // empty for a successful tree
}

// SQLiteSink stores every record of one run, failures included, in a SQLite
// corpus database.
type SQLiteSink struct {
	db     *sql.DB
	runID  string
	insert *sql.Stmt
}

// OpenSQLite opens (creating if needed) the database at path and starts a
// new run for direction, such as "tex2cgel".
func OpenSQLite(ctx context.Context, path, direction string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus database: %w", err)
	}

	// a single connection keeps in-memory databases shared
	db.SetMaxOpenConns(1)

	sink, err := newSQLiteSink(ctx, db, direction)
	if err != nil {
		db.Close()
		return nil, err
	}

	return sink, nil
}

func newSQLiteSink(ctx context.Context, db *sql.DB, direction string) (*SQLiteSink, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("failed to create corpus schema: %w", err)
	}

	runID := uuid.NewString()

	_, err := db.ExecContext(ctx,
		"INSERT INTO runs (id, direction, started_at) VALUES (?, ?, ?)",
		runID, direction, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("failed to record run: %w", err)
	}

	insert, err := db.PrepareContext(ctx,
		"INSERT INTO trees (run_id, source, tree_index, tree_id, sentence, output, error) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare insert: %w", err)
	}

	return &SQLiteSink{db: db, runID: runID, insert: insert}, nil
}

// RunID identifies the run this sink writes.
func (s *SQLiteSink) RunID() string {
	return s.runID
}

// Write stores rec under the current run.
func (s *SQLiteSink) Write(ctx context.Context, rec Record) error {
	if s.db == nil {
		return ErrSinkClosed
	}

	var message sql.NullString
	if rec.Err != nil {
		message = sql.NullString{String: rec.Err.Error(), Valid: true}
	}

	_, err := s.insert.ExecContext(ctx, s.runID, rec.Source, rec.Index, rec.TreeID, rec.Sentence, rec.Output, message)
	if err != nil {
		return fmt.Errorf("failed to store %s: %w", rec.TreeID, err)
	}

	return nil
}

// Rows reads back the trees of the current run in insertion order.
func (s *SQLiteSink) Rows(ctx context.Context) ([]Row, error) {
	if s.db == nil {
		return nil, ErrSinkClosed
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT source, tree_index, tree_id, sentence, output, error FROM trees WHERE run_id = ? ORDER BY rowid",
		s.runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trees: %w", err)
	}
	defer rows.Close()

	var result []Row

	for rows.Next() {
		var (
			row     Row
			message sql.NullString
		)

		if err := rows.Scan(&row.Source, &row.Index, &row.TreeID, &row.Sentence, &row.Output, &message); err != nil {
			return nil, fmt.Errorf("failed to scan tree: %w", err)
		}

		row.Error = message.String
		result = append(result, row)
	}

	return result, rows.Err()
}

// Close releases the database.
func (s *SQLiteSink) Close() error {
	if s.db == nil {
		return nil
	}

	err := errors.Join(s.insert.Close(), s.db.Close())
	s.db = nil

	if err != nil {
		return fmt.Errorf("failed to close corpus database: %w", err)
	}

	return nil
}
