package history

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Run describes one invocation of the sentence generator.
type Run struct {
	ID        string
	CreatedAt time.Time
	Order     int
	Seed      uint64
	Selection string
	Inputs    []string
	Sentences int // Number of sentences recorded for the run
}

// SetupSchema initializes the necessary tables in the provided database. It is
// idempotent and safe to call on an already-initialized database.
func SetupSchema(db *sql.DB) error {

	const (
		schemaRuns = `
CREATE TABLE IF NOT EXISTS ngram_runs (
    run_id TEXT PRIMARY KEY,
    created_at INTEGER NOT NULL,
    model_order INTEGER NOT NULL,
    seed INTEGER NOT NULL,
    selection TEXT NOT NULL,
    inputs TEXT NOT NULL
);
`
		schemaSentences = `
CREATE TABLE IF NOT EXISTS ngram_sentences (
    run_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    sentence TEXT NOT NULL,
    PRIMARY KEY (run_id, position)
);
`
	)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.Exec(schemaRuns); err != nil {
		return fmt.Errorf("could not create runs schema: %w", err)
	}

	if _, err = tx.Exec(schemaSentences); err != nil {
		return fmt.Errorf("could not create sentences schema: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	return nil
}

// Store records and lists generation runs. It holds prepared SQL statements
// for efficient database interaction.
type Store struct {
	db               *sql.DB
	stmtInsertRun    *sql.Stmt
	stmtAddSentence  *sql.Stmt
	stmtGetRun       *sql.Stmt
	stmtListRuns     *sql.Stmt
	stmtGetSentences *sql.Stmt
	logger           *slog.Logger
}

// NewStore creates and returns a new Store. SetupSchema must have been called
// on db first. It pre-compiles all necessary SQL statements, returning an
// error if any preparation fails.
func NewStore(db *sql.DB) (store *Store, err error) {
	var prepared []*sql.Stmt
	prepare := func(query string) *sql.Stmt {
		if err != nil {
			return nil
		}
		var stmt *sql.Stmt
		if stmt, err = db.Prepare(query); err != nil {
			return nil
		}
		prepared = append(prepared, stmt)
		return stmt
	}
	defer func() {
		if err != nil {
			for _, stmt := range prepared {
				_ = stmt.Close()
			}
		}
	}()

	stmtInsertRun := prepare(`INSERT INTO ngram_runs (run_id, created_at, model_order, seed, selection, inputs) VALUES (?, ?, ?, ?, ?, ?);`)

	stmtAddSentence := prepare(`INSERT INTO ngram_sentences (run_id, position, sentence) VALUES (?, (SELECT COUNT(*) FROM ngram_sentences WHERE run_id = ?), ?);`)

	stmtGetRun := prepare(`
		SELECT r.run_id, r.created_at, r.model_order, r.seed, r.selection, r.inputs,
		       (SELECT COUNT(*) FROM ngram_sentences s WHERE s.run_id = r.run_id)
		FROM ngram_runs r WHERE r.run_id = ?;`)

	stmtListRuns := prepare(`
		SELECT r.run_id, r.created_at, r.model_order, r.seed, r.selection, r.inputs,
		       (SELECT COUNT(*) FROM ngram_sentences s WHERE s.run_id = r.run_id)
		FROM ngram_runs r ORDER BY r.created_at, r.run_id;`)

	stmtGetSentences := prepare(`SELECT sentence FROM ngram_sentences WHERE run_id = ? ORDER BY position;`)

	if err != nil {
		return nil, fmt.Errorf("failed to prepare history statements: %w", err)
	}

	return &Store{
		db:               db,
		stmtInsertRun:    stmtInsertRun,
		stmtAddSentence:  stmtAddSentence,
		stmtGetRun:       stmtGetRun,
		stmtListRuns:     stmtListRuns,
		stmtGetSentences: stmtGetSentences,
		logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// Close releases all prepared SQL statements held by the Store.
func (s *Store) Close() {
	_ = s.stmtInsertRun.Close()
	_ = s.stmtAddSentence.Close()
	_ = s.stmtGetRun.Close()
	_ = s.stmtListRuns.Close()
	_ = s.stmtGetSentences.Close()
}

// SetLogger sets the logger for the Store. By default, all logs are discarded.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}
