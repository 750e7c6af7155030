package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// StartRun inserts a new run. A missing ID is generated and a zero CreatedAt
// is set to the current time; the stored run is returned.
func (s *Store) StartRun(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	inputs, err := json.Marshal(run.Inputs)
	if err != nil {
		return Run{}, fmt.Errorf("failed to encode inputs for run %s: %w", run.ID, err)
	}

	_, err = s.stmtInsertRun.ExecContext(ctx, run.ID, run.CreatedAt.UnixNano(), run.Order, int64(run.Seed), run.Selection, string(inputs))
	if err != nil {
		return Run{}, fmt.Errorf("failed to insert run %s: %w", run.ID, err)
	}
	run.Sentences = 0
	return run, nil
}

// AddSentence appends a sentence to the end of a run.
func (s *Store) AddSentence(ctx context.Context, runID, sentence string) error {
	if _, err := s.stmtAddSentence.ExecContext(ctx, runID, runID, sentence); err != nil {
		return fmt.Errorf("failed to add sentence to run %s: %w", runID, err)
	}
	return nil
}

// RecordRun inserts a run together with all of its sentences. The operation
// is performed within a single transaction.
func (s *Store) RecordRun(ctx context.Context, run Run, sentences []string) (Run, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("could not begin transaction for run: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	txStore := &Store{
		db:              s.db,
		stmtInsertRun:   tx.StmtContext(ctx, s.stmtInsertRun),
		stmtAddSentence: tx.StmtContext(ctx, s.stmtAddSentence),
		logger:          s.logger,
	}

	run, err = txStore.StartRun(ctx, run)
	if err != nil {
		return Run{}, err
	}
	for _, sentence := range sentences {
		if err = txStore.AddSentence(ctx, run.ID, sentence); err != nil {
			return Run{}, err
		}
	}
	run.Sentences = len(sentences)

	if err = tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("could not commit run %s: %w", run.ID, err)
	}

	s.logger.InfoContext(ctx, "Run recorded",
		slog.String("run_id", run.ID),
		slog.Int("order", run.Order),
		slog.Int("sentences", run.Sentences),
	)
	return run, nil
}

// GetRun retrieves a single run by ID. It returns sql.ErrNoRows if the run does not exist.
func (s *Store) GetRun(ctx context.Context, runID string) (Run, error) {
	return scanRun(s.stmtGetRun.QueryRowContext(ctx, runID))
}

// Runs returns every recorded run, oldest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.stmtListRuns.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// Sentences returns the sentences of a run in the order they were generated.
func (s *Store) Sentences(ctx context.Context, runID string) ([]string, error) {
	rows, err := s.stmtGetSentences.QueryContext(ctx, runID)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var sentences []string
	for rows.Next() {
		var sentence string
		if err = rows.Scan(&sentence); err != nil {
			return nil, err
		}
		sentences = append(sentences, sentence)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return sentences, nil
}

// RemoveRun deletes a run and all of its sentences. The operation is performed
// within a transaction. Removing an unknown run is not an error.
func (s *Store) RemoveRun(ctx context.Context, runID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.ExecContext(ctx, "DELETE FROM ngram_sentences WHERE run_id = ?", runID); err != nil {
		return fmt.Errorf("failed to remove sentences for run %s: %w", runID, err)
	}

	if _, err = tx.ExecContext(ctx, "DELETE FROM ngram_runs WHERE run_id = ?", runID); err != nil {
		return fmt.Errorf("failed to remove run %s: %w", runID, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit removal of run %s: %w", runID, err)
	}

	s.logger.InfoContext(ctx, "Run removed", slog.String("run_id", runID))
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run       Run
		createdAt int64
		seed      int64
		inputs    string
	)
	err := row.Scan(&run.ID, &createdAt, &run.Order, &seed, &run.Selection, &inputs, &run.Sentences)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("failed to scan run: %w", err)
	}
	run.CreatedAt = time.Unix(0, createdAt)
	run.Seed = uint64(seed)
	if err = json.Unmarshal([]byte(inputs), &run.Inputs); err != nil {
		return Run{}, fmt.Errorf("failed to decode inputs of run %s: %w", run.ID, err)
	}
	return run, nil
}
