package history

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// setupTestDB creates a new SQLite database and a Store for testing.
// It uses t.Cleanup to ensure resources are released.
func setupTestDB(t *testing.T) (*sql.DB, *Store) {
	dbFile := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite3", dbFile+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := SetupSchema(db); err != nil {
		t.Fatalf("failed to set up schema: %v", err)
	}

	s, err := NewStore(db)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	t.Cleanup(s.Close)

	return db, s
}

func TestSetupSchemaIdempotent(t *testing.T) {
	db, _ := setupTestDB(t)
	if err := SetupSchema(db); err != nil {
		t.Errorf("second SetupSchema() failed: %v", err)
	}
}

func TestStartRunAndAddSentence(t *testing.T) {
	_, s := setupTestDB(t)
	ctx := context.Background()

	run, err := s.StartRun(ctx, Run{Order: 3, Seed: 42, Selection: "per-item", Inputs: []string{"a.txt", "b.txt"}})
	if err != nil {
		t.Fatalf("StartRun() failed: %v", err)
	}
	if run.ID == "" {
		t.Fatal("expected a generated run ID")
	}
	if run.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	for _, sentence := range []string{"First one.", "Second one!"} {
		if err := s.AddSentence(ctx, run.ID, sentence); err != nil {
			t.Fatalf("AddSentence() failed: %v", err)
		}
	}

	got, err := s.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun() failed: %v", err)
	}
	if got.Order != 3 || got.Seed != 42 || got.Selection != "per-item" || got.Sentences != 2 {
		t.Errorf("got unexpected run: %+v", got)
	}
	if !reflect.DeepEqual(got.Inputs, []string{"a.txt", "b.txt"}) {
		t.Errorf("Inputs = %v", got.Inputs)
	}
	if !got.CreatedAt.Equal(run.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, run.CreatedAt)
	}

	sentences, err := s.Sentences(ctx, run.ID)
	if err != nil {
		t.Fatalf("Sentences() failed: %v", err)
	}
	if !reflect.DeepEqual(sentences, []string{"First one.", "Second one!"}) {
		t.Errorf("Sentences() = %q", sentences)
	}
}

func TestRecordRunAndList(t *testing.T) {
	_, s := setupTestDB(t)
	ctx := context.Background()
	base := time.Unix(1700000000, 0)

	first, err := s.RecordRun(ctx, Run{CreatedAt: base, Order: 2, Seed: 1<<63 + 5}, []string{"A.", "B."})
	if err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}
	second, err := s.RecordRun(ctx, Run{CreatedAt: base.Add(time.Minute), Order: 1}, []string{"C?"})
	if err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}
	if first.Sentences != 2 || second.Sentences != 1 {
		t.Errorf("unexpected sentence counts %d and %d", first.Sentences, second.Sentences)
	}

	runs, err := s.Runs(ctx)
	if err != nil {
		t.Fatalf("Runs() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != first.ID || runs[1].ID != second.ID {
		t.Errorf("runs not ordered by creation time: %v", runs)
	}
	if runs[0].Seed != 1<<63+5 {
		t.Errorf("large seed did not survive storage: %d", runs[0].Seed)
	}
}

func TestRecordRunDuplicateIDRollsBack(t *testing.T) {
	db, s := setupTestDB(t)
	ctx := context.Background()

	run, err := s.RecordRun(ctx, Run{ID: "fixed", Order: 2}, []string{"One."})
	if err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}
	if _, err := s.RecordRun(ctx, Run{ID: run.ID, Order: 2}, []string{"Two."}); err == nil {
		t.Fatal("expected an error when recording a duplicate run ID")
	}

	var count int
	_ = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM ngram_sentences WHERE run_id = ?", run.ID).Scan(&count)
	if count != 1 {
		t.Errorf("expected the failed run to leave 1 sentence, found %d", count)
	}
}

func TestRemoveRun(t *testing.T) {
	db, s := setupTestDB(t)
	ctx := context.Background()

	toDelete, _ := s.RecordRun(ctx, Run{Order: 2}, []string{"Delete this."})
	toKeep, _ := s.RecordRun(ctx, Run{Order: 2}, []string{"Keep this."})

	if err := s.RemoveRun(ctx, toDelete.ID); err != nil {
		t.Fatalf("RemoveRun() failed: %v", err)
	}

	if _, err := s.GetRun(ctx, toDelete.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected ErrNoRows for deleted run, got %v", err)
	}

	var count int
	_ = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM ngram_sentences WHERE run_id = ?", toDelete.ID).Scan(&count)
	if count != 0 {
		t.Errorf("expected 0 sentences for deleted run, found %d", count)
	}

	sentences, _ := s.Sentences(ctx, toKeep.ID)
	if len(sentences) != 1 {
		t.Error("expected sentences for kept run to exist")
	}

	if err := s.RemoveRun(ctx, "unknown"); err != nil {
		t.Errorf("removing an unknown run should not fail, got %v", err)
	}
}

func TestNewStoreWithoutSchema(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "partial.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	// Only the runs table exists, so later statements fail to prepare.
	if _, err := db.Exec(`CREATE TABLE ngram_runs (run_id TEXT PRIMARY KEY, created_at INTEGER, model_order INTEGER, seed INTEGER, selection TEXT, inputs TEXT);`); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}

	s, err := NewStore(db)
	if err == nil {
		t.Fatal("expected NewStore() to fail without the sentences table")
	}
	if s != nil {
		t.Error("expected no Store on failure")
	}
}

func TestRemoveRunLogsAfterCommit(t *testing.T) {
	_, s := setupTestDB(t)
	var logs bytes.Buffer
	s.SetLogger(slog.New(slog.NewTextHandler(&logs, nil)))

	run, err := s.RecordRun(context.Background(), Run{Order: 2}, []string{"Gone soon."})
	if err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.RemoveRun(ctx, run.ID); err == nil {
		t.Fatal("expected RemoveRun() to fail with a cancelled context")
	}
	if strings.Contains(logs.String(), "Run removed") {
		t.Errorf("failed removal was logged:\n%s", logs.String())
	}
	if _, err := s.GetRun(context.Background(), run.ID); err != nil {
		t.Errorf("run should survive a failed removal, got %v", err)
	}

	if err := s.RemoveRun(context.Background(), run.ID); err != nil {
		t.Fatalf("RemoveRun() failed: %v", err)
	}
	if !strings.Contains(logs.String(), "Run removed") {
		t.Errorf("expected a removal log entry, got:\n%s", logs.String())
	}
}
