package main

import (
	"database/sql"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/CTAG07/ngramgen/pkg/history"
	"github.com/spf13/cobra"
)

func newHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect sentences recorded by earlier generate runs",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List recorded runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, store, err := a.openHistory()
			if err != nil {
				return err
			}
			defer func() {
				store.Close()
				_ = db.Close()
			}()

			runs, err := store.Runs(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list runs: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "RUN ID\tCREATED\tORDER\tSEED\tSELECTION\tSENTENCES")
			for _, run := range runs {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%d\n",
					run.ID, run.CreatedAt.Format(time.RFC3339), run.Order, run.Seed, run.Selection, run.Sentences)
			}
			return w.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show RUN_ID",
		Short: "Print the sentences of a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, store, err := a.openHistory()
			if err != nil {
				return err
			}
			defer func() {
				store.Close()
				_ = db.Close()
			}()

			if _, err = store.GetRun(cmd.Context(), args[0]); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return fmt.Errorf("run %s not found", args[0])
				}
				return err
			}
			sentences, err := store.Sentences(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to load sentences: %w", err)
			}
			for _, sentence := range sentences {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), sentence)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm RUN_ID",
		Short: "Delete a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, store, err := a.openHistory()
			if err != nil {
				return err
			}
			defer func() {
				store.Close()
				_ = db.Close()
			}()
			return store.RemoveRun(cmd.Context(), args[0])
		},
	})

	return cmd
}

// openHistory opens the configured history database and prepares its schema.
// The caller closes both the store and the database.
func (a *app) openHistory() (*sql.DB, *history.Store, error) {
	db, err := initDB(a.cfg.History.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err = history.SetupSchema(db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to setup history schema: %w", err)
	}
	store, err := history.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to prepare history store: %w", err)
	}
	store.SetLogger(a.logger)
	return db, store, nil
}
