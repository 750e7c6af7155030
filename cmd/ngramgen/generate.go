package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/CTAG07/ngramgen/pkg/corpus"
	"github.com/CTAG07/ngramgen/pkg/history"
	"github.com/CTAG07/ngramgen/pkg/ngram"
	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
)

func newGenerateCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "generate N M FILE...",
		Short: "Train an N-gram model on FILEs and print M random sentences",
		Long: "Train an N-gram model on the given plain-text files and print M random sentences.\n" +
			"Use - as a file name to read standard input.",
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parsePositive(args[0])
			if err != nil {
				return err
			}
			m, err := parsePositive(args[1])
			if err != nil {
				return err
			}
			return a.runGenerate(cmd.Context(), cmd.OutOrStdout(), n, m, args[2:], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write sentences to this file instead of stdout")

	return cmd
}

func (a *app) runGenerate(ctx context.Context, stdout io.Writer, n, m int, files []string, output string) error {
	cfg := a.cfg.Generate

	selection, err := ngram.ParseSelection(cfg.Selection)
	if err != nil {
		return err
	}

	gen := ngram.NewGenerator(ngram.NewDefaultTokenizer())
	gen.SetLogger(a.logger)

	model, err := trainFiles(gen, n, files)
	if err != nil {
		return err
	}

	seed := resolveSeed(cfg.Seed)
	rng := ngram.NewRand(seed)
	a.logger.Info("Generating sentences",
		slog.Int("order", n),
		slog.Int("count", m),
		slog.Uint64("seed", seed),
		slog.String("selection", selection.String()),
	)

	sentences := make([]string, 0, m)
	for i := 0; i < m; i++ {
		sentence, err := gen.Generate(model,
			ngram.WithRand(rng),
			ngram.WithSelection(selection),
			ngram.WithMaxLength(cfg.MaxLength),
			ngram.WithMaxDraws(cfg.MaxDraws),
		)
		if err != nil {
			return fmt.Errorf("failed to generate sentence %d of %d: %w", i+1, m, err)
		}
		sentences = append(sentences, sentence)
	}

	var buf bytes.Buffer
	if !cfg.Quiet {
		_, _ = fmt.Fprintf(&buf, "Command line settings: ngramgen %d %d\n", n, m)
	}
	for _, sentence := range sentences {
		buf.WriteString(sentence)
		buf.WriteByte('\n')
	}

	if output != "" {
		if err = atomic.WriteFile(output, &buf); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		a.logger.Info("Sentences written", slog.String("path", output), slog.Int("count", len(sentences)))
	} else if _, err = buf.WriteTo(stdout); err != nil {
		return err
	}

	if a.cfg.History.Enabled {
		run := history.Run{
			Order:     n,
			Seed:      seed,
			Selection: selection.String(),
			Inputs:    files,
		}
		if err = a.recordRun(ctx, run, sentences); err != nil {
			return err
		}
	}
	return nil
}

// trainFiles reads and normalizes files, then trains a model of order n.
func trainFiles(gen *ngram.Generator, n int, files []string) (*ngram.Model, error) {
	text, err := corpus.ReadFiles(files...)
	if err != nil {
		return nil, err
	}
	model, err := gen.Train(text, n)
	if err != nil {
		return nil, fmt.Errorf("failed to train %d-gram model: %w", n, err)
	}
	return model, nil
}

func (a *app) recordRun(ctx context.Context, run history.Run, sentences []string) error {
	db, store, err := a.openHistory()
	if err != nil {
		return err
	}
	defer func() {
		store.Close()
		_ = db.Close()
	}()

	run, err = store.RecordRun(ctx, run, sentences)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	a.logger.Info("Run recorded in history", slog.String("run_id", run.ID))
	return nil
}

// parsePositive accepts only integers greater than zero.
func parsePositive(arg string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%s is not a positive value", arg)
	}
	return value, nil
}

func resolveSeed(seed int64) uint64 {
	if seed < 0 {
		return uint64(time.Now().UnixNano())
	}
	return uint64(seed)
}
