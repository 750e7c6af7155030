package ngram

import (
	"fmt"
	"log/slog"
	"strings"
)

// Train lower-cases and tokenizes corpus and builds a model of order n. For n > 1 the model
// holds a start distribution and a transition table; for n == 1 it holds a
// single unigram distribution. Training either succeeds completely or returns
// an error before any table is exposed.
func (g *Generator) Train(corpus string, n int) (*Model, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: n must be at least 1, got %d", ErrInvalidOrder, n)
	}

	sentences := SentenceTokens(g.tokenizer, strings.ToLower(corpus))
	if len(sentences) == 0 {
		return nil, ErrEmptyCorpus
	}

	var (
		model *Model
		err   error
	)
	if n == 1 {
		model, err = trainUnigram(sentences)
	} else {
		model, err = trainNGram(sentences, n)
	}
	if err != nil {
		return nil, err
	}

	g.logger.Info("Training completed",
		slog.Int("order", n),
		slog.Int("sentences_processed", model.stats.Sentences),
		slog.Int("tokens_processed", model.stats.Tokens),
		slog.Int("ngrams", model.stats.NGrams),
		slog.Int("start_grams", model.stats.StartGrams),
	)

	return model, nil
}

func trainUnigram(sentences [][]string) (*Model, error) {
	table := CountUnigrams(sentences)
	if table.Len() == 0 {
		return nil, ErrEmptyCorpus
	}
	unigrams := NormalizeUnigrams(table)
	empty := newProbTable(nil)

	return &Model{
		order:    1,
		starts:   empty,
		standard: empty,
		unigrams: unigrams,
		stats:    collectStats(1, sentences, 0, unigrams.Len(), 0),
	}, nil
}

func trainNGram(sentences [][]string, n int) (*Model, error) {
	tableN, tableN1, err := CountNGrams(sentences, n)
	if err != nil {
		return nil, err
	}
	if tableN.Len() == 0 {
		// Every sentence was too short for a window of width n.
		return nil, fmt.Errorf("%w: no sentence has more than %d tokens", ErrEmptyCorpus, n-1)
	}

	probs, err := Normalize(tableN, tableN1)
	if err != nil {
		return nil, fmt.Errorf("normalizing %d-gram counts: %w", n, err)
	}

	starts, standard := SplitStarts(probs)
	if starts.Len() == 0 {
		return nil, ErrEmptyCorpus
	}

	return &Model{
		order:    n,
		starts:   starts,
		standard: standard,
		unigrams: newProbTable(nil),
		stats:    collectStats(n, sentences, len(standard.contexts), probs.Len(), starts.Len()),
	}, nil
}
