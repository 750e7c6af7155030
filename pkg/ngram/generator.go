package ngram

import (
	"io"
	"log/slog"
)

// Generator is the main entry point for training models and sampling
// sentences from them. It holds the tokenizer shared by both steps and a
// logger.
type Generator struct {
	tokenizer Tokenizer
	logger    *slog.Logger
}

// NewGenerator creates and returns a new Generator using the given Tokenizer.
// A nil tokenizer falls back to NewDefaultTokenizer.
func NewGenerator(tokenizer Tokenizer) *Generator {
	if tokenizer == nil {
		tokenizer = NewDefaultTokenizer()
	}
	return &Generator{
		tokenizer: tokenizer,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger sets the logger for the Generator. By default, all logs are discarded.
// Providing a `log/slog.Logger` will enable logging for training and generation.
func (g *Generator) SetLogger(logger *slog.Logger) {
	if logger != nil {
		g.logger = logger
	}
}

// Tokenizer returns the tokenizer used by the Generator.
func (g *Generator) Tokenizer() Tokenizer {
	return g.tokenizer
}

var defaultGenerator = NewGenerator(NewDefaultTokenizer())

// Train builds a model of order n from corpus using the default tokenizer.
func Train(corpus string, n int) (*Model, error) {
	return defaultGenerator.Train(corpus, n)
}

// Sample generates one sentence from model using the default tokenizer.
func Sample(model *Model, opts ...GenerateOption) (string, error) {
	return defaultGenerator.Generate(model, opts...)
}
