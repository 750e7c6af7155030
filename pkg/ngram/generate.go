package ngram

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Selection chooses how the extension phase picks the next gram.
type Selection int

const (
	// SelectPerItem picks the first candidate whose own probability exceeds the
	// random draw. A draw may select nothing, in which case another is made.
	SelectPerItem Selection = iota
	// SelectCumulative picks the first candidate whose running probability sum
	// exceeds the random draw, matching the start phase.
	SelectCumulative
)

// String returns the configuration name of the selection rule.
func (s Selection) String() string {
	switch s {
	case SelectPerItem:
		return "per-item"
	case SelectCumulative:
		return "cumulative"
	default:
		return fmt.Sprintf("Selection(%d)", int(s))
	}
}

// ParseSelection converts a configuration name into a Selection.
func ParseSelection(name string) (Selection, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "per-item", "peritem":
		return SelectPerItem, nil
	case "cumulative":
		return SelectCumulative, nil
	default:
		return 0, fmt.Errorf("unknown selection rule %q (want per-item or cumulative)", name)
	}
}

// generateOptions Is used by the generate functions to configure default options.
type generateOptions struct {
	maxLength int
	maxDraws  int
	selection Selection
	rng       *rand.Rand
}

// GenerateOption is a function that configures generation parameters. It's used
// as a variadic argument in Generate and Sample.
type GenerateOption func(*generateOptions)

// WithMaxLength sets the maximum number of tokens a sentence may contain before
// generation is abandoned with ErrNonTerminatingSample.
func WithMaxLength(n int) GenerateOption {
	return func(o *generateOptions) { o.maxLength = n }
}

// WithMaxDraws sets the maximum number of random draws spent on one sentence
// before generation is abandoned with ErrNonTerminatingSample.
func WithMaxDraws(n int) GenerateOption {
	return func(o *generateOptions) { o.maxDraws = n }
}

// WithSelection sets the extension-phase selection rule. Default: SelectPerItem.
func WithSelection(s Selection) GenerateOption {
	return func(o *generateOptions) { o.selection = s }
}

// WithRand sets the random source. Passing the same source to repeated calls
// yields a reproducible sequence of independent sentences.
func WithRand(r *rand.Rand) GenerateOption {
	return func(o *generateOptions) { o.rng = r }
}

// WithSeed uses a fresh random source seeded with seed for this call only.
func WithSeed(seed uint64) GenerateOption {
	return func(o *generateOptions) { o.rng = NewRand(seed) }
}

// NewRand returns the random source used by WithSeed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func newGenerateOptions(opts []GenerateOption) *generateOptions {
	options := &generateOptions{
		maxLength: 1000,
		maxDraws:  1_000_000,
		selection: SelectPerItem,
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

func (o *generateOptions) float64() float64 {
	if o.rng != nil {
		return o.rng.Float64()
	}
	return rand.Float64()
}

// sentenceBuilder accumulates generated tokens using the tokenizer's
// attachment rule.
type sentenceBuilder struct {
	tokenizer Tokenizer
	builder   strings.Builder
	length    int
}

func (b *sentenceBuilder) append(token string) {
	b.builder.WriteString(b.tokenizer.Separator(token))
	b.builder.WriteString(token)
	b.length++
}

func (b *sentenceBuilder) done() bool {
	return b.tokenizer.Terminal(b.builder.String())
}

func (b *sentenceBuilder) String() string {
	return capitalize(strings.TrimSpace(b.builder.String()))
}

// Generate samples one sentence from model. Order 1 models use the unigram
// sampler; higher orders pick a start gram and then extend the sentence one
// token at a time until it contains sentence-ending punctuation.
func (g *Generator) Generate(model *Model, opts ...GenerateOption) (string, error) {
	if model == nil {
		return "", fmt.Errorf("%w: nil model", ErrEmptyCorpus)
	}
	options := newGenerateOptions(opts)
	if options.selection != SelectPerItem && options.selection != SelectCumulative {
		return "", fmt.Errorf("%w: %s", ErrInvalidSelection, options.selection)
	}
	if model.order == 1 {
		return g.generateUnigram(model, options)
	}
	return g.generateChain(model, options)
}

// generateChain contains the main loop for the start-anchored random walk.
func (g *Generator) generateChain(model *Model, options *generateOptions) (string, error) {
	if model.starts.Len() == 0 {
		return "", ErrEmptyCorpus
	}
	sentence := &sentenceBuilder{tokenizer: g.tokenizer}

	start := chooseCumulative(model.starts.entries, options.float64())
	for _, token := range start.Gram[1:] {
		sentence.append(token)
	}
	current := start.Gram.Suffix()
	draws := 1

	for !sentence.done() {
		if draws >= options.maxDraws || sentence.length >= options.maxLength {
			g.logger.Debug("Generation abandoned by safety cap",
				slog.Int("order", model.order),
				slog.String("context", current.String()),
				slog.Int("generated_length", sentence.length),
				slog.Int("draws", draws),
			)
			return "", fmt.Errorf("%w: %d tokens after %d draws", ErrNonTerminatingSample, sentence.length, draws)
		}

		r := options.float64()
		draws++

		next, ok := chooseNext(model.standard, current, r, options.selection)
		if !ok {
			continue
		}
		sentence.append(next.Gram.Last())
		current = next.Gram.Suffix()
	}

	g.logger.Debug("Generation terminated by sentence punctuation",
		slog.Int("order", model.order),
		slog.Int("generated_length", sentence.length),
		slog.Int("draws", draws),
	)
	return sentence.String(), nil
}

// generateUnigram draws independent tokens until the sentence terminates.
func (g *Generator) generateUnigram(model *Model, options *generateOptions) (string, error) {
	if model.unigrams.Len() == 0 {
		return "", ErrEmptyCorpus
	}
	sentence := &sentenceBuilder{tokenizer: g.tokenizer}
	draws := 0

	for !sentence.done() {
		if draws >= options.maxDraws || sentence.length >= options.maxLength {
			return "", fmt.Errorf("%w: %d tokens after %d draws", ErrNonTerminatingSample, sentence.length, draws)
		}
		draws++
		choice := chooseCumulative(model.unigrams.entries, options.float64())
		sentence.append(choice.Gram.Last())
	}

	g.logger.Debug("Unigram generation terminated by sentence punctuation",
		slog.Int("generated_length", sentence.length),
	)
	return sentence.String(), nil
}

// chooseCumulative returns the first entry whose running probability sum
// exceeds r. When rounding leaves the total at or below r the last entry wins.
func chooseCumulative(entries []Entry, r float64) Entry {
	var sum float64
	for _, e := range entries {
		sum += e.Prob
		if sum > r {
			return e
		}
	}
	return entries[len(entries)-1]
}

// chooseNext walks the transitions of ctx in table order. The running sum is
// scoped to matching entries; SelectPerItem compares each entry's own
// probability against r instead of the sum.
func chooseNext(table *ProbTable, ctx Gram, r float64, selection Selection) (Entry, bool) {
	var sum float64
	for _, i := range table.byContext[ctx.Key()] {
		e := table.entries[i]
		sum += e.Prob
		switch selection {
		case SelectCumulative:
			if sum > r {
				return e, true
			}
		case SelectPerItem:
			if e.Prob > r {
				return e, true
			}
		}
	}
	return Entry{}, false
}

// capitalize upper-cases the first character and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToTitle(r)) + strings.ToLower(s[size:])
}
