package ngram

import (
	"regexp"
	"strings"
)

// DefaultTokenizer is a default implementation of the Tokenizer interface.
// It uses regular expressions to split text into sentences, words and
// punctuation, and to decide which tokens attach to the previous one without
// a separator. Its behavior can be customized with functional options.
type DefaultTokenizer struct {
	separator     string
	sentenceRegex *regexp.Regexp
	tokenRegex    *regexp.Regexp
	attachRegex   *regexp.Regexp
	terminalRegex *regexp.Regexp
}

// Option Is a function that configures a DefaultTokenizer.
type Option func(*DefaultTokenizer)

// WithSeparator Sets the string written before non-punctuation tokens during generation.
// Default: " "
func WithSeparator(sep string) Option {
	return func(t *DefaultTokenizer) {
		t.separator = sep
	}
}

// WithSentenceRegex sets the regex matching the punctuation run that closes a sentence.
// Default: `[.!?]+`
func WithSentenceRegex(sentenceRegex string) Option {
	return func(t *DefaultTokenizer) {
		t.sentenceRegex = regexp.MustCompile(sentenceRegex)
	}
}

// WithTokenRegex sets the regex string to use when splitting a sentence into tokens.
// Default: `[\p{L}\p{M}\p{N}_']+|[.,!?;:=+/*\\]`
func WithTokenRegex(tokenRegex string) Option {
	return func(t *DefaultTokenizer) {
		t.tokenRegex = regexp.MustCompile(tokenRegex)
	}
}

// WithAttachRegex sets the regex deciding whether a token is written without a separator.
// Default: `^[.,!?;:=+/*\\]`
func WithAttachRegex(attachRegex string) Option {
	return func(t *DefaultTokenizer) {
		t.attachRegex = regexp.MustCompile(attachRegex)
	}
}

// WithTerminalRegex sets the regex deciding whether generated text is a complete sentence.
// Default: `[.!?]`
func WithTerminalRegex(terminalRegex string) Option {
	return func(t *DefaultTokenizer) {
		t.terminalRegex = regexp.MustCompile(terminalRegex)
	}
}

// NewDefaultTokenizer creates a new tokenizer with default settings, which can be
// overridden by providing one or more Option functions.
func NewDefaultTokenizer(opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{
		separator:     " ",
		sentenceRegex: regexp.MustCompile(`[.!?]+`),
		// Runs of letters, digits, underscores and apostrophes,
		// OR single instances of the supported punctuation.
		tokenRegex: regexp.MustCompile(`[\p{L}\p{M}\p{N}_']+|[.,!?;:=+/*\\]`),
		// Tokens that are written without a separator before them.
		attachRegex:   regexp.MustCompile(`^[.,!?;:=+/*\\]`),
		terminalRegex: regexp.MustCompile(`[.!?]`),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Sentences splits text on runs of terminal punctuation, keeping each run
// attached to the sentence it closes.
func (t *DefaultTokenizer) Sentences(text string) []string {
	var sentences []string
	start := 0
	for _, loc := range t.sentenceRegex.FindAllStringIndex(text, -1) {
		if loc[1] == loc[0] {
			continue
		}
		if sentence := strings.TrimSpace(text[start:loc[1]]); sentence != "" {
			sentences = append(sentences, sentence)
		}
		start = loc[1]
	}
	return sentences
}

// Tokenize returns every word and punctuation token in sentence. Characters
// matching neither pattern are dropped.
func (t *DefaultTokenizer) Tokenize(sentence string) []string {
	return t.tokenRegex.FindAllString(sentence, -1)
}

// Separator returns "" for punctuation tokens and the configured separator otherwise.
func (t *DefaultTokenizer) Separator(next string) string {
	if t.attachRegex.MatchString(next) {
		return ""
	}
	return t.separator
}

// Terminal reports whether text contains sentence-ending punctuation.
func (t *DefaultTokenizer) Terminal(text string) bool {
	return t.terminalRegex.MatchString(text)
}
