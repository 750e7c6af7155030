package ngram

import "strings"

// StartToken is the synthetic marker prepended to every sentence before
// n-gram windows are extracted. It never appears in generated output.
const StartToken = "<start>"

// Tokenizer is an interface that defines the contract for splitting corpus text
// into sentences and tokens. This allows the model and sampler logic to be
// independent of the specific tokenization strategy.
type Tokenizer interface {
	// Sentences splits text into sentence strings, each ending in terminal
	// punctuation. Trailing text without a terminator is dropped.
	Sentences(text string) []string
	// Tokenize splits a single sentence into word and punctuation tokens.
	Tokenize(sentence string) []string
	// Separator returns the string that should be written before next when
	// appending it to generated text.
	Separator(next string) string
	// Terminal reports whether text contains sentence-ending punctuation.
	Terminal(text string) bool
}

// SentenceTokens splits text into sentences and tokenizes each one. Sentences
// with one token or fewer carry no signal and are discarded.
func SentenceTokens(t Tokenizer, text string) [][]string {
	var out [][]string
	for _, sentence := range t.Sentences(text) {
		tokens := t.Tokenize(sentence)
		if len(tokens) <= 1 {
			continue
		}
		out = append(out, tokens)
	}
	return out
}

// Join rebuilds text from tokens using the tokenizer's attachment rule.
func Join(t Tokenizer, tokens []string) string {
	var builder strings.Builder
	for _, token := range tokens {
		builder.WriteString(t.Separator(token))
		builder.WriteString(token)
	}
	return strings.TrimSpace(builder.String())
}
