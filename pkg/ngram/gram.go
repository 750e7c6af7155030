package ngram

import "strings"

// keySep joins gram tokens into a map key. Tokens never contain it.
const keySep = "\x1f"

// Gram is an ordered sequence of tokens used as a counting and lookup unit.
// Two grams with the same tokens in the same order share the same Key.
type Gram []string

// Key returns the comparable form of the gram used for map lookups.
func (g Gram) Key() string {
	return strings.Join(g, keySep)
}

// Context returns every token except the last one.
func (g Gram) Context() Gram {
	if len(g) == 0 {
		return Gram{}
	}
	return g[:len(g)-1]
}

// Suffix returns every token except the first one. After a gram is emitted,
// its suffix is the context used to choose the next token.
func (g Gram) Suffix() Gram {
	if len(g) == 0 {
		return Gram{}
	}
	return g[1:]
}

// Last returns the final token of the gram, or "" for an empty gram.
func (g Gram) Last() string {
	if len(g) == 0 {
		return ""
	}
	return g[len(g)-1]
}

// IsStart reports whether the gram begins with the start marker.
func (g Gram) IsStart() bool {
	return len(g) > 0 && g[0] == StartToken
}

// String returns the gram as a space-separated string.
func (g Gram) String() string {
	return strings.Join(g, " ")
}
