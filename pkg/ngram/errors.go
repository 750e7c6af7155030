package ngram

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOrder is returned when the requested model order is below 1.
	ErrInvalidOrder = errors.New("invalid n-gram order")
	// ErrEmptyCorpus is returned when no usable sentence could be extracted from the corpus.
	ErrEmptyCorpus = errors.New("corpus contains no usable sentences")
	// ErrMissingContext is returned when an n-gram's context has no count in the (n-1)-gram table.
	ErrMissingContext = errors.New("missing context count")
	// ErrNonTerminatingSample is returned when sampling exceeds its length or draw cap
	// without producing sentence-ending punctuation.
	ErrNonTerminatingSample = errors.New("sample did not terminate")
	// ErrInvalidSelection is returned when Generate is given an unknown Selection.
	ErrInvalidSelection = errors.New("invalid selection rule")
)

// MissingContextError reports the n-gram whose context could not be found
// while normalizing counts into probabilities.
type MissingContextError struct {
	Gram Gram
}

func (e *MissingContextError) Error() string {
	return fmt.Sprintf("%s: no count for context %q of gram %q", ErrMissingContext, e.Gram.Context().String(), e.Gram.String())
}

// Is makes errors.Is(err, ErrMissingContext) succeed.
func (e *MissingContextError) Is(target error) bool {
	return target == ErrMissingContext
}
