package ngram

import (
	"strings"
	"testing"
)

// testCorpus has no repeated terminal punctuation and every sentence opens
// with a letter, so every trained context distribution sums to one.
const testCorpus = `the cat sat on the mat. the dog sat on the log.
the cat saw the dog, and the dog ran away! did the cat follow the dog?
a bird sang on the wall. the bird flew over the cat and the dog.
the mat was red; the log was brown. did the bird see the mat?`

// trainTestModel is a convenience helper that trains a model of order n on testCorpus.
func trainTestModel(t *testing.T, n int) (*Generator, *Model) {
	t.Helper()
	g := NewGenerator(NewDefaultTokenizer())
	model, err := g.Train(testCorpus, n)
	if err != nil {
		t.Fatalf("setup: Train(n=%d) failed: %v", n, err)
	}
	return g, model
}

// createBenchmarkCorpus repeats testCorpus to a useful size.
func createBenchmarkCorpus() string {
	return strings.Repeat(testCorpus+" ", 200)
}
