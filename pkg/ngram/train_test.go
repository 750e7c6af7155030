package ngram

import (
	"errors"
	"fmt"
	"testing"
)

func TestTrainErrors(t *testing.T) {
	testCases := []struct {
		name     string
		corpus   string
		n        int
		expected error
	}{
		{name: "Zero order", corpus: testCorpus, n: 0, expected: ErrInvalidOrder},
		{name: "Negative order", corpus: testCorpus, n: -2, expected: ErrInvalidOrder},
		{name: "No terminator", corpus: "no terminator here", n: 2, expected: ErrEmptyCorpus},
		{name: "Only single-token sentences", corpus: ". ! ?", n: 2, expected: ErrEmptyCorpus},
		{name: "Sentences too short for order", corpus: "hi. go.", n: 3, expected: ErrEmptyCorpus},
		{name: "Empty unigram corpus", corpus: "", n: 1, expected: ErrEmptyCorpus},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			model, err := Train(tc.corpus, tc.n)
			if !errors.Is(err, tc.expected) {
				t.Errorf("Train() error = %v, want %v", err, tc.expected)
			}
			if model != nil {
				t.Error("expected no model on failure")
			}
		})
	}
}

func TestTrainLowercasesCorpus(t *testing.T) {
	model, err := Train("The Cat SAT. the cat sat.", 2)
	if err != nil {
		t.Fatalf("Train() failed: %v", err)
	}
	if p, ok := model.Standard().Prob(Gram{"cat", "sat"}); !ok || p != 1.0 {
		t.Errorf("P(sat | cat) = %v (found %v), want 1.0", p, ok)
	}
	if _, ok := model.Standard().Prob(Gram{"Cat", "SAT"}); ok {
		t.Error("expected mixed-case tokens to be folded")
	}
}

func TestTrainOrders(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5} {
		t.Run(fmt.Sprintf("Order%d", n), func(t *testing.T) {
			_, model := trainTestModel(t, n)
			if model.Order() != n {
				t.Errorf("Order() = %d, want %d", model.Order(), n)
			}
			if n > 1 {
				for _, e := range model.Starts().Entries() {
					if len(e.Gram) != n || !e.Gram.IsStart() {
						t.Errorf("unexpected start gram %v", e.Gram)
					}
				}
			}
		})
	}
}

func BenchmarkTrain(b *testing.B) {
	corpus := createBenchmarkCorpus()

	for _, order := range []int{1, 2, 3, 4, 5} {
		b.Run(fmt.Sprintf("Order%d", order), func(b *testing.B) {
			g := NewGenerator(NewDefaultTokenizer())
			b.SetBytes(int64(len(corpus)))
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := g.Train(corpus, order); err != nil {
					b.Fatalf("Train() failed: %v", err)
				}
			}
		})
	}
}
