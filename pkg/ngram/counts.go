package ngram

import "fmt"

// FreqTable maps grams to the number of times they were observed. Keys are
// kept in first-seen order so that every walk over the table is reproducible.
// A FreqTable is only mutated while counting.
type FreqTable struct {
	order  int
	grams  []Gram
	counts map[string]int
	total  int
}

func newFreqTable(order int) *FreqTable {
	return &FreqTable{
		order:  order,
		counts: make(map[string]int),
	}
}

func (t *FreqTable) add(g Gram) {
	key := g.Key()
	if _, ok := t.counts[key]; !ok {
		// Copy so later window slices cannot alias the stored key.
		t.grams = append(t.grams, append(Gram(nil), g...))
	}
	t.counts[key]++
	t.total++
}

// Order returns the width of the grams counted by the table.
func (t *FreqTable) Order() int { return t.order }

// Len returns the number of distinct grams.
func (t *FreqTable) Len() int { return len(t.grams) }

// Total returns the sum of all counts.
func (t *FreqTable) Total() int { return t.total }

// Count returns the number of times g was observed and whether it was seen at all.
func (t *FreqTable) Count(g Gram) (int, bool) {
	c, ok := t.counts[g.Key()]
	return c, ok
}

// Grams returns the distinct grams in first-seen order.
func (t *FreqTable) Grams() []Gram {
	out := make([]Gram, len(t.grams))
	copy(out, t.grams)
	return out
}

// CountNGrams builds the frequency tables for windows of width n and n-1.
// Every sentence is prefixed with StartToken; sentences whose prefixed length
// is not greater than n contribute nothing to either table.
func CountNGrams(sentences [][]string, n int) (*FreqTable, *FreqTable, error) {
	if n < 2 {
		return nil, nil, fmt.Errorf("%w: n-gram counting needs n >= 2, got %d", ErrInvalidOrder, n)
	}

	tableN := newFreqTable(n)
	tableN1 := newFreqTable(n - 1)

	buf := make(Gram, 0, 64)
	for _, sentence := range sentences {
		buf = append(buf[:0], StartToken)
		buf = append(buf, sentence...)
		if len(buf) <= n {
			continue
		}
		for i := 0; i+n <= len(buf); i++ {
			tableN.add(buf[i : i+n])
		}
		for i := 0; i+n-1 <= len(buf); i++ {
			tableN1.add(buf[i : i+n-1])
		}
	}

	return tableN, tableN1, nil
}

// CountUnigrams counts single tokens across all sentences. No start marker is
// added and no context table is needed.
func CountUnigrams(sentences [][]string) *FreqTable {
	table := newFreqTable(1)
	for _, sentence := range sentences {
		for i := range sentence {
			table.add(sentence[i : i+1])
		}
	}
	return table
}
