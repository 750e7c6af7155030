package ngram

// Entry is a single gram together with its probability.
type Entry struct {
	Gram Gram
	Prob float64
}

// ProbTable is an immutable, ordered set of gram probabilities. The entry
// order is the order in which grams were first counted, and it is the order
// every sampler walks, which makes seeded generation reproducible.
type ProbTable struct {
	entries   []Entry
	index     map[string]int
	contexts  []Gram
	byContext map[string][]int
}

func newProbTable(entries []Entry) *ProbTable {
	p := &ProbTable{
		entries:   entries,
		index:     make(map[string]int, len(entries)),
		byContext: make(map[string][]int),
	}
	for i, e := range entries {
		p.index[e.Gram.Key()] = i
		ctx := e.Gram.Context()
		key := ctx.Key()
		if _, ok := p.byContext[key]; !ok {
			p.contexts = append(p.contexts, ctx)
		}
		p.byContext[key] = append(p.byContext[key], i)
	}
	return p
}

// Len returns the number of entries in the table.
func (p *ProbTable) Len() int { return len(p.entries) }

// Entries returns a copy of the table's entries in walk order.
func (p *ProbTable) Entries() []Entry {
	out := make([]Entry, len(p.entries))
	copy(out, p.entries)
	return out
}

// Prob returns the probability stored for g.
func (p *ProbTable) Prob(g Gram) (float64, bool) {
	i, ok := p.index[g.Key()]
	if !ok {
		return 0, false
	}
	return p.entries[i].Prob, true
}

// Contexts returns the distinct contexts of the table in first-seen order.
func (p *ProbTable) Contexts() []Gram {
	out := make([]Gram, len(p.contexts))
	copy(out, p.contexts)
	return out
}

// Transitions returns the entries whose context equals ctx, in walk order.
func (p *ProbTable) Transitions(ctx Gram) []Entry {
	idx := p.byContext[ctx.Key()]
	out := make([]Entry, len(idx))
	for i, j := range idx {
		out[i] = p.entries[j]
	}
	return out
}

// Sum returns the total probability mass of the table.
func (p *ProbTable) Sum() float64 {
	var sum float64
	for _, e := range p.entries {
		sum += e.Prob
	}
	return sum
}

// Normalize turns n-gram counts into conditional probabilities by dividing each
// count by the count of its context in the (n-1)-gram table. A context without
// a count yields a *MissingContextError.
func Normalize(tableN, tableN1 *FreqTable) (*ProbTable, error) {
	entries := make([]Entry, 0, tableN.Len())
	for _, g := range tableN.grams {
		ctxCount, ok := tableN1.Count(g.Context())
		if !ok || ctxCount == 0 {
			return nil, &MissingContextError{Gram: g}
		}
		entries = append(entries, Entry{
			Gram: g,
			Prob: float64(tableN.counts[g.Key()]) / float64(ctxCount),
		})
	}
	return newProbTable(entries), nil
}

// NormalizeUnigrams divides every token count by the total number of tokens.
func NormalizeUnigrams(table *FreqTable) *ProbTable {
	entries := make([]Entry, 0, table.Len())
	for _, g := range table.grams {
		entries = append(entries, Entry{
			Gram: g,
			Prob: float64(table.counts[g.Key()]) / float64(table.total),
		})
	}
	return newProbTable(entries)
}

// SplitStarts separates grams beginning with StartToken from the rest. The
// start entries are renormalized so they sum to 1 on their own; the remaining
// standard entries keep their conditional probabilities.
func SplitStarts(p *ProbTable) (starts, standard *ProbTable) {
	var startEntries, standardEntries []Entry
	var startSum float64
	for _, e := range p.entries {
		if e.Gram.IsStart() {
			startEntries = append(startEntries, e)
			startSum += e.Prob
		} else {
			standardEntries = append(standardEntries, e)
		}
	}
	for i := range startEntries {
		startEntries[i].Prob /= startSum
	}
	return newProbTable(startEntries), newProbTable(standardEntries)
}

// Model bundles the probability tables needed for sampling. It is built once
// by Train and never modified afterwards.
type Model struct {
	order    int
	starts   *ProbTable
	standard *ProbTable
	unigrams *ProbTable
	stats    ModelStats
}

// Order returns n, the width of the model's grams.
func (m *Model) Order() int { return m.order }

// Starts returns the start distribution. It is empty for unigram models.
func (m *Model) Starts() *ProbTable { return m.starts }

// Standard returns the mid-sentence transition table. It is empty for unigram models.
func (m *Model) Standard() *ProbTable { return m.standard }

// Unigrams returns the token distribution of an order 1 model, and an empty table otherwise.
func (m *Model) Unigrams() *ProbTable { return m.unigrams }

// Stats returns the statistics gathered while training.
func (m *Model) Stats() ModelStats { return m.stats }
