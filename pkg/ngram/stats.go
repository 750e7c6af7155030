package ngram

// ModelStats holds aggregated statistics for a single trained model.
type ModelStats struct {
	Order      int `json:"order" yaml:"order"`             // The width of the model's grams
	Sentences  int `json:"sentences" yaml:"sentences"`     // Sentences kept after tokenization
	Tokens     int `json:"tokens" yaml:"tokens"`           // Tokens across all kept sentences
	Vocabulary int `json:"vocabulary" yaml:"vocabulary"`   // Distinct tokens
	NGrams     int `json:"ngrams" yaml:"ngrams"`           // Distinct grams of width Order
	Contexts   int `json:"contexts" yaml:"contexts"`       // Distinct contexts in the transition table
	StartGrams int `json:"start_grams" yaml:"start_grams"` // Distinct grams that can open a sentence
}

func collectStats(order int, sentences [][]string, contexts, ngrams, starts int) ModelStats {
	vocab := make(map[string]struct{})
	var tokens int
	for _, sentence := range sentences {
		tokens += len(sentence)
		for _, token := range sentence {
			vocab[token] = struct{}{}
		}
	}
	return ModelStats{
		Order:      order,
		Sentences:  len(sentences),
		Tokens:     tokens,
		Vocabulary: len(vocab),
		NGrams:     ngrams,
		Contexts:   contexts,
		StartGrams: starts,
	}
}
