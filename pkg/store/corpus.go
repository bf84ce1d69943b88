package store

// CorpusEntry is one indexed snippet of the resume corpus. Entries are built
// once at startup and read-only afterwards.
type CorpusEntry struct {
	Text      string
	Tag       string
	Embedding []float32
}

// ScoredEntry pairs a corpus entry with its similarity to a query.
type ScoredEntry struct {
	Entry CorpusEntry
	Score float64
}
