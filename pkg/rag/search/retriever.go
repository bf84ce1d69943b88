package search

import (
	"fmt"
	"log"
	"math"
	"sort"

	"living-resume-be/pkg/embedding"
	"living-resume-be/pkg/store"
)

// Retriever finds the corpus snippets most similar to a query. The corpus is
// read-only after startup and small, so every query is a linear scan.
type Retriever struct {
	embeddingProvider embedding.EmbeddingProvider
	corpus            []store.CorpusEntry
	logger            *log.Logger
}

// NewRetriever creates a new retriever over the indexed corpus
func NewRetriever(embeddingProvider embedding.EmbeddingProvider, corpus []store.CorpusEntry, logger *log.Logger) *Retriever {
	return &Retriever{
		embeddingProvider: embeddingProvider,
		corpus:            corpus,
		logger:            logger,
	}
}

// Retrieve embeds the query with the same provider used at indexing time and
// returns the top k entries by cosine similarity, descending. Ties keep
// corpus insertion order (stable sort). An empty corpus yields an empty
// result, not an error.
func (r *Retriever) Retrieve(query string, k int) ([]store.ScoredEntry, error) {
	if len(r.corpus) == 0 || k <= 0 {
		return nil, nil
	}

	res, err := r.embeddingProvider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("query embedding failed: %w", err)
	}
	queryVec := res.Embedding.Values

	scored := make([]store.ScoredEntry, 0, len(r.corpus))
	for _, entry := range r.corpus {
		scored = append(scored, store.ScoredEntry{
			Entry: entry,
			Score: CosineSimilarity(queryVec, entry.Embedding),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > k {
		scored = scored[:k]
	}

	for i, s := range scored {
		r.logger.Printf("[SEARCH] Hit %d: score=%.4f tag=%s", i+1, s.Score, s.Entry.Tag)
	}

	return scored, nil
}

// CosineSimilarity computes the cosine of the angle between two vectors,
// invariant to magnitude. Mismatched or zero vectors score 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
