package index

import (
	"fmt"
	"log"

	"living-resume-be/pkg/embedding"
	"living-resume-be/pkg/profile"
	"living-resume-be/pkg/store"
)

// Indexer turns the flattened resume data into the embedded corpus.
// It runs exactly once at startup; a failed embedding call aborts the build
// because the fallback pipeline is useless without its vectors.
type Indexer struct {
	embeddingProvider embedding.EmbeddingProvider
	logger            *log.Logger
}

// NewIndexer creates a new corpus indexer
func NewIndexer(embeddingProvider embedding.EmbeddingProvider, logger *log.Logger) *Indexer {
	return &Indexer{
		embeddingProvider: embeddingProvider,
		logger:            logger,
	}
}

// Build assembles one corpus entry per project, experience and education
// record, then embeds all snippets in a single batch.
func (ix *Indexer) Build(data *profile.Data) ([]store.CorpusEntry, error) {
	var texts []string
	var tags []string

	for _, p := range data.Projects() {
		texts = append(texts, p.Description)
		tags = append(tags, fmt.Sprintf("Project – %s", p.Title))
	}

	for _, e := range data.Experience() {
		texts = append(texts, fmt.Sprintf("%s at %s (%s)", e.Position, e.Company, e.Period))
		tags = append(tags, "Experience")
	}

	for _, ed := range data.Education() {
		texts = append(texts, fmt.Sprintf("%s from %s (%s)", ed.Degree, ed.School, ed.Period))
		tags = append(tags, "Education")
	}

	if len(texts) == 0 {
		ix.logger.Printf("[INDEX] Corpus source is empty, nothing to embed")
		return nil, nil
	}

	responses, err := ix.embeddingProvider.GenerateBatch(texts, "RETRIEVAL_DOCUMENT")
	if err != nil {
		return nil, fmt.Errorf("corpus embedding failed: %w", err)
	}
	if len(responses) != len(texts) {
		return nil, fmt.Errorf("corpus embedding returned %d vectors for %d snippets", len(responses), len(texts))
	}

	entries := make([]store.CorpusEntry, len(texts))
	for i := range texts {
		entries[i] = store.CorpusEntry{
			Text:      texts[i],
			Tag:       tags[i],
			Embedding: responses[i].Embedding.Values,
		}
	}

	ix.logger.Printf("[INDEX] Built corpus: %d entries (%d projects, %d experience, %d education)",
		len(entries), len(data.Projects()), len(data.Experience()), len(data.Education()))

	return entries, nil
}
