// Package index provides the in-memory vector index backing one chat session.
package index

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/docchat/docchat-backend/internal/entity"
)

// Embedder turns texts into fixed-dimension vectors, one per input, in order.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

type indexEntry struct {
	chunk     entity.Chunk
	embedding []float32
}

// Index stores (embedding, chunk) pairs and answers nearest-neighbor queries
// by cosine similarity. Build replaces all entries atomically; a failed build
// leaves nothing queryable.
type Index struct {
	mu       sync.RWMutex
	embedder Embedder
	entries  []indexEntry
}

func New(embedder Embedder) *Index {
	return &Index{embedder: embedder}
}

// Build embeds all chunks and replaces any previous entries. On error the
// prior state is kept; a partial build is never exposed.
func (idx *Index) Build(ctx context.Context, chunks []entity.Chunk) error {
	if len(chunks) == 0 {
		idx.mu.Lock()
		idx.entries = nil
		idx.mu.Unlock()
		return nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	embeddings, err := idx.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return err
	}

	if len(embeddings) != len(chunks) {
		return fmt.Errorf("%w: got %d embeddings for %d chunks",
			entity.ErrEmbeddingService, len(embeddings), len(chunks))
	}

	entries := make([]indexEntry, len(chunks))
	for i, chunk := range chunks {
		entries[i] = indexEntry{chunk: chunk, embedding: embeddings[i]}
	}

	idx.mu.Lock()
	idx.entries = entries
	idx.mu.Unlock()

	return nil
}

// Query embeds the text and returns the topK most similar chunks, highest
// similarity first, ties broken by chunk order. An empty index returns an
// empty result without calling the embedder.
func (idx *Index) Query(ctx context.Context, text string, topK int) ([]entity.ScoredChunk, error) {
	idx.mu.RLock()
	empty := len(idx.entries) == 0
	idx.mu.RUnlock()

	if empty {
		return nil, nil
	}

	embeddings, err := idx.embedder.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(embeddings) != 1 {
		return nil, fmt.Errorf("%w: got %d embeddings for query", entity.ErrEmbeddingService, len(embeddings))
	}
	query := embeddings[0]

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	results := make([]entity.ScoredChunk, len(idx.entries))
	for i, e := range idx.entries {
		results[i] = entity.ScoredChunk{
			Chunk: e.chunk,
			Score: cosineSimilarity(query, e.embedding),
		}
	}

	// Entries are in chunk order, so a stable sort keeps ties ordered by
	// position in the document.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}

	return results, nil
}

// Size reports the number of indexed entries.
func (idx *Index) Size() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

// Clear releases all entries.
func (idx *Index) Clear() {
	idx.mu.Lock()
	idx.entries = nil
	idx.mu.Unlock()
}

func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
