package index

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/docchat/docchat-backend/internal/entity"
)

// keywordEmbedder maps texts onto a small vector space keyed by marker words,
// so similarity is fully deterministic.
type keywordEmbedder struct {
	markers []string
	calls   int
	err     error
}

func (e *keywordEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, len(e.markers)+1)
		vec[len(e.markers)] = 0.1 // keep vectors non-zero
		for j, marker := range e.markers {
			if strings.Contains(text, marker) {
				vec[j] = 1
			}
		}
		vectors[i] = vec
	}
	return vectors, nil
}

func newTestEmbedder() *keywordEmbedder {
	return &keywordEmbedder{markers: []string{"capacity", "parking", "dining"}}
}

func TestIndex_QueryEmptyIndex(t *testing.T) {
	embedder := newTestEmbedder()
	idx := New(embedder)

	results, err := idx.Query(context.Background(), "anything", 4)
	if err != nil {
		t.Fatalf("query on empty index must not error, got %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
	if embedder.calls != 0 {
		t.Errorf("empty index must not call the embedder, got %d calls", embedder.calls)
	}
}

func TestIndex_RanksMatchingChunkFirst(t *testing.T) {
	idx := New(newTestEmbedder())

	chunks := []entity.Chunk{
		{Index: 0, Text: "The venue offers free parking for all visitors."},
		{Index: 1, Text: "The maximum capacity is 120 guests at any time."},
		{Index: 2, Text: "The dining hall serves breakfast and dinner."},
	}

	if err := idx.Build(context.Background(), chunks); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	results, err := idx.Query(context.Background(), "what is the capacity?", 2)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Chunk.Index != 1 {
		t.Errorf("expected capacity chunk ranked first, got chunk %d", results[0].Chunk.Index)
	}
	if results[0].Score <= results[1].Score {
		t.Errorf("expected descending scores, got %f then %f", results[0].Score, results[1].Score)
	}
}

func TestIndex_TiesKeepChunkOrder(t *testing.T) {
	idx := New(newTestEmbedder())

	// No chunk matches the query, so all scores tie.
	chunks := []entity.Chunk{
		{Index: 0, Text: "alpha"},
		{Index: 1, Text: "beta"},
		{Index: 2, Text: "gamma"},
	}

	if err := idx.Build(context.Background(), chunks); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	results, err := idx.Query(context.Background(), "unrelated", 3)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}

	for i, r := range results {
		if r.Chunk.Index != i {
			t.Errorf("position %d: expected chunk %d, got %d", i, i, r.Chunk.Index)
		}
	}
}

func TestIndex_BuildReplacesEntries(t *testing.T) {
	idx := New(newTestEmbedder())

	first := []entity.Chunk{{Index: 0, Text: "capacity"}, {Index: 1, Text: "parking"}}
	if err := idx.Build(context.Background(), first); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	second := []entity.Chunk{{Index: 0, Text: "dining"}}
	if err := idx.Build(context.Background(), second); err != nil {
		t.Fatalf("rebuild failed: %v", err)
	}

	if idx.Size() != 1 {
		t.Errorf("expected rebuild to replace entries, size is %d", idx.Size())
	}
}

func TestIndex_FailedBuildNotQueryable(t *testing.T) {
	embedder := newTestEmbedder()
	embedder.err = errors.New("quota exceeded")
	idx := New(embedder)

	err := idx.Build(context.Background(), []entity.Chunk{{Index: 0, Text: "capacity"}})
	if err == nil {
		t.Fatal("expected build error")
	}

	if idx.Size() != 0 {
		t.Errorf("failed build must leave no entries, size is %d", idx.Size())
	}
}

func TestIndex_ClearReleasesEntries(t *testing.T) {
	embedder := newTestEmbedder()
	idx := New(embedder)

	if err := idx.Build(context.Background(), []entity.Chunk{{Index: 0, Text: "capacity"}}); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	idx.Clear()

	embedder.calls = 0
	results, err := idx.Query(context.Background(), "capacity", 4)
	if err != nil {
		t.Fatalf("query after clear must not error, got %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results after clear, got %d", len(results))
	}
	if embedder.calls != 0 {
		t.Error("query after clear must not call the embedder")
	}
}

func TestIndex_TopKBoundsResults(t *testing.T) {
	idx := New(newTestEmbedder())

	chunks := make([]entity.Chunk, 10)
	for i := range chunks {
		chunks[i] = entity.Chunk{Index: i, Text: "capacity"}
	}
	if err := idx.Build(context.Background(), chunks); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	results, err := idx.Query(context.Background(), "capacity", 4)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(results) != 4 {
		t.Errorf("expected 4 results, got %d", len(results))
	}
}

func TestCosineSimilarity(t *testing.T) {
	cases := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 0}, []float32{1, 0}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
	}

	for _, tc := range cases {
		got := cosineSimilarity(tc.a, tc.b)
		if diff := got - tc.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("%s: expected %f, got %f", tc.name, tc.want, got)
		}
	}
}
