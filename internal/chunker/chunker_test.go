package chunker

import (
	"strings"
	"testing"
)

func TestSplit_ShortTextSingleChunk(t *testing.T) {
	c := New(500, 100)

	for _, length := range []int{1, 42, 499, 500} {
		text := strings.Repeat("x", length)
		chunks := c.Split([]string{text})

		if len(chunks) != 1 {
			t.Errorf("length %d: expected 1 chunk, got %d", length, len(chunks))
			continue
		}
		if chunks[0].Text != text {
			t.Errorf("length %d: chunk text does not match input", length)
		}
		if chunks[0].Index != 0 {
			t.Errorf("length %d: expected index 0, got %d", length, chunks[0].Index)
		}
	}
}

func TestSplit_ChunkCountFormula(t *testing.T) {
	c := New(500, 100)

	// expected = ceil((L-500)/400) + 1 for L > 500
	cases := []struct {
		length int
		want   int
	}{
		{501, 2},
		{900, 2},
		{901, 3},
		{1300, 3},
		{2000, 5},
	}

	for _, tc := range cases {
		chunks := c.Split([]string{strings.Repeat("y", tc.length)})
		if len(chunks) != tc.want {
			t.Errorf("length %d: expected %d chunks, got %d", tc.length, tc.want, len(chunks))
		}
	}
}

func TestSplit_ConsecutiveChunksOverlap(t *testing.T) {
	c := New(500, 100)

	// Distinct runes so overlapping regions can be compared byte-for-byte.
	var sb strings.Builder
	for i := 0; i < 1300; i++ {
		sb.WriteRune(rune('a' + i%26))
	}

	chunks := c.Split([]string{sb.String()})
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1].Text)
		cur := []rune(chunks[i].Text)

		tail := string(prev[len(prev)-100:])
		head := string(cur[:100])
		if tail != head {
			t.Errorf("chunks %d/%d: expected 100-rune overlap", i-1, i)
		}
	}
}

func TestSplit_OrderedIndexes(t *testing.T) {
	c := New(500, 100)

	chunks := c.Split([]string{strings.Repeat("z", 1500)})
	for i, chunk := range chunks {
		if chunk.Index != i {
			t.Errorf("chunk %d has index %d", i, chunk.Index)
		}
	}
}

func TestSplit_EmptyInput(t *testing.T) {
	c := New(500, 100)

	if chunks := c.Split(nil); chunks != nil {
		t.Errorf("nil pages: expected no chunks, got %d", len(chunks))
	}
	if chunks := c.Split([]string{"", "  ", "\n"}); chunks != nil {
		t.Errorf("blank pages: expected no chunks, got %d", len(chunks))
	}
}

func TestSplit_JoinsPages(t *testing.T) {
	c := New(500, 100)

	chunks := c.Split([]string{"first page", "second page"})
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "first page\nsecond page" {
		t.Errorf("unexpected chunk text: %q", chunks[0].Text)
	}
}
