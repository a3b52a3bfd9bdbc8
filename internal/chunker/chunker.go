// Package chunker splits document text into overlapping fixed-size segments.
package chunker

import (
	"strings"

	"github.com/docchat/docchat-backend/internal/entity"
)

// Chunker cuts text into windows of Size runes advancing by Size-Overlap.
type Chunker struct {
	size    int
	overlap int
}

func New(size, overlap int) *Chunker {
	if size <= 0 {
		size = 500
	}
	if overlap < 0 || overlap >= size {
		overlap = 100
	}
	return &Chunker{size: size, overlap: overlap}
}

// Split concatenates the page texts and emits ordered overlapping chunks.
// The final partial window is kept as-is. Text no longer than one window
// yields exactly one chunk; empty text yields none.
func (c *Chunker) Split(pages []string) []entity.Chunk {
	text := strings.TrimSpace(strings.Join(pages, "\n"))
	if text == "" {
		return nil
	}

	runes := []rune(text)
	step := c.size - c.overlap

	var chunks []entity.Chunk
	for start := 0; start < len(runes); start += step {
		end := start + c.size
		if end > len(runes) {
			end = len(runes)
		}

		chunks = append(chunks, entity.Chunk{
			Index: len(chunks),
			Text:  string(runes[start:end]),
		})

		if end == len(runes) {
			break
		}
	}

	return chunks
}
