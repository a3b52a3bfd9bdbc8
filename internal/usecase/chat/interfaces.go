package chat

import "context"

// DocumentLoader reads a document into ordered page texts.
type DocumentLoader interface {
	Load(ctx context.Context, path string) ([]string, error)
}

// Embedder turns texts into fixed-dimension vectors, one per input, in order.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator produces an answer for an assembled prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
