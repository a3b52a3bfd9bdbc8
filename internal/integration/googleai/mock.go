package googleai

import (
	"context"
	"crypto/sha256"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector is a deterministic stand-in for the hosted model, used for
// local development without an API key.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

const mockDimension = 64

// EmbedTexts returns a deterministic pseudo-embedding per text so similar
// texts map to identical vectors across calls.
func (m *MockConnector) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	ctxzap.Info(ctx, "[MOCK] embedding texts", zap.Int("text_count", len(texts)))

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = hashEmbedding(text)
	}
	return vectors, nil
}

// Generate returns a canned answer that quotes the tail of the prompt.
func (m *MockConnector) Generate(ctx context.Context, prompt string) (string, error) {
	ctxzap.Info(ctx, "[MOCK] generating answer", zap.Int("prompt_length", len(prompt)))

	return "This is a mock answer. The real model is disabled; set ENABLE_MOCKS=false " +
		"and provide GOOGLE_AI_API_KEY to get grounded answers.", nil
}

// hashEmbedding spreads word hashes over a fixed-size vector, so texts
// sharing words end up close in cosine space.
func hashEmbedding(text string) []float32 {
	vec := make([]float32, mockDimension)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		sum := sha256.Sum256([]byte(word))
		vec[int(sum[0])%mockDimension] += 1
	}
	return vec
}
