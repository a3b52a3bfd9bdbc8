// Package googleai integrates with the Google Generative Language API for
// text embeddings and answer generation.
package googleai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/avast/retry-go/v4"
	"github.com/docchat/docchat-backend/internal/config"
	"github.com/docchat/docchat-backend/internal/entity"
	"github.com/docchat/docchat-backend/internal/integration/common"
	pkghttp "github.com/docchat/docchat-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Connector struct {
	config    config.GoogleAIConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(cfg config.GoogleAIConfig, logger *zap.Logger) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg, logger),
		config:    cfg,
		logger:    logger,
	}
}

// EmbedTexts embeds all texts in one batchEmbedContents call and returns one
// vector per input, in input order.
func (c *Connector) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	ctxzap.Debug(ctx, "embedding texts via Google AI", zap.Int("text_count", len(texts)))

	model := "models/" + c.config.EmbedModel
	req := &entity.GoogleAIBatchEmbedRequest{
		Requests: make([]entity.GoogleAIEmbedRequest, len(texts)),
	}
	for i, text := range texts {
		req.Requests[i] = entity.GoogleAIEmbedRequest{
			Model:   model,
			Content: entity.GoogleAIContent{Parts: []entity.GoogleAIPart{{Text: text}}},
		}
	}

	endpoint := fmt.Sprintf("/v1beta/%s:batchEmbedContents", model)

	var resp entity.GoogleAIBatchEmbedResponse
	err := c.doWithRetry(ctx, func() error {
		return c.connector.DoRequest(ctx, http.MethodPost, endpoint, req, &resp)
	})
	if err != nil {
		ctxzap.Error(ctx, "embedding request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", entity.ErrEmbeddingService, err)
	}

	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d texts",
			entity.ErrEmbeddingService, len(resp.Embeddings), len(texts))
	}

	vectors := make([][]float32, len(resp.Embeddings))
	for i, emb := range resp.Embeddings {
		if len(emb.Values) == 0 {
			return nil, fmt.Errorf("%w: empty embedding at position %d", entity.ErrEmbeddingService, i)
		}
		vectors[i] = emb.Values
	}

	ctxzap.Debug(ctx, "texts embedded", zap.Int("dimension", len(vectors[0])))

	return vectors, nil
}

// Generate produces an answer for the assembled prompt via generateContent.
func (c *Connector) Generate(ctx context.Context, prompt string) (string, error) {
	ctxzap.Debug(ctx, "generating answer via Google AI", zap.Int("prompt_length", len(prompt)))

	req := &entity.GoogleAIGenerateRequest{
		Contents: []entity.GoogleAIContent{
			{
				Role:  "user",
				Parts: []entity.GoogleAIPart{{Text: prompt}},
			},
		},
		GenerationConfig: entity.GoogleAIGenerationConfig{
			Temperature:     c.config.Temperature,
			MaxOutputTokens: c.config.MaxOutputTokens,
		},
	}

	endpoint := fmt.Sprintf("/v1beta/models/%s:generateContent", c.config.GenerateModel)

	var resp entity.GoogleAIGenerateResponse
	err := c.doWithRetry(ctx, func() error {
		return c.connector.DoRequest(ctx, http.MethodPost, endpoint, req, &resp)
	})
	if err != nil {
		ctxzap.Error(ctx, "generation request failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", entity.ErrGenerationService, err)
	}

	answer := extractText(&resp)
	if answer == "" {
		return "", fmt.Errorf("%w: response contains no candidates", entity.ErrGenerationService)
	}

	ctxzap.Debug(ctx, "answer generated", zap.Int("answer_length", len(answer)))

	return answer, nil
}

func (c *Connector) doWithRetry(ctx context.Context, fn func() error) error {
	opts := append(c.config.Retry.ToRetryOptions(),
		retry.Context(ctx),
		retry.RetryIf(isRetryable),
	)
	return retry.Do(fn, opts...)
}

// isRetryable allows retries on network failures and server-side errors;
// auth and quota failures surface immediately.
func isRetryable(err error) bool {
	var httpErr *pkghttp.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= 500
	}
	var netErr *pkghttp.NetworkError
	return errors.As(err, &netErr)
}

func extractText(resp *entity.GoogleAIGenerateResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return strings.TrimSpace(sb.String())
}
