package entity

// Wire types for the Google Generative Language REST API (v1beta).

// GoogleAIPart is a single content part; only text parts are used here.
type GoogleAIPart struct {
	Text string `json:"text"`
}

// GoogleAIContent is a block of parts optionally tagged with a role.
type GoogleAIContent struct {
	Role  string         `json:"role,omitempty"`
	Parts []GoogleAIPart `json:"parts"`
}

// GoogleAIEmbedRequest is one entry of a batchEmbedContents call.
type GoogleAIEmbedRequest struct {
	Model   string          `json:"model"`
	Content GoogleAIContent `json:"content"`
}

// GoogleAIBatchEmbedRequest is the body of models/{model}:batchEmbedContents.
type GoogleAIBatchEmbedRequest struct {
	Requests []GoogleAIEmbedRequest `json:"requests"`
}

// GoogleAIEmbedding holds one embedding vector.
type GoogleAIEmbedding struct {
	Values []float32 `json:"values"`
}

// GoogleAIBatchEmbedResponse is the response of batchEmbedContents; embeddings
// come back in request order.
type GoogleAIBatchEmbedResponse struct {
	Embeddings []GoogleAIEmbedding `json:"embeddings"`
}

// GoogleAIGenerationConfig tunes the generation call.
type GoogleAIGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// GoogleAIGenerateRequest is the body of models/{model}:generateContent.
type GoogleAIGenerateRequest struct {
	Contents         []GoogleAIContent        `json:"contents"`
	GenerationConfig GoogleAIGenerationConfig `json:"generationConfig"`
}

// GoogleAICandidate is one generated answer candidate.
type GoogleAICandidate struct {
	Content      GoogleAIContent `json:"content"`
	FinishReason string          `json:"finishReason,omitempty"`
}

// GoogleAIGenerateResponse is the response of generateContent.
type GoogleAIGenerateResponse struct {
	Candidates []GoogleAICandidate `json:"candidates"`
}
