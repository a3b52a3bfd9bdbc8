package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/docchat/docchat-backend/internal/chunker"
	"github.com/docchat/docchat-backend/internal/entity"
	"github.com/docchat/docchat-backend/internal/index"
	"github.com/docchat/docchat-backend/internal/memory"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type orchestratorState int

const (
	stateUninitialized orchestratorState = iota
	stateBuilding
	stateReady
	stateFailed
	stateCleared
)

const greetingAnswer = "Hello! I'm your PDF assistant. I can help you with questions about the uploaded document. How can I assist you today?"

const apologyAnswer = "I apologize, but I encountered an error while processing your question. Please try again or rephrase your question."

var greetings = map[string]bool{
	"hi":             true,
	"hello":          true,
	"hey":            true,
	"good morning":   true,
	"good afternoon": true,
	"good evening":   true,
}

// Orchestrator owns the retrieval pipeline for one document: load, chunk,
// embed into the index, then answer questions against it. One instance per
// active document; a cleared instance cannot be reused.
type Orchestrator struct {
	loader    DocumentLoader
	chunker   *chunker.Chunker
	index     *index.Index
	memory    *memory.Window
	generator Generator
	topK      int

	mu    sync.Mutex
	state orchestratorState
	doc   entity.Document
}

func NewOrchestrator(
	loader DocumentLoader,
	chk *chunker.Chunker,
	idx *index.Index,
	mem *memory.Window,
	generator Generator,
	topK int,
) *Orchestrator {
	if topK <= 0 {
		topK = 4
	}
	return &Orchestrator{
		loader:    loader,
		chunker:   chk,
		index:     idx,
		memory:    mem,
		generator: generator,
		topK:      topK,
		state:     stateUninitialized,
	}
}

// Build runs the full index build for the document at path. It either
// completes and makes the orchestrator ready, or fails leaving it unusable.
func (o *Orchestrator) Build(ctx context.Context, path, filename string) error {
	o.mu.Lock()
	if o.state != stateUninitialized {
		o.mu.Unlock()
		return fmt.Errorf("build on already used orchestrator")
	}
	o.state = stateBuilding
	o.mu.Unlock()

	pages, err := o.loader.Load(ctx, path)
	if err != nil {
		o.fail()
		return fmt.Errorf("load document: %w", err)
	}

	chunks := o.chunker.Split(pages)
	ctxzap.Info(ctx, "document chunked",
		zap.Int("pages", len(pages)),
		zap.Int("chunks", len(chunks)),
	)

	if err := o.index.Build(ctx, chunks); err != nil {
		o.fail()
		return fmt.Errorf("build index: %w", err)
	}

	o.mu.Lock()
	o.doc = entity.Document{
		Path:       path,
		Filename:   filename,
		PageCount:  len(pages),
		UploadedAt: time.Now(),
	}
	o.state = stateReady
	o.mu.Unlock()

	ctxzap.Info(ctx, "index built", zap.Int("entries", o.index.Size()))

	return nil
}

// Ask answers one user message. Greetings short-circuit to a canned answer
// without touching retrieval, generation or memory. Generation failures are
// logged and turned into a fixed apology rather than an error.
func (o *Orchestrator) Ask(ctx context.Context, message string) (string, error) {
	o.mu.Lock()
	ready := o.state == stateReady
	o.mu.Unlock()

	if !ready {
		return "", entity.ErrNotInitialized
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return "", entity.ErrEmptyMessage
	}

	if greetings[strings.ToLower(message)] {
		return greetingAnswer, nil
	}

	contextChunks, err := o.index.Query(ctx, message, o.topK)
	if err != nil {
		ctxzap.Error(ctx, "retrieval failed", zap.Error(err))
		return apologyAnswer, nil
	}

	prompt := buildPrompt(contextChunks, o.memory.Window(), message)

	answer, err := o.generator.Generate(ctx, prompt)
	if err != nil {
		// The user sees the apology, not the failure. The turn is not
		// recorded so the next prompt is built from real conversation only.
		ctxzap.Error(ctx, "generation failed", zap.Error(err))
		return apologyAnswer, nil
	}

	o.memory.Append(entity.Turn{Role: entity.RoleUser, Text: message})
	o.memory.Append(entity.Turn{Role: entity.RoleAssistant, Text: answer})

	return answer, nil
}

// Clear releases the index and memory. Any further Ask fails with
// entity.ErrNotInitialized; only a new Build cycle on a fresh orchestrator
// can serve the session again.
func (o *Orchestrator) Clear() {
	o.mu.Lock()
	o.state = stateCleared
	o.doc = entity.Document{}
	o.mu.Unlock()

	o.index.Clear()
	o.memory.Clear()
}

// Info reports the document and readiness of this orchestrator.
func (o *Orchestrator) Info() entity.SessionStatus {
	o.mu.Lock()
	defer o.mu.Unlock()

	return entity.SessionStatus{
		HasDocument: o.state == stateReady,
		Filename:    o.doc.Filename,
		Ready:       o.state == stateReady,
	}
}

func (o *Orchestrator) fail() {
	o.mu.Lock()
	o.state = stateFailed
	o.mu.Unlock()
	o.index.Clear()
}
