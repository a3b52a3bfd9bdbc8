package chat

import (
	"context"
	"fmt"
	"os"

	"github.com/docchat/docchat-backend/internal/chunker"
	"github.com/docchat/docchat-backend/internal/config"
	"github.com/docchat/docchat-backend/internal/entity"
	"github.com/docchat/docchat-backend/internal/index"
	"github.com/docchat/docchat-backend/internal/memory"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

type sessionEntry struct {
	orchestrator *Orchestrator
	path         string
	filename     string
}

// Usecase maps session IDs to chat orchestrators. Sessions are created on
// successful upload, expire after a TTL of inactivity, and are cleaned up
// (index, memory, uploaded file) on eviction.
type Usecase struct {
	chatCfg   config.ChatConfig
	loader    DocumentLoader
	embedder  Embedder
	generator Generator
	sessions  *gocache.Cache
	logger    *zap.Logger
}

func NewUsecase(
	chatCfg config.ChatConfig,
	sessionCfg config.SessionConfig,
	loader DocumentLoader,
	embedder Embedder,
	generator Generator,
	logger *zap.Logger,
) *Usecase {
	sessions := gocache.New(sessionCfg.TTL, sessionCfg.CleanupInterval)

	uc := &Usecase{
		chatCfg:   chatCfg,
		loader:    loader,
		embedder:  embedder,
		generator: generator,
		sessions:  sessions,
		logger:    logger,
	}

	sessions.OnEvicted(func(sessionID string, value any) {
		entry, ok := value.(*sessionEntry)
		if !ok {
			return
		}
		entry.orchestrator.Clear()
		if err := os.Remove(entry.path); err != nil && !os.IsNotExist(err) {
			logger.Warn("failed to remove uploaded file",
				zap.String("session_id", sessionID),
				zap.String("path", entry.path),
				zap.Error(err),
			)
		}
		logger.Info("session evicted", zap.String("session_id", sessionID))
	})

	return uc
}

// UploadDocument builds a new orchestrator for the file at path and returns
// the session ID it is registered under. On build failure the uploaded file
// is removed and no session is created.
func (uc *Usecase) UploadDocument(ctx context.Context, path, filename string) (string, error) {
	orch := uc.newOrchestrator()

	if err := orch.Build(ctx, path, filename); err != nil {
		if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
			ctxzap.Warn(ctx, "failed to remove uploaded file after build failure",
				zap.String("path", path),
				zap.Error(rmErr),
			)
		}
		return "", fmt.Errorf("process document: %w", err)
	}

	sessionID := uuid.New().String()
	uc.sessions.SetDefault(sessionID, &sessionEntry{
		orchestrator: orch,
		path:         path,
		filename:     filename,
	})

	ctxzap.Info(ctx, "chat session created",
		zap.String("session_id", sessionID),
		zap.String("filename", filename),
	)

	return sessionID, nil
}

// Ask forwards the message to the session's orchestrator and refreshes the
// session TTL.
func (uc *Usecase) Ask(ctx context.Context, sessionID, message string) (string, error) {
	entry, err := uc.get(sessionID)
	if err != nil {
		return "", err
	}

	answer, err := entry.orchestrator.Ask(ctx, message)
	if err != nil {
		return "", err
	}

	uc.sessions.SetDefault(sessionID, entry)

	return answer, nil
}

// Clear destroys the session: index and memory are released and the uploaded
// file is deleted. Clearing an unknown session is a no-op.
func (uc *Usecase) Clear(ctx context.Context, sessionID string) error {
	if _, found := uc.sessions.Get(sessionID); !found {
		return nil
	}

	// Delete triggers the eviction handler, which does the cleanup.
	uc.sessions.Delete(sessionID)

	ctxzap.Info(ctx, "chat session cleared", zap.String("session_id", sessionID))

	return nil
}

// Status reports whether the session exists and is ready to answer.
func (uc *Usecase) Status(ctx context.Context, sessionID string) entity.SessionStatus {
	entry, err := uc.get(sessionID)
	if err != nil {
		return entity.SessionStatus{}
	}

	return entry.orchestrator.Info()
}

// Shutdown clears all live sessions, removing their uploaded files.
func (uc *Usecase) Shutdown() {
	for sessionID := range uc.sessions.Items() {
		uc.sessions.Delete(sessionID)
	}
}

func (uc *Usecase) get(sessionID string) (*sessionEntry, error) {
	value, found := uc.sessions.Get(sessionID)
	if !found {
		return nil, entity.ErrSessionNotFound
	}

	entry, ok := value.(*sessionEntry)
	if !ok {
		return nil, entity.ErrSessionNotFound
	}

	return entry, nil
}

func (uc *Usecase) newOrchestrator() *Orchestrator {
	return NewOrchestrator(
		uc.loader,
		chunker.New(uc.chatCfg.ChunkSize, uc.chatCfg.ChunkOverlap),
		index.New(uc.embedder),
		memory.NewWindow(uc.chatCfg.MemoryWindow),
		uc.generator,
		uc.chatCfg.TopK,
	)
}
