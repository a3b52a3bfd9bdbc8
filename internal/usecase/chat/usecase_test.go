package chat

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/docchat/docchat-backend/internal/config"
	"github.com/docchat/docchat-backend/internal/entity"
	"go.uber.org/zap"
)

func testConfigs() (config.ChatConfig, config.SessionConfig) {
	chatCfg := config.ChatConfig{
		ChunkSize:    500,
		ChunkOverlap: 100,
		TopK:         4,
		MemoryWindow: 5,
	}
	sessionCfg := config.SessionConfig{
		TTL:             time.Minute,
		CleanupInterval: time.Minute,
	}
	return chatCfg, sessionCfg
}

func newTestUsecase(loader *mockLoader, generator *mockGenerator) *Usecase {
	chatCfg, sessionCfg := testConfigs()
	return NewUsecase(chatCfg, sessionCfg, loader, &mockEmbedder{}, generator, zap.NewNop())
}

func writeTempFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "upload.pdf")
	if err := os.WriteFile(path, []byte("%PDF-fake"), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestUsecase_UploadCreatesSession(t *testing.T) {
	uc := newTestUsecase(&mockLoader{pages: []string{"capacity document"}}, &mockGenerator{answer: "answer"})
	path := writeTempFile(t)

	sessionID, err := uc.UploadDocument(context.Background(), path, "upload.pdf")
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if sessionID == "" {
		t.Fatal("expected non-empty session ID")
	}

	status := uc.Status(context.Background(), sessionID)
	if !status.Ready || status.Filename != "upload.pdf" {
		t.Errorf("unexpected status: %+v", status)
	}
}

func TestUsecase_UploadFailureRemovesFile(t *testing.T) {
	uc := newTestUsecase(&mockLoader{err: entity.ErrDocumentLoad}, &mockGenerator{})
	path := writeTempFile(t)

	_, err := uc.UploadDocument(context.Background(), path, "upload.pdf")
	if !errors.Is(err, entity.ErrDocumentLoad) {
		t.Fatalf("expected ErrDocumentLoad, got %v", err)
	}

	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("failed upload must remove the file")
	}
}

func TestUsecase_AskUnknownSession(t *testing.T) {
	uc := newTestUsecase(&mockLoader{pages: []string{"text"}}, &mockGenerator{})

	_, err := uc.Ask(context.Background(), "no-such-session", "hello")
	if !errors.Is(err, entity.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestUsecase_AskRoundTrip(t *testing.T) {
	generator := &mockGenerator{answer: "The capacity is 120 guests."}
	uc := newTestUsecase(&mockLoader{pages: []string{"The capacity is 120 guests."}}, generator)
	path := writeTempFile(t)

	sessionID, err := uc.UploadDocument(context.Background(), path, "upload.pdf")
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	answer, err := uc.Ask(context.Background(), sessionID, "what is the capacity?")
	if err != nil {
		t.Fatalf("ask failed: %v", err)
	}
	if answer != generator.answer {
		t.Errorf("expected generated answer, got %q", answer)
	}
}

func TestUsecase_ClearDestroysSessionAndFile(t *testing.T) {
	uc := newTestUsecase(&mockLoader{pages: []string{"text"}}, &mockGenerator{answer: "a"})
	path := writeTempFile(t)

	sessionID, err := uc.UploadDocument(context.Background(), path, "upload.pdf")
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	if err := uc.Clear(context.Background(), sessionID); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	if _, err := uc.Ask(context.Background(), sessionID, "hello"); !errors.Is(err, entity.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after clear, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("clear must remove the uploaded file")
	}
	if status := uc.Status(context.Background(), sessionID); status.Ready {
		t.Error("cleared session must not report ready")
	}
}

func TestUsecase_ClearUnknownSessionIsNoop(t *testing.T) {
	uc := newTestUsecase(&mockLoader{}, &mockGenerator{})

	if err := uc.Clear(context.Background(), "no-such-session"); err != nil {
		t.Errorf("clear of unknown session must be a no-op, got %v", err)
	}
}

func TestUsecase_NewUploadReplacesNothingShared(t *testing.T) {
	uc := newTestUsecase(&mockLoader{pages: []string{"text"}}, &mockGenerator{answer: "a"})

	first := writeTempFile(t)
	firstID, err := uc.UploadDocument(context.Background(), first, "first.pdf")
	if err != nil {
		t.Fatalf("first upload failed: %v", err)
	}

	second := writeTempFile(t)
	secondID, err := uc.UploadDocument(context.Background(), second, "second.pdf")
	if err != nil {
		t.Fatalf("second upload failed: %v", err)
	}

	if firstID == secondID {
		t.Fatal("each upload must get its own session")
	}

	// Clearing one session leaves the other untouched.
	if err := uc.Clear(context.Background(), firstID); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if status := uc.Status(context.Background(), secondID); !status.Ready {
		t.Error("unrelated session must stay ready")
	}
}
