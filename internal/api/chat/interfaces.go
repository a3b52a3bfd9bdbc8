package chat

import (
	"context"

	"github.com/docchat/docchat-backend/internal/entity"
)

type ChatUsecase interface {
	UploadDocument(ctx context.Context, path, filename string) (string, error)
	Ask(ctx context.Context, sessionID, message string) (string, error)
	Clear(ctx context.Context, sessionID string) error
	Status(ctx context.Context, sessionID string) entity.SessionStatus
}
