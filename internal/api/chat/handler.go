package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/docchat/docchat-backend/internal/config"
	"github.com/docchat/docchat-backend/internal/entity"
	"github.com/docchat/docchat-backend/internal/pkg/logger"
	"github.com/docchat/docchat-backend/internal/pkg/response"
	"github.com/docchat/docchat-backend/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   ChatUsecase
	validator *validator.Validator
	uploadCfg config.FileUploadConfig
}

func NewHandler(usecase ChatUsecase, validator *validator.Validator, uploadCfg config.FileUploadConfig) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
		uploadCfg: uploadCfg,
	}
}

// Upload handles POST /upload - upload a PDF and build its index
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Upload")

	if err := r.ParseMultipartForm(h.uploadCfg.MaxFileSize); err != nil {
		ctxzap.Error(ctx, "failed to parse multipart form", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		ctxzap.Error(ctx, "no file in request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "No file selected")
		return
	}
	defer file.Close()

	if err := h.validator.ValidateUpload(header); err != nil {
		ctxzap.Error(ctx, "upload validation failed", zap.Error(err))
		h.respondUploadError(w, err)
		return
	}

	path, err := h.saveUpload(file, header.Filename)
	if err != nil {
		ctxzap.Error(ctx, "failed to save uploaded file", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "Upload failed")
		return
	}

	ctxzap.Info(ctx, "file uploaded",
		zap.String("filename", header.Filename),
		zap.String("path", path),
	)

	sessionID, err := h.usecase.UploadDocument(ctx, path, header.Filename)
	if err != nil {
		// The usecase already removed the file.
		ctxzap.Error(ctx, "failed to process document", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, fmt.Sprintf("Error processing PDF: %v", err))
		return
	}

	response.Success(w, entity.UploadResponse{
		Success:   true,
		Message:   fmt.Sprintf("Successfully uploaded and processed %s", header.Filename),
		Filename:  header.Filename,
		SessionID: sessionID,
	})
}

// Chat handles POST /session/{id}/chat - answer one user message
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "Chat"),
	)

	var req entity.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	answer, err := h.usecase.Ask(ctx, sessionID, req.Message)
	if err != nil {
		h.respondChatError(ctx, w, err)
		return
	}

	response.Success(w, entity.ChatResponse{
		Response: answer,
		Message:  req.Message,
	})
}

// Clear handles POST /session/{id}/clear - destroy the session and its file
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "Clear"),
	)

	if err := h.usecase.Clear(ctx, sessionID); err != nil {
		ctxzap.Error(ctx, "failed to clear session", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "Failed to clear chat")
		return
	}

	response.Success(w, entity.ClearResponse{
		Success: true,
		Message: "Chat cleared successfully",
	})
}

// Status handles GET /session/{id}/status - report session readiness
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(), zap.String("session_id", sessionID))

	status := h.usecase.Status(ctx, sessionID)

	response.Success(w, toStatusResponse(status))
}

func (h *Handler) respondChatError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrEmptyMessage):
		ctxzap.Info(ctx, "rejected empty message")
		response.Error(w, http.StatusBadRequest, "Empty message")
	case errors.Is(err, entity.ErrSessionNotFound), errors.Is(err, entity.ErrNotInitialized):
		ctxzap.Info(ctx, "chat without active document", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "Please upload a PDF file first")
	default:
		ctxzap.Error(ctx, "chat failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "Failed to process message")
	}
}

func (h *Handler) respondUploadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrInvalidExtension):
		response.Error(w, http.StatusBadRequest, "Only PDF files are allowed")
	case errors.Is(err, entity.ErrFileTooLarge):
		response.Error(w, http.StatusRequestEntityTooLarge, "File too large. Maximum size is 16MB.")
	default:
		response.Error(w, http.StatusBadRequest, "No file selected")
	}
}

// saveUpload stores the uploaded file under the upload directory with a
// unique name derived from the sanitized original.
func (h *Handler) saveUpload(file io.Reader, filename string) (string, error) {
	if err := os.MkdirAll(h.uploadCfg.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	unique := fmt.Sprintf("%s_%s", uuid.New().String(), validator.SanitizeFilename(filename))
	path := filepath.Join(h.uploadCfg.UploadDir, unique)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write file: %w", err)
	}

	return path, nil
}
