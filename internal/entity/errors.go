package entity

import "errors"

// Domain errors
var (
	// Pipeline errors
	ErrDocumentLoad      = errors.New("failed to load document")
	ErrEmbeddingService  = errors.New("embedding service failed")
	ErrGenerationService = errors.New("generation service failed")

	// Chat errors
	ErrEmptyMessage    = errors.New("message is empty")
	ErrNotInitialized  = errors.New("chat service is not initialized")
	ErrSessionNotFound = errors.New("session not found")

	// Upload errors
	ErrInvalidFile      = errors.New("invalid file")
	ErrInvalidExtension = errors.New("invalid file extension")
	ErrFileTooLarge     = errors.New("file too large")

	// Validation errors
	ErrMissingField = errors.New("required field is missing")
)
