package validator

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/docchat/docchat-backend/internal/config"
	"github.com/docchat/docchat-backend/internal/entity"
)

var AllowedExtensions = map[string]bool{
	".pdf": true,
}

// Validator validates document uploads
type Validator struct {
	cfg config.FileUploadConfig
}

func NewFileValidator(cfg config.FileUploadConfig) *Validator {
	return &Validator{cfg: cfg}
}

// ValidateUpload checks the extension and size of an uploaded document.
func (v *Validator) ValidateUpload(fh *multipart.FileHeader) error {
	if fh == nil || fh.Filename == "" {
		return fmt.Errorf("%w: no file selected", entity.ErrInvalidFile)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if _, ok := AllowedExtensions[ext]; !ok {
		return fmt.Errorf("%w: %q (only PDF files are allowed)", entity.ErrInvalidExtension, ext)
	}

	if fh.Size > v.cfg.MaxFileSize {
		return fmt.Errorf("%w: file is %d bytes (max %d)", entity.ErrFileTooLarge, fh.Size, v.cfg.MaxFileSize)
	}

	return nil
}

var unsafeChars = regexp.MustCompile(`[^\w\-.]+`)

// SanitizeFilename strips path components and unsafe characters so the name
// can be used on disk.
func SanitizeFilename(filename string) string {
	filename = filepath.Base(filename)
	filename = strings.ReplaceAll(filename, " ", "_")
	filename = unsafeChars.ReplaceAllString(filename, "")
	if filename == "" || filename == "." {
		filename = "document.pdf"
	}
	return filename
}
