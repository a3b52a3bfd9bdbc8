// Package loader reads PDF documents into ordered page texts.
package loader

import (
	"context"
	"fmt"
	"os"

	"github.com/docchat/docchat-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// PDFLoader extracts plain text from PDF files, one string per page.
type PDFLoader struct {
	logger *zap.Logger
}

func NewPDFLoader(logger *zap.Logger) *PDFLoader {
	return &PDFLoader{logger: logger}
}

// Load reads the PDF at path and returns the text of each page in order.
// Pages whose text cannot be extracted are returned as empty strings so the
// page count stays honest.
func (l *PDFLoader) Load(ctx context.Context, path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", entity.ErrDocumentLoad, path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: stat %s: %v", entity.ErrDocumentLoad, path, err)
	}

	reader, err := pdf.NewReader(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", entity.ErrDocumentLoad, path, err)
	}

	pageCount := reader.NumPage()
	pages := make([]string, 0, pageCount)

	for i := 1; i <= pageCount; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			ctxzap.Warn(ctx, "failed to extract text from page",
				zap.Int("page", i),
				zap.Error(err),
			)
			pages = append(pages, "")
			continue
		}

		pages = append(pages, text)
	}

	ctxzap.Info(ctx, "document loaded",
		zap.String("path", path),
		zap.Int("pages", pageCount),
	)

	return pages, nil
}
