package validator

import (
	"errors"
	"mime/multipart"
	"testing"

	"github.com/docchat/docchat-backend/internal/config"
	"github.com/docchat/docchat-backend/internal/entity"
)

func newTestValidator() *Validator {
	return NewFileValidator(config.FileUploadConfig{
		MaxFileSize: 16 << 20,
		UploadDir:   "uploads",
	})
}

func TestValidateUpload(t *testing.T) {
	v := newTestValidator()

	cases := []struct {
		name    string
		header  *multipart.FileHeader
		wantErr error
	}{
		{
			name:    "valid pdf",
			header:  &multipart.FileHeader{Filename: "report.pdf", Size: 1024},
			wantErr: nil,
		},
		{
			name:    "uppercase extension",
			header:  &multipart.FileHeader{Filename: "REPORT.PDF", Size: 1024},
			wantErr: nil,
		},
		{
			name:    "nil header",
			header:  nil,
			wantErr: entity.ErrInvalidFile,
		},
		{
			name:    "empty filename",
			header:  &multipart.FileHeader{Filename: "", Size: 10},
			wantErr: entity.ErrInvalidFile,
		},
		{
			name:    "wrong extension",
			header:  &multipart.FileHeader{Filename: "notes.txt", Size: 10},
			wantErr: entity.ErrInvalidExtension,
		},
		{
			name:    "no extension",
			header:  &multipart.FileHeader{Filename: "archive", Size: 10},
			wantErr: entity.ErrInvalidExtension,
		},
		{
			name:    "too large",
			header:  &multipart.FileHeader{Filename: "big.pdf", Size: 17 << 20},
			wantErr: entity.ErrFileTooLarge,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.ValidateUpload(tc.header)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"report.pdf", "report.pdf"},
		{"my report.pdf", "my_report.pdf"},
		{"../../etc/passwd.pdf", "passwd.pdf"},
		{"r$sum!.pdf", "rsum.pdf"},
		{"", "document.pdf"},
	}

	for _, tc := range cases {
		if got := SanitizeFilename(tc.in); got != tc.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
