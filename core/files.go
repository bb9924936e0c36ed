package core

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxUploadSize is the hard limit on any uploaded file.
const MaxUploadSize = 5 << 20 // 5MB

var (
	resumeContentTypes = map[string]bool{
		"application/pdf":    true,
		"application/msword": true,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	}

	fileTooLargeText    = "file must not exceed 5MB"
	resumeWrongTypeText = "only PDF, DOC and DOCX files are allowed"
	imageWrongTypeText  = "only image files are allowed"
)

type (
	// Upload is a file received from a form, pending validation and storage.
	Upload struct {
		Filename    string
		ContentType string
		Size        int64
		Body        io.Reader
	}

	// StoredFile points at a stored object and its publicly servable URL.
	StoredFile struct {
		Key string `json:"key"`
		URL string `json:"url"`
	}

	// FileStore is any service that can persist uploaded files and serve them back by URL.
	FileStore interface {
		Save(ctx context.Context, key, contentType string, body io.Reader) (StoredFile, error)
		Delete(ctx context.Context, key string) error
	}
)

// ValidateResume checks the resume upload constraints; a violation is reported
// as a ValidationError on `field`.
func (up Upload) ValidateResume(field string) error {
	if up.Size > MaxUploadSize {
		return NewValidationError(nil, FieldError{Field: field, Error: fileTooLargeText})
	}
	if !resumeContentTypes[up.ContentType] {
		return NewValidationError(nil, FieldError{Field: field, Error: resumeWrongTypeText})
	}
	return nil
}

// ValidateImage checks the image upload constraints; a violation is reported
// as a ValidationError on `field`.
func (up Upload) ValidateImage(field string) error {
	if up.Size > MaxUploadSize {
		return NewValidationError(nil, FieldError{Field: field, Error: fileTooLargeText})
	}
	if !strings.HasPrefix(up.ContentType, "image/") {
		return NewValidationError(nil, FieldError{Field: field, Error: imageWrongTypeText})
	}
	return nil
}

// Key derives a unique storage key for the upload, under `prefix`.
func (up Upload) Key(prefix string) string {
	return fmt.Sprintf("%s/%s%s", prefix, uuid.New(), strings.ToLower(filepath.Ext(up.Filename)))
}
