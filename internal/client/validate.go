// internal/client/validate.go
package client

import (
	"errors"
	"fmt"

	"github.com/gabriel-vasile/mimetype"
)

const (
	MaxDocumentBytes = 10 << 20
	DocumentMIME     = "application/pdf"
)

var (
	ErrInvalidFileType = errors.New("invalid file type: please select a PDF file")
	ErrFileTooLarge    = errors.New("file too large: the limit is 10 MB")
)

// ValidateDocument checks a file before anything is sent over the network.
func ValidateDocument(filename string, data []byte) error {
	if len(data) > MaxDocumentBytes {
		return fmt.Errorf("%s: %w", filename, ErrFileTooLarge)
	}
	if len(data) == 0 {
		return fmt.Errorf("%s is empty: %w", filename, ErrInvalidFileType)
	}
	if mt := mimetype.Detect(data); !mt.Is(DocumentMIME) {
		return fmt.Errorf("%s is %s: %w", filename, mt.String(), ErrInvalidFileType)
	}
	return nil
}
