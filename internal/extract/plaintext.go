package extract

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/custodia-labs/studykit/internal/core/domain"
	"github.com/custodia-labs/studykit/internal/core/ports/driven"
)

// Ensure PlainText implements the interface.
var _ driven.Extractor = (*PlainText)(nil)

// PlainText handles text/plain uploads.
type PlainText struct{}

// NewPlainText creates a new plain text extractor.
func NewPlainText() *PlainText {
	return &PlainText{}
}

// Media returns the media kind this extractor handles.
func (e *PlainText) Media() domain.MediaType {
	return domain.MediaText
}

// Extract returns the upload bytes as UTF-8 text.
func (e *PlainText) Extract(_ context.Context, data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("plaintext: content is not valid UTF-8")
	}
	return string(data), nil
}
