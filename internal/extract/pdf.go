package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/studykit/internal/core/domain"
	"github.com/custodia-labs/studykit/internal/core/ports/driven"
)

// Ensure PDF implements the interface.
var _ driven.Extractor = (*PDF)(nil)

// PDF handles application/pdf uploads. Parsing is delegated to the
// pdf library; this extractor only concatenates the plain text.
type PDF struct{}

// NewPDF creates a new PDF extractor.
func NewPDF() *PDF {
	return &PDF{}
}

// Media returns the media kind this extractor handles.
func (e *PDF) Media() domain.MediaType {
	return domain.MediaPDF
}

// Extract returns the plain text of all pages.
func (e *PDF) Extract(_ context.Context, data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	text, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, text); err != nil {
		return "", fmt.Errorf("copy pdf text: %w", err)
	}

	return buf.String(), nil
}
