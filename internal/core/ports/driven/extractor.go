package driven

import (
	"context"

	"github.com/custodia-labs/studykit/internal/core/domain"
)

// Extractor turns raw upload bytes into plain text for one media kind.
// Extraction internals (PDF parsing) are a black-box capability.
type Extractor interface {
	// Extract returns the plain text content of the upload.
	Extract(ctx context.Context, data []byte) (string, error)

	// Media returns the media kind this extractor handles.
	Media() domain.MediaType
}

// ExtractorRegistry selects the extractor for an upload's media kind.
type ExtractorRegistry interface {
	// ForMedia returns the extractor for the media kind, or
	// domain.ErrUnsupportedType when none is registered.
	ForMedia(media domain.MediaType) (Extractor, error)
}
