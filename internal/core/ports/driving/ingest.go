package driving

import (
	"context"

	"github.com/custodia-labs/studykit/internal/core/domain"
)

// IngestService turns an upload into a persisted document with chunks.
type IngestService interface {
	// Ingest extracts text, persists the document, chunks it, embeds
	// each chunk (degrading to nil embeddings on provider failure) and
	// persists the chunks in capped batches. Unsupported media kinds
	// and empty extractions are rejected before anything is written.
	Ingest(ctx context.Context, userID string, upload domain.Upload) (*domain.Document, error)
}
