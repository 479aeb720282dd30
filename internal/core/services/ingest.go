package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/studykit/internal/core/domain"
	"github.com/custodia-labs/studykit/internal/core/ports/driven"
	"github.com/custodia-labs/studykit/internal/core/ports/driving"
	"github.com/custodia-labs/studykit/internal/logger"
	"github.com/custodia-labs/studykit/internal/postprocessors/chunker"
	"github.com/custodia-labs/studykit/internal/throttle"
)

// Ensure IngestOrchestrator implements the interface.
var _ driving.IngestService = (*IngestOrchestrator)(nil)

// IngestOrchestrator coordinates upload → extract → chunk → embed →
// persist. Embedding is throttled and best-effort: a provider failure
// degrades the chunk to a nil embedding instead of aborting ingestion.
type IngestOrchestrator struct {
	docs       driven.DocumentStore
	chunks     driven.ChunkStore
	workspaces driven.WorkspaceStore
	extractors driven.ExtractorRegistry
	splitter   *chunker.Processor
	embedder   driven.EmbeddingService
	limiter    *throttle.Throttle
}

// NewIngestOrchestrator creates a new ingestion orchestrator.
// The embedder and limiter are optional (can be nil); without an
// embedder every chunk persists with a nil embedding.
func NewIngestOrchestrator(
	docs driven.DocumentStore,
	chunks driven.ChunkStore,
	workspaces driven.WorkspaceStore,
	extractors driven.ExtractorRegistry,
	splitter *chunker.Processor,
	embedder driven.EmbeddingService,
	limiter *throttle.Throttle,
) *IngestOrchestrator {
	return &IngestOrchestrator{
		docs:       docs,
		chunks:     chunks,
		workspaces: workspaces,
		extractors: extractors,
		splitter:   splitter,
		embedder:   embedder,
		limiter:    limiter,
	}
}

// Ingest processes one upload for the user.
func (o *IngestOrchestrator) Ingest(ctx context.Context, userID string, upload domain.Upload) (*domain.Document, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if len(upload.Data) == 0 {
		return nil, fmt.Errorf("%w: no file provided", domain.ErrInvalidInput)
	}

	logger.Section("Ingestion")
	logger.Debug("Upload: %s (%s, %d bytes)", upload.Name, upload.Media, len(upload.Data))

	// Reject unsupported media and empty extractions before any row
	// is written.
	extractor, err := o.extractors.ForMedia(upload.Media)
	if err != nil {
		return nil, err
	}

	text, err := extractor.Extract(ctx, upload.Data)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyDocument
	}

	if upload.WorkspaceID != "" {
		ws, err := o.workspaces.Get(ctx, upload.WorkspaceID)
		if err != nil {
			return nil, fmt.Errorf("get workspace: %w", err)
		}
		if ws.UserID != userID {
			return nil, domain.ErrUnauthorized
		}
	}

	doc := &domain.Document{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      upload.Name,
		Media:     upload.Media,
		Content:   text,
		CreatedAt: time.Now().UTC(),
	}
	if upload.WorkspaceID != "" {
		wsID := upload.WorkspaceID
		doc.WorkspaceID = &wsID
	}

	// The document row is written before its chunks. A crash between
	// the two leaves an orphaned document whose chunks can be
	// regenerated from the stored content.
	if err := o.docs.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}

	pieces := o.splitter.Split(text)
	logger.Debug("Split into %d chunks", len(pieces))

	chunks := make([]domain.Chunk, len(pieces))
	for i, piece := range pieces {
		chunks[i] = domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			Content:    piece,
			Index:      i,
		}

		embedding, err := o.embedChunk(ctx, piece)
		if err != nil {
			// Cancellation stops further chunk processing; rows
			// persisted so far stay intact.
			return nil, err
		}
		chunks[i].Embedding = embedding
	}

	if len(chunks) > 0 {
		if err := o.chunks.InsertChunks(ctx, chunks); err != nil {
			return nil, fmt.Errorf("save chunks: %w", err)
		}
	}

	logger.Info("Ingested %s: %d chunks", doc.Name, len(chunks))
	return doc, nil
}

// embedChunk generates one embedding under the throttle. Provider
// failures degrade to a nil embedding; only context cancellation is
// propagated as an error.
func (o *IngestOrchestrator) embedChunk(ctx context.Context, text string) ([]float32, error) {
	if o.embedder == nil {
		return nil, nil
	}

	if o.limiter != nil {
		if err := o.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	embedding, err := o.embedder.Embed(ctx, text)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.Warn("Embedding failed, storing chunk without vector: %v", err)
		return nil, nil
	}
	return embedding, nil
}
