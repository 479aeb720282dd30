package driven

import (
	"context"

	"github.com/custodia-labs/studykit/internal/core/domain"
)

// ChunkStore persists chunks and serves the retrieval tiers.
//
// Guarantee: when at least one chunk exists for a scope, FirstChunks
// never returns zero rows, so retrieval is never silently empty.
type ChunkStore interface {
	// InsertChunks stores chunks in capped batches. Chunks without an
	// embedding are inserted with a null vector, never dropped.
	InsertChunks(ctx context.Context, chunks []domain.Chunk) error

	// SimilaritySearch ranks chunks in scope by cosine similarity to
	// the query vector, drops results below minSimilarity, and returns
	// the top limit ordered by descending similarity. Ties keep
	// insertion order. Chunks without embeddings are not candidates.
	SimilaritySearch(ctx context.Context, scope domain.Scope, query []float32, limit int, minSimilarity float64) ([]domain.ScoredChunk, error)

	// KeywordSearch returns chunks in scope whose text contains any of
	// the keywords (case-insensitive substring match), in document order.
	KeywordSearch(ctx context.Context, scope domain.Scope, keywords []string, limit int) ([]domain.ScoredChunk, error)

	// FirstChunks returns the earliest chunks in scope by index.
	// This is the last-resort retrieval tier.
	FirstChunks(ctx context.Context, scope domain.Scope, limit int) ([]domain.ScoredChunk, error)

	// CountChunks reports how many chunks exist in scope. It separates
	// "no content at all" from "no relevant match".
	CountChunks(ctx context.Context, scope domain.Scope) (int, error)
}
