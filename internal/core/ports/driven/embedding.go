package driven

import "context"

// EmbeddingService generates vector embeddings from text.
// This is an optional service - when nil, chunks are persisted without
// embeddings and retrieval degrades to the lexical tiers.
//
// Embedding is an enhancement, never a requirement: an error from Embed
// must not abort ingestion. The service issues one request per text;
// rate limiting across a batch is the caller's responsibility.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size (384 across the system).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string
}
