package memory

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/studykit/internal/core/domain"
	"github.com/custodia-labs/studykit/internal/core/ports/driven"
)

// Ensure ChunkStore implements the interface.
var _ driven.ChunkStore = (*ChunkStore)(nil)

// ChunkStore is an in-memory implementation of driven.ChunkStore for
// testing. It resolves document names and scopes through the document
// store it is attached to.
type ChunkStore struct {
	mu     sync.RWMutex
	chunks []domain.Chunk
	docs   *DocumentStore
}

// NewChunkStore creates a new in-memory chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{}
}

// Attach wires the document store used to resolve scopes and names.
func (s *ChunkStore) Attach(docs *DocumentStore) {
	s.docs = docs
}

// InsertChunks stores chunks in insertion order.
func (s *ChunkStore) InsertChunks(_ context.Context, chunks []domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = append(s.chunks, chunks...)
	return nil
}

// SimilaritySearch ranks embedded chunks in scope by cosine similarity.
func (s *ChunkStore) SimilaritySearch(_ context.Context, scope domain.Scope, query []float32, limit int, minSimilarity float64) ([]domain.ScoredChunk, error) {
	var scored []domain.ScoredChunk
	for _, sc := range s.inScope(scope) {
		if sc.Chunk.Embedding == nil {
			continue
		}
		sc.Similarity = cosine(query, sc.Chunk.Embedding)
		if sc.Similarity >= minSimilarity {
			scored = append(scored, sc)
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

// KeywordSearch returns chunks containing any keyword, case-insensitive.
func (s *ChunkStore) KeywordSearch(_ context.Context, scope domain.Scope, keywords []string, limit int) ([]domain.ScoredChunk, error) {
	if len(keywords) == 0 {
		return nil, nil
	}

	var matched []domain.ScoredChunk
	for _, sc := range s.inScope(scope) {
		content := strings.ToLower(sc.Chunk.Content)
		for _, kw := range keywords {
			if strings.Contains(content, strings.ToLower(kw)) {
				matched = append(matched, sc)
				break
			}
		}
		if len(matched) == limit {
			break
		}
	}
	return matched, nil
}

// FirstChunks returns the earliest chunks in scope.
func (s *ChunkStore) FirstChunks(_ context.Context, scope domain.Scope, limit int) ([]domain.ScoredChunk, error) {
	chunks := s.inScope(scope)
	if len(chunks) > limit {
		chunks = chunks[:limit]
	}
	return chunks, nil
}

// CountChunks reports how many chunks exist in scope.
func (s *ChunkStore) CountChunks(_ context.Context, scope domain.Scope) (int, error) {
	return len(s.inScope(scope)), nil
}

// inScope returns the scoped chunks in document creation order, each
// carrying its document's name.
func (s *ChunkStore) inScope(scope domain.Scope) []domain.ScoredChunk {
	s.mu.RLock()
	byDoc := make(map[string][]domain.Chunk)
	for _, c := range s.chunks {
		byDoc[c.DocumentID] = append(byDoc[c.DocumentID], c)
	}
	s.mu.RUnlock()

	var result []domain.ScoredChunk
	for _, docID := range s.docs.documentOrder() {
		if scope.IsWorkspace() {
			if s.docs.workspaceOf(docID) != scope.WorkspaceID {
				continue
			}
		} else if docID != scope.DocumentID {
			continue
		}

		chunks := byDoc[docID]
		sort.SliceStable(chunks, func(i, j int) bool {
			return chunks[i].Index < chunks[j].Index
		})
		name := s.docs.documentName(docID)
		for _, c := range chunks {
			result = append(result, domain.ScoredChunk{Chunk: c, DocumentName: name})
		}
	}
	return result
}

// deleteByDocument removes all chunks of a document.
func (s *ChunkStore) deleteByDocument(documentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.chunks[:0]
	for _, c := range s.chunks {
		if c.DocumentID != documentID {
			kept = append(kept, c)
		}
	}
	s.chunks = kept
}

// cosine computes cosine similarity; mismatched or zero vectors score zero.
func cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
