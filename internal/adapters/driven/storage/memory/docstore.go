// Package memory provides in-memory store implementations for testing.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/studykit/internal/core/domain"
	"github.com/custodia-labs/studykit/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore
// for testing.
type DocumentStore struct {
	mu     sync.RWMutex
	docs   map[string]domain.Document
	chunks *ChunkStore
}

// NewDocumentStore creates a new in-memory document store. When a chunk
// store is provided, deleting a document cascades to its chunks.
func NewDocumentStore(chunks *ChunkStore) *DocumentStore {
	return &DocumentStore{
		docs:   make(map[string]domain.Document),
		chunks: chunks,
	}
}

// SaveDocument stores a document.
func (s *DocumentStore) SaveDocument(_ context.Context, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = *doc
	return nil
}

// GetDocument retrieves a document by ID.
func (s *DocumentStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// ListDocuments returns all documents owned by a user.
func (s *DocumentStore) ListDocuments(_ context.Context, userID string) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var docs []domain.Document
	for _, doc := range s.docs {
		if doc.UserID == userID {
			docs = append(docs, doc)
		}
	}
	sortDocuments(docs)
	return docs, nil
}

// ListWorkspaceDocuments returns all documents in a workspace.
func (s *DocumentStore) ListWorkspaceDocuments(_ context.Context, workspaceID string) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var docs []domain.Document
	for _, doc := range s.docs {
		if doc.WorkspaceID != nil && *doc.WorkspaceID == workspaceID {
			docs = append(docs, doc)
		}
	}
	sortDocuments(docs)
	return docs, nil
}

// DeleteDocument removes a document and cascades to its chunks.
func (s *DocumentStore) DeleteDocument(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.docs, id)
	s.mu.Unlock()

	if s.chunks != nil {
		s.chunks.deleteByDocument(id)
	}
	return nil
}

// documentName resolves a document's display name for attribution.
func (s *DocumentStore) documentName(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docs[id].Name
}

// documentOrder lists document IDs by creation time for scoped queries.
func (s *DocumentStore) documentOrder() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]domain.Document, 0, len(s.docs))
	for _, doc := range s.docs {
		docs = append(docs, doc)
	}
	sortDocuments(docs)

	ids := make([]string, len(docs))
	for i, doc := range docs {
		ids[i] = doc.ID
	}
	return ids
}

// workspaceOf reports the workspace a document belongs to, if any.
func (s *DocumentStore) workspaceOf(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok || doc.WorkspaceID == nil {
		return ""
	}
	return *doc.WorkspaceID
}

func sortDocuments(docs []domain.Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		if docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].ID < docs[j].ID
		}
		return docs[i].CreatedAt.Before(docs[j].CreatedAt)
	})
}
