package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/studykit/internal/core/domain"
	"github.com/custodia-labs/studykit/internal/core/ports/driven"
	"github.com/custodia-labs/studykit/internal/core/ports/driving"
	"github.com/custodia-labs/studykit/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService manages a user's documents.
type DocumentService struct {
	docs driven.DocumentStore
}

// NewDocumentService creates a new document service.
func NewDocumentService(docs driven.DocumentStore) *DocumentService {
	return &DocumentService{docs: docs}
}

// List returns the user's documents.
func (s *DocumentService) List(ctx context.Context, userID string) ([]domain.Document, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.docs.ListDocuments(ctx, userID)
}

// Get returns one document, verifying ownership.
func (s *DocumentService) Get(ctx context.Context, userID, documentID string) (*domain.Document, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}

	doc, err := s.docs.GetDocument(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	if doc.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	return doc, nil
}

// Delete removes a document and, by cascade, all of its chunks.
func (s *DocumentService) Delete(ctx context.Context, userID, documentID string) error {
	doc, err := s.Get(ctx, userID, documentID)
	if err != nil {
		return err
	}

	if err := s.docs.DeleteDocument(ctx, doc.ID); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	logger.Info("Deleted document %s", doc.ID)
	return nil
}
