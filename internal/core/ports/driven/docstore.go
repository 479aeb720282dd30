package driven

import (
	"context"

	"github.com/custodia-labs/studykit/internal/core/domain"
)

// DocumentStore persists documents.
// Backed by SQLite for metadata storage.
type DocumentStore interface {
	// SaveDocument stores a document.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// ListDocuments returns all documents owned by a user.
	ListDocuments(ctx context.Context, userID string) ([]domain.Document, error)

	// ListWorkspaceDocuments returns all documents in a workspace.
	ListWorkspaceDocuments(ctx context.Context, workspaceID string) ([]domain.Document, error)

	// DeleteDocument removes a document and, by cascade, its chunks.
	DeleteDocument(ctx context.Context, id string) error
}
