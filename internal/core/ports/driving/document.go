package driving

import (
	"context"

	"github.com/custodia-labs/studykit/internal/core/domain"
)

// DocumentService manages a user's documents.
type DocumentService interface {
	// List returns the user's documents.
	List(ctx context.Context, userID string) ([]domain.Document, error)

	// Get returns one document, verifying ownership.
	Get(ctx context.Context, userID, documentID string) (*domain.Document, error)

	// Delete removes a document and all of its chunks.
	Delete(ctx context.Context, userID, documentID string) error
}
