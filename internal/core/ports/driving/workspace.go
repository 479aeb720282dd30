package driving

import (
	"context"

	"github.com/custodia-labs/studykit/internal/core/domain"
)

// WorkspaceService manages a user's workspaces.
type WorkspaceService interface {
	// Create makes a new named workspace for the user.
	Create(ctx context.Context, userID, name string) (*domain.Workspace, error)

	// List returns the user's workspaces.
	List(ctx context.Context, userID string) ([]domain.Workspace, error)

	// Documents returns the documents in a workspace, verifying ownership.
	Documents(ctx context.Context, userID, workspaceID string) ([]domain.Document, error)

	// Delete removes an empty workspace. Deleting a workspace that
	// still contains documents fails with domain.ErrWorkspaceNotEmpty.
	Delete(ctx context.Context, userID, workspaceID string) error
}
