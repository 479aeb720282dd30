package driven

import (
	"context"

	"github.com/custodia-labs/studykit/internal/core/domain"
)

// WorkspaceStore persists workspaces.
type WorkspaceStore interface {
	// Save stores a workspace.
	Save(ctx context.Context, ws *domain.Workspace) error

	// Get retrieves a workspace by ID.
	Get(ctx context.Context, id string) (*domain.Workspace, error)

	// ListByUser returns all workspaces owned by a user.
	ListByUser(ctx context.Context, userID string) ([]domain.Workspace, error)

	// Delete removes a workspace. It does not cascade to documents;
	// callers must empty the workspace first.
	Delete(ctx context.Context, id string) error
}
