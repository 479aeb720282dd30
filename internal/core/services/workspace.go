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
)

// Ensure WorkspaceService implements the interface.
var _ driving.WorkspaceService = (*WorkspaceService)(nil)

// WorkspaceService manages a user's workspaces.
type WorkspaceService struct {
	workspaces driven.WorkspaceStore
	docs       driven.DocumentStore
}

// NewWorkspaceService creates a new workspace service.
func NewWorkspaceService(workspaces driven.WorkspaceStore, docs driven.DocumentStore) *WorkspaceService {
	return &WorkspaceService{
		workspaces: workspaces,
		docs:       docs,
	}
}

// Create makes a new named workspace for the user.
func (s *WorkspaceService) Create(ctx context.Context, userID, name string) (*domain.Workspace, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: workspace name required", domain.ErrInvalidInput)
	}

	ws := &domain.Workspace{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.workspaces.Save(ctx, ws); err != nil {
		return nil, fmt.Errorf("save workspace: %w", err)
	}
	return ws, nil
}

// List returns the user's workspaces.
func (s *WorkspaceService) List(ctx context.Context, userID string) ([]domain.Workspace, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.workspaces.ListByUser(ctx, userID)
}

// Documents returns the documents in a workspace, verifying ownership.
func (s *WorkspaceService) Documents(ctx context.Context, userID, workspaceID string) ([]domain.Document, error) {
	if _, err := s.get(ctx, userID, workspaceID); err != nil {
		return nil, err
	}
	return s.docs.ListWorkspaceDocuments(ctx, workspaceID)
}

// Delete removes an empty workspace. Workspaces that still contain
// documents are refused; documents must be deleted or detached first.
func (s *WorkspaceService) Delete(ctx context.Context, userID, workspaceID string) error {
	ws, err := s.get(ctx, userID, workspaceID)
	if err != nil {
		return err
	}

	docs, err := s.docs.ListWorkspaceDocuments(ctx, workspaceID)
	if err != nil {
		return fmt.Errorf("list workspace documents: %w", err)
	}
	if len(docs) > 0 {
		return fmt.Errorf("%w: %d document(s) remain", domain.ErrWorkspaceNotEmpty, len(docs))
	}

	return s.workspaces.Delete(ctx, ws.ID)
}

// get fetches a workspace and verifies ownership.
func (s *WorkspaceService) get(ctx context.Context, userID, workspaceID string) (*domain.Workspace, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}

	ws, err := s.workspaces.Get(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("get workspace: %w", err)
	}
	if ws.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	return ws, nil
}
