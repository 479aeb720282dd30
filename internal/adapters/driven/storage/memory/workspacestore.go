package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/studykit/internal/core/domain"
	"github.com/custodia-labs/studykit/internal/core/ports/driven"
)

// Ensure WorkspaceStore implements the interface.
var _ driven.WorkspaceStore = (*WorkspaceStore)(nil)

// WorkspaceStore is an in-memory implementation of driven.WorkspaceStore
// for testing.
type WorkspaceStore struct {
	mu         sync.RWMutex
	workspaces map[string]domain.Workspace
}

// NewWorkspaceStore creates a new in-memory workspace store.
func NewWorkspaceStore() *WorkspaceStore {
	return &WorkspaceStore{
		workspaces: make(map[string]domain.Workspace),
	}
}

// Save stores a workspace.
func (s *WorkspaceStore) Save(_ context.Context, ws *domain.Workspace) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workspaces[ws.ID] = *ws
	return nil
}

// Get retrieves a workspace by ID.
func (s *WorkspaceStore) Get(_ context.Context, id string) (*domain.Workspace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ws, ok := s.workspaces[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &ws, nil
}

// ListByUser returns all workspaces owned by a user.
func (s *WorkspaceStore) ListByUser(_ context.Context, userID string) ([]domain.Workspace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var workspaces []domain.Workspace
	for _, ws := range s.workspaces {
		if ws.UserID == userID {
			workspaces = append(workspaces, ws)
		}
	}
	sort.SliceStable(workspaces, func(i, j int) bool {
		if workspaces[i].CreatedAt.Equal(workspaces[j].CreatedAt) {
			return workspaces[i].ID < workspaces[j].ID
		}
		return workspaces[i].CreatedAt.Before(workspaces[j].CreatedAt)
	})
	return workspaces, nil
}

// Delete removes a workspace.
func (s *WorkspaceStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.workspaces, id)
	return nil
}
