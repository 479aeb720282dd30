package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/studykit/internal/core/domain"
)

func TestWorkspaceService_Create(t *testing.T) {
	docs, _, workspaces := newMemoryStores()
	svc := NewWorkspaceService(workspaces, docs)
	ctx := context.Background()

	ws, err := svc.Create(ctx, "user-1", "  Biology  ")
	require.NoError(t, err)
	assert.NotEmpty(t, ws.ID)
	assert.Equal(t, "Biology", ws.Name)
	assert.Equal(t, "user-1", ws.UserID)
	assert.False(t, ws.CreatedAt.IsZero())
}

func TestWorkspaceService_CreateValidation(t *testing.T) {
	docs, _, workspaces := newMemoryStores()
	svc := NewWorkspaceService(workspaces, docs)
	ctx := context.Background()

	_, err := svc.Create(ctx, "", "Biology")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.Create(ctx, "user-1", "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWorkspaceService_List(t *testing.T) {
	docs, _, workspaces := newMemoryStores()
	svc := NewWorkspaceService(workspaces, docs)
	ctx := context.Background()

	_, err := svc.Create(ctx, "user-1", "Biology")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "user-2", "Other")
	require.NoError(t, err)

	list, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Biology", list[0].Name)
}

func TestWorkspaceService_Documents(t *testing.T) {
	docs, _, workspaces := newMemoryStores()
	svc := NewWorkspaceService(workspaces, docs)
	ctx := context.Background()

	ws, err := svc.Create(ctx, "user-1", "Biology")
	require.NoError(t, err)

	require.NoError(t, docs.SaveDocument(ctx, &domain.Document{
		ID: "doc-1", UserID: "user-1", WorkspaceID: &ws.ID, Name: "a.txt",
		Media: domain.MediaText, CreatedAt: time.Now().UTC(),
	}))

	list, err := svc.Documents(ctx, "user-1", ws.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "doc-1", list[0].ID)

	_, err = svc.Documents(ctx, "intruder", ws.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestWorkspaceService_DeleteEmpty(t *testing.T) {
	docs, _, workspaces := newMemoryStores()
	svc := NewWorkspaceService(workspaces, docs)
	ctx := context.Background()

	ws, err := svc.Create(ctx, "user-1", "Biology")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "user-1", ws.ID))

	_, err = workspaces.Get(ctx, ws.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWorkspaceService_DeleteRefusesNonEmpty(t *testing.T) {
	docs, _, workspaces := newMemoryStores()
	svc := NewWorkspaceService(workspaces, docs)
	ctx := context.Background()

	ws, err := svc.Create(ctx, "user-1", "Biology")
	require.NoError(t, err)

	require.NoError(t, docs.SaveDocument(ctx, &domain.Document{
		ID: "doc-1", UserID: "user-1", WorkspaceID: &ws.ID, Name: "a.txt",
		Media: domain.MediaText, CreatedAt: time.Now().UTC(),
	}))

	err = svc.Delete(ctx, "user-1", ws.ID)
	assert.ErrorIs(t, err, domain.ErrWorkspaceNotEmpty)

	// Workspace survives the refused delete.
	_, err = workspaces.Get(ctx, ws.ID)
	assert.NoError(t, err)
}

func TestWorkspaceService_DeleteUnauthorized(t *testing.T) {
	docs, _, workspaces := newMemoryStores()
	svc := NewWorkspaceService(workspaces, docs)
	ctx := context.Background()

	ws, err := svc.Create(ctx, "owner", "Theirs")
	require.NoError(t, err)

	err = svc.Delete(ctx, "intruder", ws.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
