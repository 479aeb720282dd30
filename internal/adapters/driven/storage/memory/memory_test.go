package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/studykit/internal/core/domain"
)

func newStores() (*DocumentStore, *ChunkStore, *WorkspaceStore) {
	chunks := NewChunkStore()
	docs := NewDocumentStore(chunks)
	chunks.Attach(docs)
	return docs, chunks, NewWorkspaceStore()
}

func saveDoc(t *testing.T, docs *DocumentStore, id, userID string, workspaceID *string, offset time.Duration) {
	t.Helper()
	require.NoError(t, docs.SaveDocument(context.Background(), &domain.Document{
		ID:          id,
		UserID:      userID,
		WorkspaceID: workspaceID,
		Name:        id + ".txt",
		Media:       domain.MediaText,
		CreatedAt:   time.Now().UTC().Add(offset),
	}))
}

func TestDocumentStore_Roundtrip(t *testing.T) {
	docs, _, _ := newStores()
	ctx := context.Background()

	saveDoc(t, docs, "doc-1", "user-1", nil, 0)

	doc, err := docs.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "doc-1.txt", doc.Name)

	_, err = docs.GetDocument(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_ListOrdering(t *testing.T) {
	docs, _, _ := newStores()
	ctx := context.Background()

	saveDoc(t, docs, "doc-b", "user-1", nil, time.Second)
	saveDoc(t, docs, "doc-a", "user-1", nil, 0)

	list, err := docs.ListDocuments(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "doc-a", list[0].ID)
	assert.Equal(t, "doc-b", list[1].ID)
}

func TestDocumentStore_DeleteCascades(t *testing.T) {
	docs, chunks, _ := newStores()
	ctx := context.Background()

	saveDoc(t, docs, "doc-1", "user-1", nil, 0)
	require.NoError(t, chunks.InsertChunks(ctx, []domain.Chunk{
		{ID: "c-0", DocumentID: "doc-1", Content: "text", Index: 0},
	}))

	require.NoError(t, docs.DeleteDocument(ctx, "doc-1"))

	count, err := chunks.CountChunks(ctx, domain.DocumentScope("doc-1"))
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestChunkStore_ScopeFiltering(t *testing.T) {
	docs, chunks, _ := newStores()
	ctx := context.Background()

	wsID := "ws-1"
	saveDoc(t, docs, "doc-in", "user-1", &wsID, 0)
	saveDoc(t, docs, "doc-out", "user-1", nil, time.Second)

	require.NoError(t, chunks.InsertChunks(ctx, []domain.Chunk{
		{ID: "c-in", DocumentID: "doc-in", Content: "inside", Index: 0},
		{ID: "c-out", DocumentID: "doc-out", Content: "outside", Index: 0},
	}))

	got, err := chunks.FirstChunks(ctx, domain.WorkspaceScope(wsID), 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "inside", got[0].Chunk.Content)
	assert.Equal(t, "doc-in.txt", got[0].DocumentName)
}

func TestChunkStore_SimilarityRanking(t *testing.T) {
	docs, chunks, _ := newStores()
	ctx := context.Background()

	saveDoc(t, docs, "doc-1", "user-1", nil, 0)
	require.NoError(t, chunks.InsertChunks(ctx, []domain.Chunk{
		{ID: "c-0", DocumentID: "doc-1", Content: "far", Index: 0, Embedding: []float32{0, 1}},
		{ID: "c-1", DocumentID: "doc-1", Content: "near", Index: 1, Embedding: []float32{1, 0}},
		{ID: "c-2", DocumentID: "doc-1", Content: "none", Index: 2},
	}))

	got, err := chunks.SimilaritySearch(ctx, domain.DocumentScope("doc-1"), []float32{1, 0}, 5, 0.3)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "near", got[0].Chunk.Content)
	assert.InDelta(t, 1.0, got[0].Similarity, 1e-6)
}

func TestChunkStore_KeywordCaseInsensitive(t *testing.T) {
	docs, chunks, _ := newStores()
	ctx := context.Background()

	saveDoc(t, docs, "doc-1", "user-1", nil, 0)
	require.NoError(t, chunks.InsertChunks(ctx, []domain.Chunk{
		{ID: "c-0", DocumentID: "doc-1", Content: "PHOTOSYNTHESIS in plants", Index: 0},
	}))

	got, err := chunks.KeywordSearch(ctx, domain.DocumentScope("doc-1"), []string{"photosynthesis"}, 5)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestWorkspaceStore_Roundtrip(t *testing.T) {
	_, _, workspaces := newStores()
	ctx := context.Background()

	require.NoError(t, workspaces.Save(ctx, &domain.Workspace{
		ID: "ws-1", UserID: "user-1", Name: "Biology", CreatedAt: time.Now().UTC(),
	}))

	ws, err := workspaces.Get(ctx, "ws-1")
	require.NoError(t, err)
	assert.Equal(t, "Biology", ws.Name)

	list, err := workspaces.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, workspaces.Delete(ctx, "ws-1"))
	_, err = workspaces.Get(ctx, "ws-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
