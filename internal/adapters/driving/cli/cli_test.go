package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/studykit/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/studykit/internal/core/domain"
	"github.com/custodia-labs/studykit/internal/core/services"
	"github.com/custodia-labs/studykit/internal/extract"
	"github.com/custodia-labs/studykit/internal/postprocessors/chunker"
)

// setupTestServices wires the commands to in-memory stores so they can
// run without touching disk or providers.
func setupTestServices(t *testing.T) {
	t.Helper()

	chunks := memory.NewChunkStore()
	docs := memory.NewDocumentStore(chunks)
	chunks.Attach(docs)
	workspaces := memory.NewWorkspaceStore()

	ingestService = services.NewIngestOrchestrator(
		docs, chunks, workspaces, extract.DefaultRegistry(), chunker.New(), nil, nil,
	)
	queryService = services.NewQueryService(
		docs, workspaces, services.NewRetriever(chunks, nil), services.NewGenerator(),
	)
	documentService = services.NewDocumentService(docs)
	workspaceService = services.NewWorkspaceService(workspaces, docs)
	currentUser = "test-user"

	// Seed one document.
	require.NoError(t, docs.SaveDocument(context.Background(), &domain.Document{
		ID:        "doc-1",
		UserID:    "test-user",
		Name:      "notes.txt",
		Media:     domain.MediaText,
		CreatedAt: time.Now().UTC(),
	}))

	t.Cleanup(func() {
		ingestService = nil
		queryService = nil
		documentService = nil
		workspaceService = nil
		currentUser = ""
	})
}

func TestVersionCmd_Executes(t *testing.T) {
	originalVersion := version
	version = "test-version-1.0.0"
	defer func() { version = originalVersion }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "studykit version test-version-1.0.0")
}

func TestUploadCmd_Use(t *testing.T) {
	assert.Equal(t, "upload [file]", uploadCmd.Use)

	flag := uploadCmd.Flags().Lookup("workspace")
	require.NotNil(t, flag)
	assert.Equal(t, "w", flag.Shorthand)
}

func TestAskCmd_RequiresScopeFlag(t *testing.T) {
	setupTestServices(t)

	err := runAsk(askCmd, []string{"what is this?"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of")
}

func TestDocumentListCmd_PrintsSeededDocument(t *testing.T) {
	setupTestServices(t)

	buf := new(bytes.Buffer)
	documentListCmd.SetOut(buf)

	err := runDocumentList(documentListCmd, nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "doc-1")
	assert.Contains(t, buf.String(), "notes.txt")
}

func TestDocumentListCmd_NoServices(t *testing.T) {
	err := runDocumentList(documentListCmd, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestWorkspaceLifecycleCommands(t *testing.T) {
	setupTestServices(t)

	buf := new(bytes.Buffer)
	workspaceCreateCmd.SetOut(buf)

	require.NoError(t, runWorkspaceCreate(workspaceCreateCmd, []string{"Biology"}))
	assert.Contains(t, buf.String(), "Created workspace Biology")

	buf.Reset()
	workspaceListCmd.SetOut(buf)
	require.NoError(t, runWorkspaceList(workspaceListCmd, nil))
	assert.Contains(t, buf.String(), "Biology")
}

func TestMediaForPath(t *testing.T) {
	media, err := mediaForPath("/tmp/paper.PDF")
	require.NoError(t, err)
	assert.Equal(t, domain.MediaPDF, media)

	media, err = mediaForPath("notes.txt")
	require.NoError(t, err)
	assert.Equal(t, domain.MediaText, media)

	media, err = mediaForPath("README.md")
	require.NoError(t, err)
	assert.Equal(t, domain.MediaText, media)

	_, err = mediaForPath("image.png")
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", maskAPIKey("short"))
	assert.Equal(t, "gsk_...wxyz", maskAPIKey("gsk_0123456789wxyz"))
}
