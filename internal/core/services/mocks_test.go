package services

import (
	"context"

	"github.com/custodia-labs/studykit/internal/adapters/driven/storage/memory"
)

// stubEmbedder is a hand-rolled embedding service for tests.
type stubEmbedder struct {
	vec   []float32
	err   error
	calls int
}

func (s *stubEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.vec, nil
}

func (s *stubEmbedder) Dimensions() int { return len(s.vec) }

func (s *stubEmbedder) ModelName() string { return "stub" }

// stubCompletion is a hand-rolled completion service for tests.
type stubCompletion struct {
	name       string
	answer     string
	err        error
	calls      int
	lastPrompt string
}

func (s *stubCompletion) Complete(_ context.Context, prompt string) (string, error) {
	s.calls++
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.answer, nil
}

func (s *stubCompletion) Name() string { return s.name }

// newMemoryStores wires an in-memory store trio for service tests.
func newMemoryStores() (*memory.DocumentStore, *memory.ChunkStore, *memory.WorkspaceStore) {
	chunks := memory.NewChunkStore()
	docs := memory.NewDocumentStore(chunks)
	chunks.Attach(docs)
	return docs, chunks, memory.NewWorkspaceStore()
}
