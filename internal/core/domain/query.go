package domain

import "strings"

// Scope restricts retrieval to a single document or to every document
// in a workspace. Exactly one of the two fields is set.
type Scope struct {
	// DocumentID scopes retrieval to one document.
	DocumentID string

	// WorkspaceID scopes retrieval to all documents in a workspace.
	WorkspaceID string
}

// DocumentScope builds a single-document scope.
func DocumentScope(documentID string) Scope {
	return Scope{DocumentID: documentID}
}

// WorkspaceScope builds a workspace-wide scope.
func WorkspaceScope(workspaceID string) Scope {
	return Scope{WorkspaceID: workspaceID}
}

// IsWorkspace reports whether the scope spans a workspace.
func (s Scope) IsWorkspace() bool {
	return s.WorkspaceID != ""
}

// Validate checks that exactly one scope dimension is set.
func (s Scope) Validate() error {
	if (s.DocumentID == "") == (s.WorkspaceID == "") {
		return ErrInvalidInput
	}
	return nil
}

// ScoredChunk is a chunk ranked by a retrieval tier.
type ScoredChunk struct {
	// Chunk is the matched chunk.
	Chunk Chunk

	// Similarity is the cosine similarity to the question embedding.
	// Zero for chunks supplied by a lexical tier.
	Similarity float64

	// DocumentName is the display name of the owning document,
	// used for source attribution in workspace answers.
	DocumentName string
}

// ContextItem is one piece of retrieved context handed to the
// answer generator.
type ContextItem struct {
	// Content is the chunk text.
	Content string

	// DocumentName is the owning document's display name.
	DocumentName string
}

// RetrievedContext is the ordered, deduplicated output of retrieval.
type RetrievedContext struct {
	// Items are the context pieces in rank order.
	Items []ContextItem

	// Sources are owning document names, deduplicated in
	// first-seen rank order.
	Sources []string
}

// Text joins the context items with a separator for prompting.
func (c *RetrievedContext) Text() string {
	parts := make([]string, len(c.Items))
	for i, item := range c.Items {
		parts[i] = item.Content
	}
	return strings.Join(parts, "\n\n---\n\n")
}

// Answer is the grounded response to a question.
type Answer struct {
	// Text is the generated answer.
	Text string

	// Sources are the document names the answer drew from.
	// Empty for single-document questions.
	Sources []string
}
