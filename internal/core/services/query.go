package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/studykit/internal/core/domain"
	"github.com/custodia-labs/studykit/internal/core/ports/driven"
	"github.com/custodia-labs/studykit/internal/core/ports/driving"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// QueryService answers questions over documents and workspaces.
// Ownership is verified before any retrieval happens.
type QueryService struct {
	docs       driven.DocumentStore
	workspaces driven.WorkspaceStore
	retriever  *Retriever
	generator  *Generator
}

// NewQueryService creates a new query service.
func NewQueryService(
	docs driven.DocumentStore,
	workspaces driven.WorkspaceStore,
	retriever *Retriever,
	generator *Generator,
) *QueryService {
	return &QueryService{
		docs:       docs,
		workspaces: workspaces,
		retriever:  retriever,
		generator:  generator,
	}
}

// QueryDocument answers a question from a single document.
func (s *QueryService) QueryDocument(ctx context.Context, userID, documentID, question string) (*domain.Answer, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	question = strings.TrimSpace(question)
	if question == "" || documentID == "" {
		return nil, domain.ErrInvalidInput
	}

	doc, err := s.docs.GetDocument(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	if doc.UserID != userID {
		return nil, domain.ErrUnauthorized
	}

	rc, err := s.retriever.Retrieve(ctx, domain.DocumentScope(documentID), question)
	if err != nil {
		return nil, err
	}

	text, err := s.generator.Generate(ctx, rc, question, false)
	if err != nil {
		return nil, err
	}

	return &domain.Answer{Text: text}, nil
}

// QueryWorkspace answers a question from every document in a workspace.
func (s *QueryService) QueryWorkspace(ctx context.Context, userID, workspaceID, question string) (*domain.Answer, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	question = strings.TrimSpace(question)
	if question == "" || workspaceID == "" {
		return nil, domain.ErrInvalidInput
	}

	ws, err := s.workspaces.Get(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("get workspace: %w", err)
	}
	if ws.UserID != userID {
		return nil, domain.ErrUnauthorized
	}

	rc, err := s.retriever.Retrieve(ctx, domain.WorkspaceScope(workspaceID), question)
	if err != nil {
		return nil, err
	}

	text, err := s.generator.Generate(ctx, rc, question, true)
	if err != nil {
		return nil, err
	}

	return &domain.Answer{Text: text, Sources: rc.Sources}, nil
}
