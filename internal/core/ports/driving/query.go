package driving

import (
	"context"

	"github.com/custodia-labs/studykit/internal/core/domain"
)

// QueryService answers natural-language questions over ingested
// documents. Both operations verify scope ownership before retrieval
// and return domain.ErrNoContent when the scope has no chunks at all.
type QueryService interface {
	// QueryDocument answers a question from a single document.
	QueryDocument(ctx context.Context, userID, documentID, question string) (*domain.Answer, error)

	// QueryWorkspace answers a question from every document in a
	// workspace. The answer carries deduplicated source document names.
	QueryWorkspace(ctx context.Context, userID, workspaceID, question string) (*domain.Answer, error)
}
