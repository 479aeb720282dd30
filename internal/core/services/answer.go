package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/studykit/internal/core/domain"
	"github.com/custodia-labs/studykit/internal/core/ports/driven"
	"github.com/custodia-labs/studykit/internal/logger"
)

// documentPrompt grounds the model in single-document context.
const documentPrompt = `You are a helpful assistant. Answer the user's question based strictly on the provided context.
If the answer is not in the context, say that you don't know based on the document.

Context:
%s

Question:
%s

Answer:`

// workspacePrompt additionally asks for source attribution, since the
// context spans multiple documents.
const workspacePrompt = `You are a helpful assistant. Answer the user's question based strictly on the provided context.
The context comes from multiple documents; each excerpt is labelled with its source document.
Cite the source document names you drew from. If the answer is not in the context, say that you
don't know based on the documents.

Context:
%s

Question:
%s

Answer:`

// Generator assembles a grounded prompt from retrieved context and
// calls the completion providers in order until one succeeds.
type Generator struct {
	providers []driven.CompletionService
}

// NewGenerator creates a generator over an ordered provider chain.
// The first provider is preferred; the rest are fallbacks.
func NewGenerator(providers ...driven.CompletionService) *Generator {
	return &Generator{providers: providers}
}

// Generate answers the question from the retrieved context. When every
// provider fails the error wraps domain.ErrGenerationFailed; no default
// answer is ever fabricated.
func (g *Generator) Generate(ctx context.Context, rc *domain.RetrievedContext, question string, workspace bool) (string, error) {
	if len(g.providers) == 0 {
		return "", domain.ErrNoProviders
	}

	prompt := buildPrompt(rc, question, workspace)

	var errs []error
	for _, provider := range g.providers {
		logger.Debug("Trying completion provider %s", provider.Name())
		answer, err := provider.Complete(ctx, prompt)
		if err == nil {
			logger.Info("Answer generated by %s", provider.Name())
			return answer, nil
		}
		logger.Warn("Provider %s failed: %v", provider.Name(), err)
		errs = append(errs, fmt.Errorf("%s: %w", provider.Name(), err))
	}

	return "", fmt.Errorf("%w: %w", domain.ErrGenerationFailed, errors.Join(errs...))
}

// buildPrompt renders the grounded prompt. Workspace context labels
// each excerpt with its source document name.
func buildPrompt(rc *domain.RetrievedContext, question string, workspace bool) string {
	if !workspace {
		return fmt.Sprintf(documentPrompt, rc.Text(), question)
	}

	parts := make([]string, len(rc.Items))
	for i, item := range rc.Items {
		name := item.DocumentName
		if name == "" {
			name = "unknown"
		}
		parts[i] = fmt.Sprintf("[%s]\n%s", name, item.Content)
	}
	return fmt.Sprintf(workspacePrompt, strings.Join(parts, "\n\n---\n\n"), question)
}
