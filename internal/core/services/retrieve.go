package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/custodia-labs/studykit/internal/core/domain"
	"github.com/custodia-labs/studykit/internal/core/ports/driven"
	"github.com/custodia-labs/studykit/internal/logger"
)

// Retrieval tuning.
const (
	// minSimilarity is the cosine similarity floor for the vector tier.
	minSimilarity = 0.3

	// documentLimit caps results for a single-document scope.
	documentLimit = 5

	// workspaceLimit caps results for a workspace scope. Wider fan-out
	// is needed to cover multiple source documents.
	workspaceLimit = 8

	// lastResortLimit caps the first-chunks fallback tier.
	lastResortLimit = 3

	// minKeywordLen drops short question tokens from the keyword tier.
	minKeywordLen = 3
)

// Retriever produces ranked, deduplicated context for a question.
//
// Tiers, each attempted only when the previous yields nothing:
//  1. embed the question and run similarity search
//  2. keyword substring search derived from the question
//  3. the earliest chunks in the scope
//
// A scope with zero chunks is reported as domain.ErrNoContent, which
// is distinct from "no relevant match" (resolved by the tiers above).
type Retriever struct {
	chunks   driven.ChunkStore
	embedder driven.EmbeddingService
}

// NewRetriever creates a retriever. The embedder is optional (can be
// nil); without it retrieval starts at the keyword tier.
func NewRetriever(chunks driven.ChunkStore, embedder driven.EmbeddingService) *Retriever {
	return &Retriever{
		chunks:   chunks,
		embedder: embedder,
	}
}

// Retrieve returns context for the question within the scope.
func (r *Retriever) Retrieve(ctx context.Context, scope domain.Scope, question string) (*domain.RetrievedContext, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	logger.Section("Retrieval")
	logger.Debug("Question: %q", question)

	count, err := r.chunks.CountChunks(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("count chunks: %w", err)
	}
	if count == 0 {
		logger.Debug("Scope has no chunks")
		return nil, domain.ErrNoContent
	}

	limit := documentLimit
	if scope.IsWorkspace() {
		limit = workspaceLimit
	}

	hits, err := r.vectorTier(ctx, scope, question, limit)
	if err != nil {
		return nil, err
	}

	if len(hits) == 0 {
		logger.Debug("Vector tier empty, trying keyword tier")
		hits, err = r.keywordTier(ctx, scope, question, limit)
		if err != nil {
			return nil, err
		}
	}

	if len(hits) == 0 {
		logger.Debug("Keyword tier empty, falling back to first chunks")
		hits, err = r.chunks.FirstChunks(ctx, scope, lastResortLimit)
		if err != nil {
			return nil, fmt.Errorf("first chunks: %w", err)
		}
	}

	logger.Info("Retrieved %d context chunks", len(hits))
	return buildContext(hits), nil
}

// vectorTier embeds the question and runs similarity search. An
// embedding failure is a degradation, not an error: the tier simply
// yields nothing and the lexical tiers take over.
func (r *Retriever) vectorTier(ctx context.Context, scope domain.Scope, question string, limit int) ([]domain.ScoredChunk, error) {
	if r.embedder == nil {
		logger.Debug("No embedding service, skipping vector tier")
		return nil, nil
	}

	embedding, err := r.embedder.Embed(ctx, question)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		logger.Warn("Question embedding failed: %v", err)
		return nil, nil
	}

	hits, err := r.chunks.SimilaritySearch(ctx, scope, embedding, limit, minSimilarity)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}
	logger.Debug("Vector tier: %d hits", len(hits))
	return hits, nil
}

// keywordTier matches chunks against the question's longer tokens.
func (r *Retriever) keywordTier(ctx context.Context, scope domain.Scope, question string, limit int) ([]domain.ScoredChunk, error) {
	keywords := questionKeywords(question)
	if len(keywords) == 0 {
		return nil, nil
	}

	hits, err := r.chunks.KeywordSearch(ctx, scope, keywords, limit)
	if err != nil {
		return nil, fmt.Errorf("keyword search: %w", err)
	}
	logger.Debug("Keyword tier: %d hits for %v", len(hits), keywords)
	return hits, nil
}

// questionKeywords tokenizes a question and keeps lowercase tokens
// longer than minKeywordLen characters.
func questionKeywords(question string) []string {
	fields := strings.FieldsFunc(strings.ToLower(question), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	keywords := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) > minKeywordLen {
			keywords = append(keywords, f)
		}
	}
	return keywords
}

// buildContext converts scored chunks into context items and collects
// source document names, deduplicated in first-seen rank order.
func buildContext(hits []domain.ScoredChunk) *domain.RetrievedContext {
	rc := &domain.RetrievedContext{
		Items: make([]domain.ContextItem, 0, len(hits)),
	}

	seen := make(map[string]bool, len(hits))
	for _, hit := range hits {
		rc.Items = append(rc.Items, domain.ContextItem{
			Content:      hit.Chunk.Content,
			DocumentName: hit.DocumentName,
		})
		if hit.DocumentName != "" && !seen[hit.DocumentName] {
			seen[hit.DocumentName] = true
			rc.Sources = append(rc.Sources, hit.DocumentName)
		}
	}
	return rc
}
