package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates the caller's identity is missing or
	// does not own the requested scope. Operations short-circuit on
	// this before touching persistence.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an upload media kind other than
	// PDF or plain text.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrEmptyDocument indicates no text could be extracted from
	// an upload.
	ErrEmptyDocument = errors.New("no text content extracted")

	// ErrNoContent indicates the query scope has no chunks at all.
	// This is a user-facing condition, not a failure: it is distinct
	// from "no relevant match", which retrieval resolves internally
	// through the fallback tiers.
	ErrNoContent = errors.New("no content in scope")

	// ErrGenerationFailed indicates every configured completion
	// provider failed. The system never substitutes a default answer.
	ErrGenerationFailed = errors.New("answer generation failed")

	// ErrNoProviders indicates no completion provider is configured.
	ErrNoProviders = errors.New("no completion provider configured")

	// ErrWorkspaceNotEmpty indicates a workspace still contains
	// documents and cannot be deleted.
	ErrWorkspaceNotEmpty = errors.New("workspace is not empty")
)
