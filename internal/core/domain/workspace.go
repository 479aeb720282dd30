package domain

import "time"

// Workspace is a named collection of documents owned by one user.
// It scopes cross-document questions: a workspace query retrieves
// context from every document attached to it.
type Workspace struct {
	// ID is the unique identifier for the workspace.
	ID string

	// UserID is the owning user.
	UserID string

	// Name is the user-chosen display name.
	Name string

	// CreatedAt is when the workspace was created.
	CreatedAt time.Time
}
