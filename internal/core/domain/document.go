package domain

import "time"

// MediaType identifies the kind of an uploaded file.
type MediaType string

const (
	// MediaPDF is a PDF upload.
	MediaPDF MediaType = "pdf"

	// MediaText is a plain text upload.
	MediaText MediaType = "text"
)

// ParseMediaType maps an upload content type to a MediaType.
// Anything other than PDF and plain text is rejected at the upload
// boundary, before any persistence happens.
func ParseMediaType(contentType string) (MediaType, error) {
	switch contentType {
	case "application/pdf":
		return MediaPDF, nil
	case "text/plain":
		return MediaText, nil
	default:
		return "", ErrUnsupportedType
	}
}

// Document represents one uploaded file.
// The full extracted text is kept so chunks can be regenerated.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// UserID is the owning user.
	UserID string

	// WorkspaceID links to the containing Workspace.
	// Nil for documents that predate workspaces.
	WorkspaceID *string

	// Name is the display name (usually the uploaded file name).
	Name string

	// Media is the upload kind, pdf or text.
	Media MediaType

	// Content is the full extracted text, kept for backup/recovery.
	Content string

	// CreatedAt is when the document was ingested.
	CreatedAt time.Time
}

// Chunk is one retrieval unit within a document.
// Chunks are immutable once written; they are only deleted en masse
// with their parent document.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Content is the text content of this chunk.
	Content string

	// Index is the zero-based position within the document.
	// Indices are contiguous and preserve original document order.
	Index int

	// Embedding is the vector representation for semantic search.
	// Nil when the embedding provider was unavailable during ingestion;
	// such chunks stay reachable through the lexical fallback tiers.
	Embedding []float32
}

// Upload carries one file through the ingestion boundary.
type Upload struct {
	// Name is the uploaded file name.
	Name string

	// Media is the declared upload kind.
	Media MediaType

	// Data is the raw file content.
	Data []byte

	// WorkspaceID optionally attaches the document to a workspace.
	WorkspaceID string
}
