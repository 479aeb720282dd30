// Package sqlite provides a SQLite-backed implementation of the
// document, chunk, and workspace stores. Embeddings are stored as
// little-endian float32 BLOBs and similarity is computed in process.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/studykit/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/studykit/internal/core/domain"
	"github.com/custodia-labs/studykit/internal/core/ports/driven"
)

// insertBatchSize caps the number of chunk rows per INSERT statement.
const insertBatchSize = 50

// Store is a unified SQLite-based storage that provides access to the
// metadata store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.studykit/data/studykit.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".studykit", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "studykit.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// DocumentStore returns a DocumentStore interface backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// ChunkStore returns a ChunkStore interface backed by this store.
func (s *Store) ChunkStore() driven.ChunkStore {
	return &chunkStore{store: s}
}

// WorkspaceStore returns a WorkspaceStore interface backed by this store.
func (s *Store) WorkspaceStore() driven.WorkspaceStore {
	return &workspaceStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// SaveDocument stores a document.
func (s *documentStore) SaveDocument(ctx context.Context, doc *domain.Document) error {
	var workspaceID sql.NullString
	if doc.WorkspaceID != nil {
		workspaceID = sql.NullString{String: *doc.WorkspaceID, Valid: true}
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO documents (id, user_id, workspace_id, name, media, content, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.UserID, workspaceID, doc.Name, string(doc.Media), doc.Content, doc.CreatedAt)

	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// GetDocument retrieves a document by ID.
func (s *documentStore) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, user_id, workspace_id, name, media, content, created_at
		FROM documents WHERE id = ?
	`, id)

	return scanDocumentRow(row)
}

// ListDocuments returns all documents owned by a user.
func (s *documentStore) ListDocuments(ctx context.Context, userID string) ([]domain.Document, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, user_id, workspace_id, name, media, content, created_at
		FROM documents WHERE user_id = ?
		ORDER BY created_at, id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	return scanDocuments(rows)
}

// ListWorkspaceDocuments returns all documents in a workspace.
func (s *documentStore) ListWorkspaceDocuments(ctx context.Context, workspaceID string) ([]domain.Document, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, user_id, workspace_id, name, media, content, created_at
		FROM documents WHERE workspace_id = ?
		ORDER BY created_at, id
	`, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("querying workspace documents: %w", err)
	}
	defer rows.Close()

	return scanDocuments(rows)
}

// DeleteDocument removes a document; chunk rows cascade.
func (s *documentStore) DeleteDocument(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}

// ==================== Chunk Store ====================

// chunkStore implements driven.ChunkStore.
type chunkStore struct {
	store *Store
}

var _ driven.ChunkStore = (*chunkStore)(nil)

// InsertChunks stores chunks in capped multi-row batches inside one
// transaction.
func (s *chunkStore) InsertChunks(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for start := 0; start < len(chunks); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		placeholders := make([]string, len(batch))
		args := make([]any, 0, len(batch)*5)
		for i, chunk := range batch {
			placeholders[i] = "(?, ?, ?, ?, ?)"
			args = append(args, chunk.ID, chunk.DocumentID, chunk.Content,
				chunk.Index, float32SliceToBytes(chunk.Embedding))
		}

		query := "INSERT INTO document_chunks (id, document_id, content, chunk_index, embedding) VALUES " +
			strings.Join(placeholders, ", ")
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("inserting chunks: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// SimilaritySearch loads embedded chunks in scope and ranks them by
// cosine similarity in process. Rows come back in insertion order, so
// the stable sort keeps that order for ties.
func (s *chunkStore) SimilaritySearch(ctx context.Context, scope domain.Scope, query []float32, limit int, minSimilarity float64) ([]domain.ScoredChunk, error) {
	where, arg := scopeClause(scope)
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT c.id, c.document_id, c.content, c.chunk_index, c.embedding, d.name
		FROM document_chunks c
		JOIN documents d ON d.id = c.document_id
		WHERE c.embedding IS NOT NULL AND `+where+`
		ORDER BY d.created_at, d.id, c.chunk_index
	`, arg)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	candidates, err := scanScoredChunks(rows)
	if err != nil {
		return nil, err
	}

	scored := candidates[:0]
	for _, c := range candidates {
		c.Similarity = cosineSimilarity(query, c.Chunk.Embedding)
		if c.Similarity >= minSimilarity {
			scored = append(scored, c)
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

// KeywordSearch returns chunks whose text contains any keyword,
// case-insensitive, in document order.
func (s *chunkStore) KeywordSearch(ctx context.Context, scope domain.Scope, keywords []string, limit int) ([]domain.ScoredChunk, error) {
	if len(keywords) == 0 {
		return nil, nil
	}

	where, arg := scopeClause(scope)
	conds := make([]string, len(keywords))
	args := []any{arg}
	for i, kw := range keywords {
		conds[i] = "instr(lower(c.content), ?) > 0"
		args = append(args, strings.ToLower(kw))
	}
	args = append(args, limit)

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT c.id, c.document_id, c.content, c.chunk_index, c.embedding, d.name
		FROM document_chunks c
		JOIN documents d ON d.id = c.document_id
		WHERE `+where+` AND (`+strings.Join(conds, " OR ")+`)
		ORDER BY d.created_at, d.id, c.chunk_index
		LIMIT ?
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	return scanScoredChunks(rows)
}

// FirstChunks returns the earliest chunks in scope by index.
func (s *chunkStore) FirstChunks(ctx context.Context, scope domain.Scope, limit int) ([]domain.ScoredChunk, error) {
	where, arg := scopeClause(scope)
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT c.id, c.document_id, c.content, c.chunk_index, c.embedding, d.name
		FROM document_chunks c
		JOIN documents d ON d.id = c.document_id
		WHERE `+where+`
		ORDER BY d.created_at, d.id, c.chunk_index
		LIMIT ?
	`, arg, limit)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	return scanScoredChunks(rows)
}

// CountChunks reports how many chunks exist in scope.
func (s *chunkStore) CountChunks(ctx context.Context, scope domain.Scope) (int, error) {
	where, arg := scopeClause(scope)
	var count int
	err := s.store.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM document_chunks c
		JOIN documents d ON d.id = c.document_id
		WHERE `+where, arg).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return count, nil
}

// ==================== Workspace Store ====================

// workspaceStore implements driven.WorkspaceStore.
type workspaceStore struct {
	store *Store
}

var _ driven.WorkspaceStore = (*workspaceStore)(nil)

// Save stores a workspace.
func (s *workspaceStore) Save(ctx context.Context, ws *domain.Workspace) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO workspaces (id, user_id, name, created_at)
		VALUES (?, ?, ?, ?)
	`, ws.ID, ws.UserID, ws.Name, ws.CreatedAt)

	if err != nil {
		return fmt.Errorf("saving workspace: %w", err)
	}
	return nil
}

// Get retrieves a workspace by ID.
func (s *workspaceStore) Get(ctx context.Context, id string) (*domain.Workspace, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, created_at
		FROM workspaces WHERE id = ?
	`, id)

	var ws domain.Workspace
	if err := row.Scan(&ws.ID, &ws.UserID, &ws.Name, &ws.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning workspace: %w", err)
	}
	return &ws, nil
}

// ListByUser returns all workspaces owned by a user.
func (s *workspaceStore) ListByUser(ctx context.Context, userID string) ([]domain.Workspace, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, user_id, name, created_at
		FROM workspaces WHERE user_id = ?
		ORDER BY created_at, id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying workspaces: %w", err)
	}
	defer rows.Close()

	var workspaces []domain.Workspace //nolint:prealloc // size unknown from query
	for rows.Next() {
		var ws domain.Workspace
		if err := rows.Scan(&ws.ID, &ws.UserID, &ws.Name, &ws.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning workspace: %w", err)
		}
		workspaces = append(workspaces, ws)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating workspaces: %w", err)
	}

	return workspaces, nil
}

// Delete removes a workspace.
func (s *workspaceStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM workspaces WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting workspace: %w", err)
	}
	return nil
}

// ==================== Helper Functions ====================

// scopeClause builds the WHERE fragment for a retrieval scope.
func scopeClause(scope domain.Scope) (string, any) {
	if scope.IsWorkspace() {
		return "d.workspace_id = ?", scope.WorkspaceID
	}
	return "d.id = ?", scope.DocumentID
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

// cosineSimilarity computes the cosine similarity between two vectors.
// Mismatched or zero-norm vectors score zero.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// scanDocumentRow scans a single document row.
func scanDocumentRow(row *sql.Row) (*domain.Document, error) {
	var doc domain.Document
	var workspaceID sql.NullString
	var media string

	if err := row.Scan(&doc.ID, &doc.UserID, &workspaceID, &doc.Name,
		&media, &doc.Content, &doc.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	doc.Media = domain.MediaType(media)
	if workspaceID.Valid {
		doc.WorkspaceID = &workspaceID.String
	}

	return &doc, nil
}

// scanDocuments scans multiple document rows.
func scanDocuments(rows *sql.Rows) ([]domain.Document, error) {
	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		var doc domain.Document
		var workspaceID sql.NullString
		var media string

		if err := rows.Scan(&doc.ID, &doc.UserID, &workspaceID, &doc.Name,
			&media, &doc.Content, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}

		doc.Media = domain.MediaType(media)
		if workspaceID.Valid {
			doc.WorkspaceID = &workspaceID.String
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// scanScoredChunks scans chunk rows joined with their document name.
func scanScoredChunks(rows *sql.Rows) ([]domain.ScoredChunk, error) {
	var chunks []domain.ScoredChunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		var sc domain.ScoredChunk
		var embeddingBlob []byte
		if err := rows.Scan(&sc.Chunk.ID, &sc.Chunk.DocumentID, &sc.Chunk.Content,
			&sc.Chunk.Index, &embeddingBlob, &sc.DocumentName); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		sc.Chunk.Embedding = bytesToFloat32Slice(embeddingBlob)
		chunks = append(chunks, sc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	return chunks, nil
}
