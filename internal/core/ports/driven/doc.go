// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentStore: document persistence
//   - ChunkStore: chunk persistence, similarity search and lexical fallback
//   - WorkspaceStore: workspace persistence
//   - Extractor / ExtractorRegistry: text extraction from uploads
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - EmbeddingService: generates vector embeddings. Without it, chunks
//     persist with nil embeddings and retrieval uses the lexical tiers.
//   - CompletionService: one LLM provider. Question answering requires at
//     least one; providers are tried in order until one succeeds.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: any adapter package
package driven
