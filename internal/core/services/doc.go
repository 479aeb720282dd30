// Package services implements the driving port interfaces.
// Services contain the core business logic: ingestion, tiered
// retrieval, grounded answer generation, and document/workspace
// management with ownership checks.
//
// Services are pure Go with no CGO or external dependencies.
package services
