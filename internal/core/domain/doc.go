// Package domain contains the core entities for document question
// answering: documents, chunks, workspaces, retrieval scopes and the
// domain error taxonomy.
//
// The package has no dependencies. Services and adapters depend on it;
// it depends on nothing.
package domain
