package interfaces

import (
	"context"

	"github.com/Khuslen88/secure-chat/internal/models"
)

// TextExtractor converts a stored document into plain text by extension.
// Unsupported extensions yield an empty string without error; corrupt
// input yields an error the ingestion flow must roll back on.
type TextExtractor interface {
	Extract(path, extension string) (string, error)

	// Supported reports whether an extension has a registered extractor.
	Supported(extension string) bool
}

// KnowledgeService manages the company knowledge base: ingestion, listing,
// removal, and query-time context retrieval.
type KnowledgeService interface {
	// AddDocument ingests an uploaded file. On extraction failure the
	// just-saved blob is deleted and nothing is indexed.
	AddDocument(ctx context.Context, filename string, data []byte) (*models.Document, error)

	// ListDocuments returns entry metadata in insertion order.
	ListDocuments(ctx context.Context) ([]*models.Document, error)

	// RemoveDocument deletes the blob, the artifact, and the index entry
	// as one logical unit. Returns false when the id is absent.
	RemoveDocument(ctx context.Context, id string) (bool, error)

	// GetRelevantContext returns a relevance-ranked excerpt of the
	// knowledge base for the query, never longer than maxChars.
	GetRelevantContext(ctx context.Context, query string, maxChars int) (string, error)

	// Stats summarizes the current knowledge base.
	Stats(ctx context.Context) (*models.KnowledgeStats, error)

	// Reconcile sweeps for index entries without artifacts and artifacts
	// without index entries.
	Reconcile(ctx context.Context) (*models.ReconcileReport, error)
}
