package models

import (
	"time"
)

// Document is one ingested knowledge base entry. It records metadata only;
// the raw blob and the extracted text artifact live on disk keyed by ID.
type Document struct {
	ID           string    `json:"id" badgerhold:"key"` // doc_{uuid}, immutable
	OriginalName string    `json:"original_name"`       // Sanitized user-supplied name, display only
	StoredName   string    `json:"stored_name"`         // {id}{extension}, unique by construction
	Extension    string    `json:"extension"`           // Lower-cased, drives extractor dispatch
	Size         int64     `json:"size"`                // Byte length of the original upload
	TextLength   int       `json:"text_length"`         // Characters of extracted text at ingestion
	UploadedAt   time.Time `json:"uploaded_at"`         // Ingestion timestamp (UTC)
	Seq          uint64    `json:"-"`                   // Monotonic insertion ordinal
}

// KnowledgeStats summarizes the knowledge base for status endpoints
type KnowledgeStats struct {
	TotalDocuments int            `json:"total_documents"`
	TotalBytes     int64          `json:"total_bytes"`
	TotalTextChars int64          `json:"total_text_chars"`
	ByExtension    map[string]int `json:"by_extension"`
}

// ReconcileReport describes the outcome of an index/artifact sweep.
// Orphaned entries are index rows whose text artifact is gone; orphaned
// artifacts are text files with no index row.
type ReconcileReport struct {
	Checked           int `json:"checked"`
	OrphanedEntries   int `json:"orphaned_entries"`
	OrphanedArtifacts int `json:"orphaned_artifacts"`
}
