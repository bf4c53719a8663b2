package common

import (
	"errors"
)

// Error classes for the ingestion and retrieval paths. Callers classify
// with errors.Is; user-facing detail is carried by the wrapping error.
var (
	// ErrInvalidInput marks uploads rejected before any storage mutation
	// (empty or unsafe filename, disallowed extension, failed validation).
	ErrInvalidInput = errors.New("invalid input")

	// ErrExtractionFailed marks documents whose text could not be
	// extracted; the ingestion flow rolls back the saved blob.
	ErrExtractionFailed = errors.New("text extraction failed")

	// ErrNotFound marks lookups of absent entries.
	ErrNotFound = errors.New("not found")
)
