package interfaces

import (
	"github.com/Khuslen88/secure-chat/internal/models"
)

// DocumentStorage persists knowledge base index entries. Each operation is
// transactional on its own; serialization of compound read-modify-write
// sequences is the knowledge service's responsibility.
type DocumentStorage interface {
	// Save upserts an entry, assigning its insertion ordinal on first save.
	Save(doc *models.Document) error

	// Get returns the entry or ErrNotFound.
	Get(id string) (*models.Document, error)

	// All returns every entry in insertion order.
	All() ([]*models.Document, error)

	// Delete removes an entry. Deleting an absent id is a no-op.
	Delete(id string) error
}

// MessageStorage persists chat messages
type MessageStorage interface {
	Save(msg *models.Message) error

	// Recent returns the most recent messages in chronological order,
	// at most limit entries.
	Recent(limit int) ([]*models.Message, error)
}

// StorageManager provides access to all storage backends
type StorageManager interface {
	DocumentStorage() DocumentStorage
	MessageStorage() MessageStorage
	Close() error
}
