package badger

import (
	"fmt"
	"sort"

	"github.com/Khuslen88/secure-chat/internal/common"
	"github.com/Khuslen88/secure-chat/internal/interfaces"
	"github.com/Khuslen88/secure-chat/internal/models"
	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"
)

const documentCounter = "documents"

// DocumentStorage implements the DocumentStorage interface for Badger
type DocumentStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewDocumentStorage creates a new DocumentStorage instance
func NewDocumentStorage(db *BadgerDB, logger arbor.ILogger) interfaces.DocumentStorage {
	return &DocumentStorage{
		db:     db,
		logger: logger,
	}
}

func (s *DocumentStorage) Save(doc *models.Document) error {
	if doc.ID == "" {
		return fmt.Errorf("document ID is required")
	}

	if doc.Seq == 0 {
		seq, err := nextOrdinal(s.db.Store(), documentCounter)
		if err != nil {
			return err
		}
		doc.Seq = seq
	}

	if err := s.db.Store().Upsert(doc.ID, doc); err != nil {
		return fmt.Errorf("failed to save document entry: %w", err)
	}
	return nil
}

func (s *DocumentStorage) Get(id string) (*models.Document, error) {
	var doc models.Document
	if err := s.db.Store().Get(id, &doc); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("document %s: %w", id, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get document entry: %w", err)
	}
	return &doc, nil
}

func (s *DocumentStorage) All() ([]*models.Document, error) {
	var docs []models.Document
	if err := s.db.Store().Find(&docs, nil); err != nil {
		return nil, fmt.Errorf("failed to list document entries: %w", err)
	}

	// Badgerhold iterates in key order; restore insertion order.
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].Seq < docs[j].Seq
	})

	result := make([]*models.Document, len(docs))
	for i := range docs {
		result[i] = &docs[i]
	}
	return result, nil
}

func (s *DocumentStorage) Delete(id string) error {
	if err := s.db.Store().Delete(id, &models.Document{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil
		}
		return fmt.Errorf("failed to delete document entry: %w", err)
	}
	return nil
}
