package badger

import (
	"fmt"
	"sort"

	"github.com/Khuslen88/secure-chat/internal/interfaces"
	"github.com/Khuslen88/secure-chat/internal/models"
	"github.com/ternarybob/arbor"
)

const messageCounter = "messages"

// MessageStorage implements the MessageStorage interface for Badger
type MessageStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewMessageStorage creates a new MessageStorage instance
func NewMessageStorage(db *BadgerDB, logger arbor.ILogger) interfaces.MessageStorage {
	return &MessageStorage{
		db:     db,
		logger: logger,
	}
}

func (s *MessageStorage) Save(msg *models.Message) error {
	if msg.ID == "" {
		return fmt.Errorf("message ID is required")
	}

	if msg.Seq == 0 {
		seq, err := nextOrdinal(s.db.Store(), messageCounter)
		if err != nil {
			return err
		}
		msg.Seq = seq
	}

	if err := s.db.Store().Upsert(msg.ID, msg); err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}
	return nil
}

func (s *MessageStorage) Recent(limit int) ([]*models.Message, error) {
	var msgs []models.Message
	if err := s.db.Store().Find(&msgs, nil); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	sort.Slice(msgs, func(i, j int) bool {
		return msgs[i].Seq < msgs[j].Seq
	})

	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}

	result := make([]*models.Message, len(msgs))
	for i := range msgs {
		result[i] = &msgs[i]
	}
	return result, nil
}
