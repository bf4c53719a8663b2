package badger

import (
	"fmt"
	"testing"
	"time"

	"github.com/Khuslen88/secure-chat/internal/models"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

func TestMessageStorage_RecentHonorsLimit(t *testing.T) {
	db := newTestDB(t)
	storage := NewMessageStorage(db, arbor.NewLogger())

	for i := 0; i < 10; i++ {
		msg := &models.Message{
			ID:        fmt.Sprintf("msg_%02d", i),
			Username:  "alice",
			Role:      models.RoleUser,
			Content:   fmt.Sprintf("message %d", i),
			Timestamp: time.Now().UTC(),
		}
		require.NoError(t, storage.Save(msg))
	}

	msgs, err := storage.Recent(3)
	require.NoError(t, err)
	require.Len(t, msgs, 3)

	// Most recent messages, oldest first
	require.Equal(t, "message 7", msgs[0].Content)
	require.Equal(t, "message 8", msgs[1].Content)
	require.Equal(t, "message 9", msgs[2].Content)
}

func TestMessageStorage_RecentEmptyStore(t *testing.T) {
	db := newTestDB(t)
	storage := NewMessageStorage(db, arbor.NewLogger())

	msgs, err := storage.Recent(50)
	require.NoError(t, err)
	require.Empty(t, msgs)
}
