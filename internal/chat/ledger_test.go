package chat

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parleyhq/chat-engine/internal/domain"
	"github.com/parleyhq/chat-engine/internal/storage"
)

func testRooms() []*domain.Room {
	return []*domain.Room{
		{ID: "general", Name: "General"},
		{ID: "technology", Name: "Technology"},
	}
}

func testMessage(id, userID, roomID, content string, isRead bool) *domain.Message {
	return &domain.Message{
		ID:        id,
		UserID:    userID,
		Username:  "User " + userID,
		Content:   content,
		Timestamp: time.Now(),
		RoomID:    roomID,
		IsRead:    isRead,
		Type:      domain.MessageTypeText,
	}
}

func TestLedgerAppend(t *testing.T) {
	ctx := context.Background()

	t.Run("KeepsInsertionOrder", func(t *testing.T) {
		store := storage.NewMemoryStore()
		l := NewLedger(store, testRooms())
		l.Load(ctx, nil)

		require.NoError(t, l.Append(ctx, testMessage("1", "u1", "general", "first", true)))
		require.NoError(t, l.Append(ctx, testMessage("2", "u2", "general", "second", false)))
		require.NoError(t, l.Append(ctx, testMessage("3", "u1", "technology", "third", true)))

		all := l.All()
		require.Len(t, all, 3)
		assert.Equal(t, []string{"1", "2", "3"}, []string{all[0].ID, all[1].ID, all[2].ID})

		general := l.ByRoom("general")
		require.Len(t, general, 2)
		assert.Equal(t, "first", general[0].Content)
		assert.Equal(t, "second", general[1].Content)
	})

	t.Run("RejectsUnknownRoom", func(t *testing.T) {
		l := NewLedger(storage.NewMemoryStore(), testRooms())
		err := l.Append(ctx, testMessage("1", "u1", "nowhere", "hello", true))
		assert.Error(t, err)
		assert.Empty(t, l.All())
	})

	t.Run("RejectsBlankContent", func(t *testing.T) {
		l := NewLedger(storage.NewMemoryStore(), testRooms())
		err := l.Append(ctx, testMessage("1", "u1", "general", "   ", true))
		assert.Error(t, err)
		assert.Empty(t, l.All())
	})

	t.Run("PersistsWholeSequence", func(t *testing.T) {
		store := storage.NewMemoryStore()
		l := NewLedger(store, testRooms())
		require.NoError(t, l.Append(ctx, testMessage("1", "u1", "general", "hello", true)))

		raw, err := store.Get(ctx, storage.KeyMessages)
		require.NoError(t, err)

		var persisted []*domain.Message
		require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
		require.Len(t, persisted, 1)
		assert.Equal(t, "hello", persisted[0].Content)
	})

	t.Run("StorageFailureIsSwallowed", func(t *testing.T) {
		l := NewLedger(failingStore{}, testRooms())
		err := l.Append(ctx, testMessage("1", "u1", "general", "hello", true))
		require.NoError(t, err, "storage failure must not surface to the caller")
		assert.Len(t, l.All(), 1, "in-memory view stays authoritative")
	})
}

func TestLedgerMarkRoomRead(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) *Ledger {
		l := NewLedger(storage.NewMemoryStore(), testRooms())
		require.NoError(t, l.Append(ctx, testMessage("1", "me", "general", "mine", true)))
		require.NoError(t, l.Append(ctx, testMessage("2", "other", "general", "theirs", false)))
		require.NoError(t, l.Append(ctx, testMessage("3", "other", "technology", "elsewhere", false)))
		return l
	}

	t.Run("MarksOnlyOthersMessagesInRoom", func(t *testing.T) {
		l := setup(t)
		l.MarkRoomRead(ctx, "general", "me")

		general := l.ByRoom("general")
		assert.True(t, general[0].IsRead)
		assert.True(t, general[1].IsRead)

		tech := l.ByRoom("technology")
		assert.False(t, tech[0].IsRead, "other rooms untouched")
	})

	t.Run("Idempotent", func(t *testing.T) {
		l := setup(t)
		l.MarkRoomRead(ctx, "general", "me")
		first := snapshotReadFlags(l)

		l.MarkRoomRead(ctx, "general", "me")
		assert.Equal(t, first, snapshotReadFlags(l))
	})

	t.Run("ReadFlagNeverGoesBack", func(t *testing.T) {
		l := setup(t)
		l.MarkRoomRead(ctx, "general", "me")
		l.MarkRoomRead(ctx, "general", "other")

		for _, msg := range l.ByRoom("general") {
			assert.True(t, msg.IsRead)
		}
	})
}

func TestLedgerLoad(t *testing.T) {
	ctx := context.Background()
	fallback := []*domain.Message{testMessage("s1", "u1", "general", "seed", true)}

	t.Run("MissingDataFallsBackToSeed", func(t *testing.T) {
		l := NewLedger(storage.NewMemoryStore(), testRooms())
		l.Load(ctx, fallback)

		all := l.All()
		require.Len(t, all, 1)
		assert.Equal(t, "seed", all[0].Content)
	})

	t.Run("CorruptJSONFallsBackToSeed", func(t *testing.T) {
		store := storage.NewMemoryStore()
		require.NoError(t, store.Set(ctx, storage.KeyMessages, "{not json"))

		l := NewLedger(store, testRooms())
		l.Load(ctx, fallback)

		all := l.All()
		require.Len(t, all, 1)
		assert.Equal(t, "seed", all[0].Content)
	})

	t.Run("MalformedRecordRejectsWholeBatch", func(t *testing.T) {
		store := storage.NewMemoryStore()
		bad := []*domain.Message{
			testMessage("1", "u1", "general", "fine", true),
			testMessage("2", "", "general", "no author", false),
		}
		raw, err := json.Marshal(bad)
		require.NoError(t, err)
		require.NoError(t, store.Set(ctx, storage.KeyMessages, string(raw)))

		l := NewLedger(store, testRooms())
		l.Load(ctx, fallback)

		all := l.All()
		require.Len(t, all, 1)
		assert.Equal(t, "seed", all[0].Content, "partially valid batches are not accepted")
	})

	t.Run("ValidPersistedDataWins", func(t *testing.T) {
		store := storage.NewMemoryStore()
		saved := []*domain.Message{
			testMessage("1", "u1", "general", "persisted", true),
			testMessage("2", "u2", "technology", "also persisted", false),
		}
		raw, err := json.Marshal(saved)
		require.NoError(t, err)
		require.NoError(t, store.Set(ctx, storage.KeyMessages, string(raw)))

		l := NewLedger(store, testRooms())
		l.Load(ctx, fallback)

		all := l.All()
		require.Len(t, all, 2)
		assert.Equal(t, "persisted", all[0].Content)
	})
}

func snapshotReadFlags(l *Ledger) map[string]bool {
	out := make(map[string]bool)
	for _, msg := range l.All() {
		out[msg.ID] = msg.IsRead
	}
	return out
}

// failingStore rejects every operation, standing in for an unavailable
// backend.
type failingStore struct{}

func (failingStore) Get(ctx context.Context, key string) (string, error) {
	return "", assert.AnError
}

func (failingStore) Set(ctx context.Context, key, value string) error {
	return assert.AnError
}

func (failingStore) Remove(ctx context.Context, key string) error {
	return assert.AnError
}
