package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func runStoreContract(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("MissingKey", func(t *testing.T) {
		_, err := store.Get(ctx, "no-such-key")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("SetThenGet", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, KeyMessages, `[{"id":"1"}]`))

		value, err := store.Get(ctx, KeyMessages)
		require.NoError(t, err)
		assert.Equal(t, `[{"id":"1"}]`, value)
	})

	t.Run("OverwriteExisting", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, KeyAuth, "true"))
		require.NoError(t, store.Set(ctx, KeyAuth, "false"))

		value, err := store.Get(ctx, KeyAuth)
		require.NoError(t, err)
		assert.Equal(t, "false", value)
	})

	t.Run("Remove", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, KeyUser, `{"id":"1"}`))
		require.NoError(t, store.Remove(ctx, KeyUser))

		_, err := store.Get(ctx, KeyUser)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("RemoveMissingKeyIsNoop", func(t *testing.T) {
		assert.NoError(t, store.Remove(ctx, "never-set"))
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, NewMemoryStore())
}

func TestGormStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store_test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&EntryModel{}))

	runStoreContract(t, NewGormStore(db))
}
