package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteStore(t *testing.T) (*SQLiteStore, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
		_ = os.Remove(path)
		_ = os.Remove(path + "-wal")
		_ = os.Remove(path + "-shm")
		_ = os.Remove(path + "-journal")
	})
	return store, path
}

func TestSQLiteStoreGetMissingKey(t *testing.T) {
	store, _ := newTestSQLiteStore(t)

	value, ok, err := store.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestSQLiteStoreSetOverwritesAndDeletes(t *testing.T) {
	store, _ := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "ap_current_user", "taro"))
	require.NoError(t, store.Set(ctx, "ap_current_user", "hanako"))

	value, ok, err := store.Get(ctx, "ap_current_user")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hanako", value)

	require.NoError(t, store.Delete(ctx, "ap_current_user"))
	_, ok, err = store.Get(ctx, "ap_current_user")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Delete(ctx, "never-set"))
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "ap_history_taro", `[{"question_id":"q1"}]`))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.Get(ctx, "ap_history_taro")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"question_id":"q1"}]`, value)
}
