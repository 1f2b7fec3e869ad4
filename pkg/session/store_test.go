package session_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maroco0109/AgentForge-sub000/pkg/session"
)

// storeFactory creates a store instance for testing.
type storeFactory func(t *testing.T) session.Store

// storeContractTest runs contract tests against any Store implementation.
func storeContractTest(t *testing.T, name string, factory storeFactory) {
	t.Run(name+"/Set_and_Get", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		require.NoError(t, store.Set(session.KeyAccessToken, "tok-1"))

		got, err := store.Get(session.KeyAccessToken)
		require.NoError(t, err)
		assert.Equal(t, "tok-1", got)
	})

	t.Run(name+"/Get_NotFound", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		_, err := store.Get("nonexistent")
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run(name+"/Set_Overwrite", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		require.NoError(t, store.Set(session.KeySplitViewRatio, "0.5"))
		require.NoError(t, store.Set(session.KeySplitViewRatio, "0.7"))

		got, err := store.Get(session.KeySplitViewRatio)
		require.NoError(t, err)
		assert.Equal(t, "0.7", got)
	})

	t.Run(name+"/Delete", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		require.NoError(t, store.Set(session.KeyEditorOpen, "true"))
		require.NoError(t, store.Delete(session.KeyEditorOpen))

		_, err := store.Get(session.KeyEditorOpen)
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run(name+"/Delete_Nonexistent", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		assert.NoError(t, store.Delete("nonexistent"))
	})

	t.Run(name+"/Independent_Keys", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		require.NoError(t, store.Set(session.KeyAccessToken, "tok"))
		require.NoError(t, store.Set(session.KeyEditorOpen, "true"))
		require.NoError(t, store.Delete(session.KeyAccessToken))

		got, err := store.Get(session.KeyEditorOpen)
		require.NoError(t, err)
		assert.Equal(t, "true", got)
	})

	t.Run(name+"/Closed_Store_Errors", func(t *testing.T) {
		store := factory(t)
		require.NoError(t, store.Close())

		_, err := store.Get(session.KeyAccessToken)
		assert.ErrorIs(t, err, session.ErrStoreClosed)
		assert.ErrorIs(t, store.Set(session.KeyAccessToken, "x"), session.ErrStoreClosed)
		assert.ErrorIs(t, store.Delete(session.KeyAccessToken), session.ErrStoreClosed)
	})
}

func TestMemoryStore_Contract(t *testing.T) {
	storeContractTest(t, "memory", func(t *testing.T) session.Store {
		return session.NewMemoryStore()
	})
}

func TestSQLiteStore_Contract(t *testing.T) {
	storeContractTest(t, "sqlite", func(t *testing.T) session.Store {
		store, err := session.NewSQLiteStore(filepath.Join(t.TempDir(), "session.db"))
		require.NoError(t, err)
		return store
	})
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	store, err := session.NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(session.KeyAccessToken, "tok-persisted"))
	require.NoError(t, store.Close())

	reopened, err := session.NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(session.KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-persisted", got)
}

func TestSQLiteStore_CloseIdempotent(t *testing.T) {
	store, err := session.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}

func TestMemoryStore_Len(t *testing.T) {
	store := session.NewMemoryStore()
	defer store.Close()

	assert.Equal(t, 0, store.Len())
	require.NoError(t, store.Set(session.KeyAccessToken, "a"))
	require.NoError(t, store.Set(session.KeyEditorOpen, "true"))
	assert.Equal(t, 2, store.Len())
}
