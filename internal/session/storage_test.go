package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorageRoundTrip(t *testing.T) {
	storage := NewFileStorage(t.TempDir())

	require.NoError(t, storage.Save("t1", []byte(`{"id":"u1"}`)))

	token, user, err := storage.Load()
	require.NoError(t, err)
	assert.Equal(t, "t1", token)
	assert.JSONEq(t, `{"id":"u1"}`, string(user))
}

func TestFileStorageLoadEmptyDir(t *testing.T) {
	storage := NewFileStorage(t.TempDir())

	token, user, err := storage.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Empty(t, user)
}

func TestFileStorageClearRemovesBothKeys(t *testing.T) {
	storage := NewFileStorage(t.TempDir())

	require.NoError(t, storage.Save("t1", []byte(`{}`)))
	require.NoError(t, storage.Clear())

	token, user, err := storage.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Empty(t, user)

	// clearing an already empty store is not an error
	require.NoError(t, storage.Clear())
}

func TestFileStorageTokenReadsStoredValue(t *testing.T) {
	storage := NewFileStorage(t.TempDir())

	assert.Empty(t, storage.Token())

	require.NoError(t, storage.Save("t2", []byte(`{}`)))
	assert.Equal(t, "t2", storage.Token())
}
