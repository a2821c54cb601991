package kvstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundtrip(t *testing.T) {
	s := NewMemoryStore()

	_, ok, err := s.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("cart", `[{"id":1}]`))
	v, ok, err := s.Get("cart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":1}]`, v)

	require.NoError(t, s.Remove("cart"))
	_, ok, err = s.Get("cart")
	require.NoError(t, err)
	assert.False(t, ok)

	// removing an absent key is a no-op
	assert.NoError(t, s.Remove("cart"))
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "kv.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("language", "ar"))
	require.NoError(t, s.Set("user", `{"email":"a@b.c"}`))
	require.NoError(t, s.Remove("user"))
	require.NoError(t, s.Close())

	reopened, err := NewFileStore(path)
	require.NoError(t, err)

	v, ok, err := reopened.Get("language")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ar", v)

	_, ok, err = reopened.Get("user")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)

	_, ok, err := s.Get("anything")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewSelectsBackend(t *testing.T) {
	s, err := New(BackendMemory, "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = New(BackendFile, filepath.Join(t.TempDir(), "kv.json"))
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	_, err = New(BackendFile, "")
	assert.Error(t, err)

	_, err = New("bogus", "")
	assert.Error(t, err)
}
