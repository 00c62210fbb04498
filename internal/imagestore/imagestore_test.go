package imagestore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndOpen(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	key, err := store.Save("food", []byte("photo bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "food_"))

	data, err := store.Open(key)
	require.NoError(t, err)
	assert.Equal(t, []byte("photo bytes"), data)
}

func TestSaveGeneratesDistinctKeys(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	k1, err := store.Save("food", []byte("a"))
	require.NoError(t, err)
	k2, err := store.Save("food", []byte("b"))
	require.NoError(t, err)
	assert.NotEqual(t, k1, k2)
}

func TestOpenMissingKey(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = store.Open("food_123.img")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestOpenRejectsTraversal(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"../secret", "../../etc/passwd", "a/../../b"} {
		_, err := store.Open(key)
		assert.Error(t, err, "key %q must be rejected", key)
	}
}
