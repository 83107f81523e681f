package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *SQLiteKV {
	t.Helper()

	kv, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	return kv
}

func TestSQLiteKVRoundTrip(t *testing.T) {
	kv := setupTestStore(t)

	_, ok, err := kv.Get("weather_jiaoxi_weekly")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Put("weather_jiaoxi_weekly", `{"data":[],"timestamp":1}`))

	value, ok, err := kv.Get("weather_jiaoxi_weekly")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"data":[],"timestamp":1}`, value)
}

func TestSQLiteKVUpsert(t *testing.T) {
	kv := setupTestStore(t)

	require.NoError(t, kv.Put("key", "first"))
	require.NoError(t, kv.Put("key", "second"))

	value, ok, err := kv.Get("key")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "second", value)
}

func TestSQLiteKVDelete(t *testing.T) {
	kv := setupTestStore(t)

	require.NoError(t, kv.Put("key", "value"))
	require.NoError(t, kv.Delete("key"))

	_, ok, err := kv.Get("key")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting an absent key is not an error.
	require.NoError(t, kv.Delete("key"))
}
