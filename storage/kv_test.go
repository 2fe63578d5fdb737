package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	return store
}

func TestStore_SetGetDelete(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Set("total", 2000.0))

	var total float64
	ok, err := store.Get("total", &total)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 2000.0, total)

	require.NoError(t, store.Delete("total"))
	ok, err = store.Get("total", &total)
	require.NoError(t, err)
	require.False(t, ok, "deleted key must read as absent")
}

func TestStore_OverwriteKeepsLatest(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Set("count", 1))
	require.NoError(t, store.Set("count", 2))

	var count int
	ok, err := store.Get("count", &count)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 2, count)
}

func TestStore_StructValues(t *testing.T) {
	store := openTestStore(t)

	type item struct {
		CourseID string  `json:"course_id"`
		Price    float64 `json:"price"`
	}
	in := []item{{CourseID: "a", Price: 500}, {CourseID: "b", Price: 1500}}
	require.NoError(t, store.Set("cart", in))

	var out []item
	ok, err := store.Get("cart", &out)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, in, out)
}

func TestStore_AbsentKey(t *testing.T) {
	store := openTestStore(t)

	var out string
	ok, err := store.Get("missing", &out)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemory_MatchesStoreSemantics(t *testing.T) {
	mem := NewMemory()

	require.NoError(t, mem.Set("total", 0.0))
	require.True(t, mem.Has("total"), "a zero value is still present")

	require.NoError(t, mem.Delete("total"))
	require.False(t, mem.Has("total"))
}
