package iavl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitAndReload(t *testing.T) {
	commit := MockCommitStore()
	require.NoError(t, commit.LoadLatestVersion())

	k, v := []byte("lighthouse"), []byte("keeper")

	// nothing committed yet
	assert.Nil(t, commit.Get(k))

	cache := commit.CacheWrap()
	cache.Set(k, v)
	assert.Equal(t, v, cache.Get(k))
	// not visible at committed state until Write
	assert.Nil(t, commit.Get(k))

	cache.Write()
	assert.Equal(t, v, commit.Get(k))

	id := commit.LatestVersion()
	assert.Equal(t, int64(1), id.Version)
	assert.NotEmpty(t, id.Hash)
}

func TestDiscardRollsBack(t *testing.T) {
	commit := MockCommitStore()
	require.NoError(t, commit.LoadLatestVersion())

	k, v := []byte("first"), []byte("value")

	cache := commit.CacheWrap()
	cache.Set(k, v)
	cache.Write()

	// a second wrap that is discarded leaves no trace
	c2 := commit.CacheWrap()
	c2.Set(k, []byte("overwritten"))
	c2.Delete([]byte("missing"))
	c2.Discard()

	assert.Equal(t, v, commit.Get(k))

	// a fresh wrap sees the committed state, not the discarded one
	c3 := commit.CacheWrap()
	assert.Equal(t, v, c3.Get(k))
}

func TestIteratorSnapshot(t *testing.T) {
	commit := MockCommitStore()
	require.NoError(t, commit.LoadLatestVersion())

	cache := commit.CacheWrap()
	cache.Set([]byte("a"), []byte("1"))
	cache.Set([]byte("b"), []byte("2"))
	cache.Set([]byte("c"), []byte("3"))

	it := cache.Iterator(nil, nil)
	defer it.Close()

	var keys []string
	for ; it.Valid(); it.Next() {
		keys = append(keys, string(it.Key()))
	}
	assert.Equal(t, []string{"a", "b", "c"}, keys)

	rit := cache.ReverseIterator([]byte("a"), []byte("c"))
	defer rit.Close()

	keys = nil
	for ; rit.Valid(); rit.Next() {
		keys = append(keys, string(rit.Key()))
	}
	// end is exclusive, order is descending
	assert.Equal(t, []string{"b", "a"}, keys)
}

func TestBTreeOverCommit(t *testing.T) {
	commit := MockCommitStore()
	require.NoError(t, commit.LoadLatestVersion())

	cache := commit.CacheWrap()
	cache.Set([]byte("base"), []byte("data"))

	// layering a btree wrap on top works like any other store
	wrap := cache.CacheWrap()
	assert.Equal(t, []byte("data"), wrap.Get([]byte("base")))
	wrap.Set([]byte("extra"), []byte("stuff"))
	wrap.Write()

	assert.Equal(t, []byte("stuff"), cache.Get([]byte("extra")))
}
