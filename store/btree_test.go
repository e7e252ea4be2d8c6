package store

import (
	"bytes"
	"crypto/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBTreeCacheGetSet does basic sanity checks on our cache
//
// Other tests should handle deletes, setting same value,
// iterating over ranges, and general fuzzing
func TestBTreeCacheGetSet(t *testing.T) {
	// devnull is a black hole... just to keep our types proper
	devnull := BTreeCacheable{EmptyKVStore{}}

	// base is the root of our data, we can layer on top and
	// all queries should work
	base := devnull.CacheWrap()

	// make sure the btree is empty at start but returns results
	// that are written to it
	k, v := []byte("french"), []byte("fry")
	assert.Nil(t, base.Get(k))
	assert.False(t, base.Has(k))
	base.Set(k, v)
	assert.Equal(t, v, base.Get(k))
	assert.True(t, base.Has(k))

	// now layer another btree on top and make sure that we get
	// base data
	cache := base.CacheWrap()
	assert.Equal(t, v, cache.Get(k))
	assert.True(t, cache.Has(k))

	// writing more data is only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	assert.Nil(t, cache.Get(k2))
	assert.False(t, cache.Has(k2))
	cache.Set(k2, v2)
	assert.Equal(t, v2, cache.Get(k2))
	assert.Nil(t, base.Get(k2))
	assert.True(t, cache.Has(k2))
	assert.False(t, base.Has(k2))

	// we can write the cache to the base layer...
	cache.Write()
	assert.Equal(t, v, base.Get(k))
	assert.Equal(t, v2, base.Get(k2))
	assert.True(t, base.Has(k))
	assert.True(t, base.Has(k2))

	// we can discard one
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	assert.Equal(t, v, c2.Get(k))
	assert.Equal(t, v2, c2.Get(k2))
	c2.Set(k3, v3)
	c2.Discard()

	// and commit another
	c3 := base.CacheWrap()
	assert.Equal(t, v, c3.Get(k))
	assert.Equal(t, v2, c3.Get(k2))
	c3.Delete(k)
	c3.Write()

	// make sure it commits proper
	assert.Nil(t, base.Get(k))
	assert.Equal(t, v2, base.Get(k2))
	assert.Nil(t, base.Get(k3))

	// and to test devnull....
	base.Write()
	assert.Nil(t, devnull.Get(k2))
}

// TestBTreeCacheConflicts checks that we can handle
// overwriting values and deleting underlying values
func TestBTreeCacheConflicts(t *testing.T) {
	// devnull is a black hole... just to keep our types proper
	devnull := BTreeCacheable{EmptyKVStore{}}

	// make 10 keys and 20 values....
	ks := randKeys(10, 16)
	vs := randKeys(20, 40)

	cases := [...]struct {
		parentOps     []Op
		childOps      []Op
		parentQueries []Model // Key is what we query, Value is what we expect
		childQueries  []Model // Key is what we query, Value is what we expect
	}{
		// overwrite one, delete another, add a third
		0: {
			[]Op{SetOp(ks[1], vs[1]), SetOp(ks[2], vs[2])},
			[]Op{SetOp(ks[1], vs[11]), SetOp(ks[3], vs[7]), DelOp(ks[2])},
			[]Model{pair(ks[1], vs[1]), pair(ks[2], vs[2]), pair(ks[3], nil)},
			[]Model{pair(ks[1], vs[11]), pair(ks[2], nil), pair(ks[3], vs[7])},
		},
	}

	for i, tc := range cases {
		parent := devnull.CacheWrap()
		for _, op := range tc.parentOps {
			op.Apply(parent)
		}

		child := parent.CacheWrap()
		for _, op := range tc.childOps {
			op.Apply(child)
		}

		// now check the parent is unaffected
		for j, q := range tc.parentQueries {
			res := parent.Get(q.Key)
			assert.Equal(t, q.Value, res, "%d / %d", i, j)
			has := parent.Has(q.Key)
			assert.Equal(t, q.Value != nil, has, "%d / %d", i, j)
		}

		// the child shows changes
		for j, q := range tc.childQueries {
			res := child.Get(q.Key)
			assert.Equal(t, q.Value, res, "%d / %d", i, j)
			has := child.Has(q.Key)
			assert.Equal(t, q.Value != nil, has, "%d / %d", i, j)
		}

		// write child to parent and make sure it also shows proper data
		child.Write()
		for j, q := range tc.childQueries {
			res := parent.Get(q.Key)
			assert.Equal(t, q.Value, res, "%d / %d", i, j)
			has := parent.Has(q.Key)
			assert.Equal(t, q.Value != nil, has, "%d / %d", i, j)
		}
	}
}

// TestBTreeCacheIterator makes sure the basic iterator
// merges the cache-wrap state with the backing store
func TestBTreeCacheIterator(t *testing.T) {
	const Size = 50
	const DeleteCount = 10

	ks := randKeys(Size, 8)
	vs := randKeys(Size, 40)

	base := MemStore()
	sorted := make([]Model, Size)
	for i := 0; i < Size; i++ {
		base.Set(ks[i], vs[i])
		sorted[i] = pair(ks[i], vs[i])
	}
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i].Key, sorted[j].Key) < 0
	})

	// delete the first DeleteCount (sorted) keys in a cache-wrap,
	// and add one key that sorts below everything else
	cache := base.CacheWrap()
	for i := 0; i < DeleteCount; i++ {
		cache.Delete(sorted[i].Key)
	}
	low := pair([]byte{0}, []byte("below"))
	cache.Set(low.Key, low.Value)

	expect := append([]Model{low}, sorted[DeleteCount:]...)

	models := consume(t, cache.Iterator(nil, nil))
	require.Equal(t, len(expect), len(models))
	for i, m := range models {
		assert.Equal(t, expect[i].Key, m.Key, "%d", i)
		assert.Equal(t, expect[i].Value, m.Value, "%d", i)
	}

	// reverse comes back in the opposite order
	models = consume(t, cache.ReverseIterator(nil, nil))
	require.Equal(t, len(expect), len(models))
	for i, m := range models {
		j := len(expect) - i - 1
		assert.Equal(t, expect[j].Key, m.Key, "%d", i)
		assert.Equal(t, expect[j].Value, m.Value, "%d", i)
	}

	// a bounded range only covers [start, end)
	start, end := expect[4].Key, expect[8].Key
	models = consume(t, cache.Iterator(start, end))
	require.Equal(t, 4, len(models))
	assert.Equal(t, expect[4].Key, models[0].Key)
	assert.Equal(t, expect[7].Key, models[3].Key)
}

// randKeys returns a slice of count random byte slices,
// each of the given size
func randKeys(count, size int) [][]byte {
	res := make([][]byte, count)
	for i := 0; i < count; i++ {
		res[i] = make([]byte, size)
		rand.Read(res[i])
	}
	return res
}

func pair(key, value []byte) Model {
	return Model{
		Key:   key,
		Value: value,
	}
}

// consume reads all elements of the iterator into a slice
func consume(t testing.TB, it Iterator) []Model {
	t.Helper()
	defer it.Close()

	var res []Model
	for ; it.Valid(); it.Next() {
		k := append([]byte(nil), it.Key()...)
		v := append([]byte(nil), it.Value()...)
		res = append(res, pair(k, v))
	}
	return res
}
