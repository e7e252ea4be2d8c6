package orm

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steward-one/steward"
	"github.com/steward-one/steward/errors"
	"github.com/steward-one/steward/store"
)

// counter is a test model that does its own serialization
type counter struct {
	Count int64
}

var _ CloneableData = (*counter)(nil)

func (c *counter) Marshal() ([]byte, error) {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, uint64(c.Count))
	return bz, nil
}

func (c *counter) Unmarshal(bz []byte) error {
	if len(bz) != 8 {
		return errors.Wrap(errors.ErrInput, "expected 8 bytes")
	}
	c.Count = int64(binary.BigEndian.Uint64(bz))
	return nil
}

func (c *counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrState, "count must be non-negative")
	}
	return nil
}

func (c *counter) Copy() CloneableData {
	return &counter{Count: c.Count}
}

func newCounterObj(key []byte, count int64) Object {
	return NewSimpleObj(key, &counter{Count: count})
}

func counterBucket() Bucket {
	return NewBucket("cnts", NewSimpleObj(nil, new(counter)))
}

func TestBucketSaveGetDelete(t *testing.T) {
	db := store.MemStore()
	b := counterBucket()

	k := []byte("alpha")

	// missing key returns nil, no error
	got, err := b.Get(db, k)
	require.NoError(t, err)
	assert.Nil(t, got)

	obj := newCounterObj(k, 77)
	require.NoError(t, b.Save(db, obj))

	got, err = b.Get(db, k)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, k, got.Key())
	assert.Equal(t, int64(77), got.Value().(*counter).Count)

	// invalid models are rejected before hitting the db
	bad := newCounterObj([]byte("beta"), -5)
	err = b.Save(db, bad)
	assert.Error(t, err)

	require.NoError(t, b.Delete(db, k))
	got, err = b.Get(db, k)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBucketPrefixesDoNotCollide(t *testing.T) {
	db := store.MemStore()
	a := counterBucket()
	z := NewBucket("zebra", NewSimpleObj(nil, new(counter)))

	k := []byte("same")
	require.NoError(t, a.Save(db, newCounterObj(k, 1)))
	require.NoError(t, z.Save(db, newCounterObj(k, 2)))

	one, err := a.Get(db, k)
	require.NoError(t, err)
	two, err := z.Get(db, k)
	require.NoError(t, err)

	assert.Equal(t, int64(1), one.Value().(*counter).Count)
	assert.Equal(t, int64(2), two.Value().(*counter).Count)
}

func TestBucketQuery(t *testing.T) {
	db := store.MemStore()
	b := counterBucket()

	require.NoError(t, b.Save(db, newCounterObj([]byte("aa"), 5)))
	require.NoError(t, b.Save(db, newCounterObj([]byte("ab"), 6)))
	require.NoError(t, b.Save(db, newCounterObj([]byte("zz"), 7)))

	qr := steward.NewQueryRouter()
	b.Register("counters", qr)
	h := qr.Handler("/counters")
	require.NotNil(t, h)

	// exact key
	res, err := h.Query(db, steward.KeyQueryMod, []byte("ab"))
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, b.DBKey([]byte("ab")), res[0].Key)

	// prefix scan
	res, err = h.Query(db, steward.PrefixQueryMod, []byte("a"))
	require.NoError(t, err)
	assert.Len(t, res, 2)

	// miss is empty, not an error
	res, err = h.Query(db, steward.KeyQueryMod, []byte("nope"))
	require.NoError(t, err)
	assert.Len(t, res, 0)
}

// evenOdd indexes counters into two groups
func evenOdd(obj Object) ([]byte, error) {
	if obj == nil || obj.Value() == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil")
	}
	cnt, ok := obj.Value().(*counter)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "can only index counters")
	}
	if cnt.Count%2 == 0 {
		return []byte("even"), nil
	}
	return []byte("odd"), nil
}

func TestBucketIndex(t *testing.T) {
	db := store.MemStore()
	b := counterBucket().WithIndex("parity", evenOdd, false)

	require.NoError(t, b.Save(db, newCounterObj([]byte("a"), 2)))
	require.NoError(t, b.Save(db, newCounterObj([]byte("b"), 3)))
	require.NoError(t, b.Save(db, newCounterObj([]byte("c"), 4)))

	evens, err := b.GetIndexed(db, "parity", []byte("even"))
	require.NoError(t, err)
	assert.Len(t, evens, 2)

	odds, err := b.GetIndexed(db, "parity", []byte("odd"))
	require.NoError(t, err)
	assert.Len(t, odds, 1)
	assert.Equal(t, []byte("b"), odds[0].Key())

	// updating a model moves it between index entries
	require.NoError(t, b.Save(db, newCounterObj([]byte("b"), 8)))
	odds, err = b.GetIndexed(db, "parity", []byte("odd"))
	require.NoError(t, err)
	assert.Len(t, odds, 0)
	evens, err = b.GetIndexed(db, "parity", []byte("even"))
	require.NoError(t, err)
	assert.Len(t, evens, 3)

	// deleting removes the index entry as well
	require.NoError(t, b.Delete(db, []byte("a")))
	evens, err = b.GetIndexed(db, "parity", []byte("even"))
	require.NoError(t, err)
	assert.Len(t, evens, 2)

	// unknown index name errors
	_, err = b.GetIndexed(db, "missing", []byte("even"))
	assert.True(t, ErrInvalidIndex.Is(err))
}
