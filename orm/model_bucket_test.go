package orm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steward-one/steward/errors"
	"github.com/steward-one/steward/store"
)

func TestModelBucket(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket(counterBucket())

	err := b.Put(db, []byte("c1"), &counter{Count: 1})
	require.NoError(t, err)

	var c counter
	require.NoError(t, b.One(db, []byte("c1"), &c))
	assert.Equal(t, int64(1), c.Count)

	err = b.One(db, []byte("unknown"), &c)
	assert.True(t, errors.ErrNotFound.Is(err))

	require.NoError(t, b.Has(db, []byte("c1")))
	assert.True(t, errors.ErrNotFound.Is(b.Has(db, []byte("unknown"))))

	require.NoError(t, b.Delete(db, []byte("c1")))
	assert.True(t, errors.ErrNotFound.Is(b.Delete(db, []byte("c1"))))
	assert.True(t, errors.ErrNotFound.Is(b.Has(db, []byte("c1"))))
}

func TestModelBucketPutValidates(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket(counterBucket())

	err := b.Put(db, []byte("bad"), &counter{Count: -1})
	assert.Error(t, err)
	assert.True(t, errors.ErrNotFound.Is(b.Has(db, []byte("bad"))))
}
