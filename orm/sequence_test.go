package orm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/steward-one/steward/store"
)

func TestSequenceIncrements(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("cnts", "id")

	// starts at zero
	latest, raw := s.Latest(db)
	assert.Equal(t, int64(0), latest)
	assert.Nil(t, raw)

	for i := int64(1); i <= 10; i++ {
		assert.Equal(t, i, s.NextInt(db))
	}

	latest, raw = s.Latest(db)
	assert.Equal(t, int64(10), latest)
	assert.Equal(t, int64(10), DecodeSequence(raw))

	// Latest does not modify state
	latest, _ = s.Latest(db)
	assert.Equal(t, int64(10), latest)
}

func TestSequenceValsSortable(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("cnts", "id")

	prev := s.NextVal(db)
	for i := 0; i < 300; i++ {
		next := s.NextVal(db)
		assert.True(t, bytes.Compare(prev, next) < 0)
		assert.NoError(t, ValidateSequence(next))
		prev = next
	}
}

func TestSequencesIndependent(t *testing.T) {
	db := store.MemStore()
	a := NewSequence("cnts", "id")
	b := NewSequence("cnts", "other")
	c := NewSequence("more", "id")

	a.NextInt(db)
	a.NextInt(db)
	b.NextInt(db)

	assert.Equal(t, int64(3), a.NextInt(db))
	assert.Equal(t, int64(2), b.NextInt(db))
	assert.Equal(t, int64(1), c.NextInt(db))
}
