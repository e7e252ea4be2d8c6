package collective

import (
	"testing"

	"github.com/steward-one/steward/errors"
	"github.com/steward-one/steward/store"
	"github.com/steward-one/steward/stewardtest"
	"github.com/steward-one/steward/stewardtest/assert"
)

func TestSummon(t *testing.T) {
	db := store.MemStore()
	control := NewController()

	alice := stewardtest.NewCondition().Address()
	bob := stewardtest.NewCondition().Address()

	id, err := control.Summon(db, []*Member{
		{Address: alice, Tokens: 100},
		{Address: bob, Tokens: 100},
	})
	assert.Nil(t, err)

	got, err := control.TokensOf(db, id, alice)
	assert.Nil(t, err)
	assert.Equal(t, int64(100), got)

	got, err = control.TokensOf(db, id, bob)
	assert.Nil(t, err)
	assert.Equal(t, int64(100), got)

	// A stranger holds no tokens.
	got, err = control.TokensOf(db, id, stewardtest.NewCondition().Address())
	assert.Nil(t, err)
	assert.Equal(t, int64(0), got)
}

func TestSummonedIDsAreUnique(t *testing.T) {
	db := store.MemStore()
	control := NewController()

	members := []*Member{
		{Address: stewardtest.NewCondition().Address(), Tokens: 1},
	}

	a, err := control.Summon(db, members)
	assert.Nil(t, err)
	b, err := control.Summon(db, members)
	assert.Nil(t, err)

	if string(a) == string(b) {
		t.Fatalf("two collectives share the ID %x", a)
	}
}

func TestMintAndBurn(t *testing.T) {
	db := store.MemStore()
	control := NewController()

	alice := stewardtest.NewCondition().Address()
	bob := stewardtest.NewCondition().Address()

	id, err := control.Summon(db, []*Member{
		{Address: alice, Tokens: 10},
	})
	assert.Nil(t, err)

	// Minting to a stranger makes them a member.
	assert.Nil(t, control.Mint(db, id, bob, 5))
	got, err := control.TokensOf(db, id, bob)
	assert.Nil(t, err)
	assert.Equal(t, int64(5), got)

	assert.Nil(t, control.Burn(db, id, alice, 4))
	got, err = control.TokensOf(db, id, alice)
	assert.Nil(t, err)
	assert.Equal(t, int64(6), got)

	// Burning more than held must fail.
	err = control.Burn(db, id, alice, 7)
	assert.IsErr(t, errors.ErrAmount, err)

	// Burning from a stranger must fail.
	err = control.Burn(db, id, stewardtest.NewCondition().Address(), 1)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestUnknownCollective(t *testing.T) {
	db := store.MemStore()
	control := NewController()

	missing := []byte{0, 0, 0, 0, 0, 0, 0, 9}

	_, err := control.TokensOf(db, missing, stewardtest.NewCondition().Address())
	assert.IsErr(t, errors.ErrNotFound, err)

	err = control.Mint(db, missing, stewardtest.NewCondition().Address(), 1)
	assert.IsErr(t, errors.ErrNotFound, err)
}
