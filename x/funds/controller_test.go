package funds

import (
	"math"
	"testing"

	"github.com/steward-one/steward/errors"
	"github.com/steward-one/steward/store"
	"github.com/steward-one/steward/stewardtest"
	"github.com/steward-one/steward/stewardtest/assert"
)

func TestMoveBetweenWallets(t *testing.T) {
	db := store.MemStore()
	control := NewController()

	alice := stewardtest.NewCondition().Address()
	bob := stewardtest.NewCondition().Address()

	assert.Nil(t, control.Mint(db, alice, 100))

	if err := control.Move(db, alice, bob, 60); err != nil {
		t.Fatalf("cannot move: %+v", err)
	}

	got, err := control.Balance(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, int64(40), got)

	got, err = control.Balance(db, bob)
	assert.Nil(t, err)
	assert.Equal(t, int64(60), got)
}

func TestMoveInsufficientFunds(t *testing.T) {
	db := store.MemStore()
	control := NewController()

	alice := stewardtest.NewCondition().Address()
	bob := stewardtest.NewCondition().Address()

	assert.Nil(t, control.Mint(db, alice, 10))

	err := control.Move(db, alice, bob, 11)
	assert.IsErr(t, errors.ErrAmount, err)

	// A failed move must not change either balance.
	got, err := control.Balance(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, int64(10), got)
}

func TestMoveFromMissingWallet(t *testing.T) {
	db := store.MemStore()
	control := NewController()

	alice := stewardtest.NewCondition().Address()
	bob := stewardtest.NewCondition().Address()

	err := control.Move(db, alice, bob, 1)
	assert.IsErr(t, errors.ErrAmount, err)
}

func TestMoveRejectsNonPositiveAmount(t *testing.T) {
	db := store.MemStore()
	control := NewController()

	alice := stewardtest.NewCondition().Address()
	bob := stewardtest.NewCondition().Address()

	assert.Nil(t, control.Mint(db, alice, 10))

	assert.IsErr(t, errors.ErrAmount, control.Move(db, alice, bob, 0))
	assert.IsErr(t, errors.ErrAmount, control.Move(db, alice, bob, -4))
}

func TestMoveOverflowsRecipient(t *testing.T) {
	db := store.MemStore()
	control := NewController()

	alice := stewardtest.NewCondition().Address()
	bob := stewardtest.NewCondition().Address()

	assert.Nil(t, control.Mint(db, alice, 100))
	assert.Nil(t, control.Mint(db, bob, math.MaxInt64))

	err := control.Move(db, alice, bob, 1)
	assert.IsErr(t, errors.ErrOverflow, err)

	// The sender keeps the full amount.
	got, err := control.Balance(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, int64(100), got)
}

func TestBalanceOfMissingWallet(t *testing.T) {
	db := store.MemStore()
	control := NewController()

	got, err := control.Balance(db, stewardtest.NewCondition().Address())
	assert.Nil(t, err)
	assert.Equal(t, int64(0), got)
}
