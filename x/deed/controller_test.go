package deed

import (
	"testing"

	"github.com/steward-one/steward/errors"
	"github.com/steward-one/steward/store"
	"github.com/steward-one/steward/stewardtest"
	"github.com/steward-one/steward/stewardtest/assert"
)

func TestIssueAndOwnerOf(t *testing.T) {
	db := store.MemStore()
	registry := NewRegistry()

	alice := stewardtest.NewCondition().Address()

	assert.Nil(t, registry.Issue(db, "paintings", []byte("mona-lisa"), alice))

	owner, err := registry.OwnerOf(db, "paintings", []byte("mona-lisa"))
	assert.Nil(t, err)
	assert.Equal(t, alice, owner)

	// The same token cannot be issued twice.
	err = registry.Issue(db, "paintings", []byte("mona-lisa"), alice)
	assert.IsErr(t, errors.ErrDuplicate, err)

	// An unknown token has no owner.
	_, err = registry.OwnerOf(db, "paintings", []byte("starry-night"))
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestTransferRequiresControl(t *testing.T) {
	db := store.MemStore()
	registry := NewRegistry()

	alice := stewardtest.NewCondition().Address()
	bob := stewardtest.NewCondition().Address()
	eve := stewardtest.NewCondition().Address()

	assert.Nil(t, registry.Issue(db, "paintings", []byte("mona-lisa"), alice))

	err := registry.Transfer(db, "paintings", []byte("mona-lisa"), eve, bob)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	assert.Nil(t, registry.Transfer(db, "paintings", []byte("mona-lisa"), alice, bob))

	owner, err := registry.OwnerOf(db, "paintings", []byte("mona-lisa"))
	assert.Nil(t, err)
	assert.Equal(t, bob, owner)
}

func TestApprovedTransfer(t *testing.T) {
	db := store.MemStore()
	registry := NewRegistry()

	alice := stewardtest.NewCondition().Address()
	bob := stewardtest.NewCondition().Address()
	escrow := stewardtest.NewCondition().Address()

	assert.Nil(t, registry.Issue(db, "paintings", []byte("mona-lisa"), alice))
	assert.Nil(t, registry.Approve(db, "paintings", []byte("mona-lisa"), escrow))

	// The approved address can pull the token.
	assert.Nil(t, registry.Transfer(db, "paintings", []byte("mona-lisa"), escrow, escrow))

	// Any approval is cleared by a transfer.
	err := registry.Transfer(db, "paintings", []byte("mona-lisa"), alice, bob)
	assert.IsErr(t, errors.ErrUnauthorized, err)
}

func TestTokenKeyValidation(t *testing.T) {
	cases := map[string]struct {
		collection string
		tokenID    []byte
		wantErr    *errors.Error
	}{
		"valid":              {"paintings", []byte("x"), nil},
		"empty collection":   {"", []byte("x"), errors.ErrInput},
		"bad collection":     {"Paintings!", []byte("x"), errors.ErrInput},
		"empty token id":     {"paintings", nil, errors.ErrInput},
		"oversized token id": {"paintings", make([]byte, 65), errors.ErrInput},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			_, err := TokenKey(tc.collection, tc.tokenID)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}
