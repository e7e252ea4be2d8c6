package deed

import (
	"context"
	"testing"

	"github.com/steward-one/steward"
	"github.com/steward-one/steward/app"
	"github.com/steward-one/steward/errors"
	"github.com/steward-one/steward/store"
	"github.com/steward-one/steward/stewardtest"
	"github.com/steward-one/steward/stewardtest/assert"
)

func TestHandlers(t *testing.T) {
	alice := stewardtest.NewCondition()
	bob := stewardtest.NewCondition()

	rt := app.NewRouter()
	auth := &stewardtest.Auth{Signer: alice}
	registry := NewRegistry()
	RegisterRoutes(rt, auth, registry)

	db := store.MemStore()
	ctx := context.Background()

	deliver := func(msg steward.Msg) error {
		_, err := rt.Deliver(ctx, db, &stewardtest.Tx{Msg: msg})
		return err
	}

	assert.Nil(t, deliver(&IssueMsg{
		Collection: "paintings",
		TokenID:    []byte("mona-lisa"),
		Owner:      alice.Address(),
	}))

	// Only the signer can be the initial owner.
	err := deliver(&IssueMsg{
		Collection: "paintings",
		TokenID:    []byte("starry-night"),
		Owner:      bob.Address(),
	})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	assert.Nil(t, deliver(&ApproveMsg{
		Collection: "paintings",
		TokenID:    []byte("mona-lisa"),
		To:         bob.Address(),
	}))

	assert.Nil(t, deliver(&TransferMsg{
		Collection: "paintings",
		TokenID:    []byte("mona-lisa"),
		Dest:       bob.Address(),
	}))

	owner, err := registry.OwnerOf(db, "paintings", []byte("mona-lisa"))
	assert.Nil(t, err)
	assert.Equal(t, bob.Address(), owner)

	// Alice no longer controls the token.
	err = deliver(&TransferMsg{
		Collection: "paintings",
		TokenID:    []byte("mona-lisa"),
		Dest:       alice.Address(),
	})
	assert.IsErr(t, errors.ErrUnauthorized, err)
}
