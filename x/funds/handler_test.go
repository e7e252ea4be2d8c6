package funds

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/steward-one/steward"
	"github.com/steward-one/steward/errors"
	"github.com/steward-one/steward/store"
	"github.com/steward-one/steward/stewardtest"
	"github.com/steward-one/steward/stewardtest/assert"
)

func TestSendHandler(t *testing.T) {
	alice := stewardtest.NewCondition()
	bob := stewardtest.NewCondition()

	cases := map[string]struct {
		signer         steward.Condition
		msg            *SendMsg
		wantCheckErr   *errors.Error
		wantDeliverErr *errors.Error
		wantSrc        int64
	}{
		"success": {
			signer: alice,
			msg: &SendMsg{
				Src:    alice.Address(),
				Dest:   bob.Address(),
				Amount: 30,
			},
			wantSrc: 70,
		},
		"missing source signature": {
			signer: bob,
			msg: &SendMsg{
				Src:    alice.Address(),
				Dest:   bob.Address(),
				Amount: 30,
			},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
			wantSrc:        100,
		},
		"invalid amount": {
			signer: alice,
			msg: &SendMsg{
				Src:    alice.Address(),
				Dest:   bob.Address(),
				Amount: -2,
			},
			wantCheckErr:   errors.ErrAmount,
			wantDeliverErr: errors.ErrAmount,
			wantSrc:        100,
		},
		"insufficient funds": {
			signer: alice,
			msg: &SendMsg{
				Src:    alice.Address(),
				Dest:   bob.Address(),
				Amount: 101,
			},
			wantDeliverErr: errors.ErrAmount,
			wantSrc:        100,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			control := NewController()
			assert.Nil(t, control.Mint(db, alice.Address(), 100))

			auth := &stewardtest.Auth{Signer: tc.signer}
			h := NewSendHandler(auth, control)

			ctx := context.Background()
			tx := &stewardtest.Tx{Msg: tc.msg}

			if _, err := h.Check(ctx, db, tx); !tc.wantCheckErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			if _, err := h.Deliver(ctx, db, tx); !tc.wantDeliverErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}

			got, err := control.Balance(db, alice.Address())
			assert.Nil(t, err)
			assert.Equal(t, tc.wantSrc, got)
		})
	}
}

func TestGenesisSeedsWallets(t *testing.T) {
	const genesis = `
	{
		"funds": [
			{"address": "0000000000000000000000000000000000000001", "balance": 50},
			{"address": "0000000000000000000000000000000000000002", "balance": 7}
		]
	}
	`
	var opts steward.Options
	assert.Nil(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	var ini Initializer
	assert.Nil(t, ini.FromGenesis(opts, db))

	control := NewController()
	addr, err := hex.DecodeString("0000000000000000000000000000000000000001")
	assert.Nil(t, err)
	got, err := control.Balance(db, addr)
	assert.Nil(t, err)
	assert.Equal(t, int64(50), got)
}
