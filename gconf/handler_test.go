package gconf

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/steward-one/steward"
	"github.com/steward-one/steward/errors"
	"github.com/steward-one/steward/store"
	"github.com/steward-one/steward/stewardtest"
	"github.com/steward-one/steward/stewardtest/assert"
)

type demoUpdateMsg struct {
	Patch *demoConf `json:"patch"`
}

var _ steward.Msg = (*demoUpdateMsg)(nil)

func (demoUpdateMsg) Path() string {
	return "demo/update"
}

func (m *demoUpdateMsg) Validate() error {
	return nil
}

func (m *demoUpdateMsg) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *demoUpdateMsg) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, m)
}

func TestUpdateConfigurationHandler(t *testing.T) {
	db := store.MemStore()
	owner := stewardtest.NewCondition()
	assert.Nil(t, Save(db, "demo", &demoConf{
		Owner: owner.Address(),
		Name:  "initial",
		Limit: 1,
	}))

	auth := &stewardtest.Auth{Signer: owner}
	h := NewUpdateConfigurationHandler("demo", &demoConf{}, auth)
	ctx := context.Background()

	// Zero fields of the patch keep the stored value.
	_, err := h.Deliver(ctx, db, &stewardtest.Tx{Msg: &demoUpdateMsg{
		Patch: &demoConf{Limit: 9},
	}})
	assert.Nil(t, err)

	var got demoConf
	assert.Nil(t, Load(db, "demo", &got))
	assert.Equal(t, int64(9), got.Limit)
	assert.Equal(t, "initial", got.Name)
	assert.Equal(t, owner.Address(), got.Owner)

	// A message without a patch is rejected.
	_, err = h.Deliver(ctx, db, &stewardtest.Tx{Msg: &demoUpdateMsg{}})
	assert.IsErr(t, errors.ErrState, err)
}

func TestUpdateConfigurationRequiresOwner(t *testing.T) {
	db := store.MemStore()
	owner := stewardtest.NewCondition()
	stranger := stewardtest.NewCondition()
	assert.Nil(t, Save(db, "demo", &demoConf{
		Owner: owner.Address(),
		Name:  "initial",
		Limit: 1,
	}))

	auth := &stewardtest.Auth{Signer: stranger}
	h := NewUpdateConfigurationHandler("demo", &demoConf{}, auth)

	_, err := h.Deliver(context.Background(), db, &stewardtest.Tx{Msg: &demoUpdateMsg{
		Patch: &demoConf{Limit: 9},
	}})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	var got demoConf
	assert.Nil(t, Load(db, "demo", &got))
	assert.Equal(t, int64(1), got.Limit)
}
