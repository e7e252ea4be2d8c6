package gconf

import (
	"encoding/json"
	"testing"

	"github.com/steward-one/steward"
	"github.com/steward-one/steward/errors"
	"github.com/steward-one/steward/store"
	"github.com/steward-one/steward/stewardtest"
	"github.com/steward-one/steward/stewardtest/assert"
)

// demoConf is a configuration double. JSON keeps the fixture free of a
// generated codec.
type demoConf struct {
	Owner steward.Address `json:"owner"`
	Name  string          `json:"name"`
	Limit int64           `json:"limit"`
}

var _ OwnedConfig = (*demoConf)(nil)

func (c *demoConf) Marshal() ([]byte, error) {
	return json.Marshal(c)
}

func (c *demoConf) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, c)
}

func (c *demoConf) Validate() error {
	if err := c.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	return nil
}

func (c *demoConf) GetOwner() steward.Address {
	return c.Owner
}

func TestSaveAndLoad(t *testing.T) {
	db := store.MemStore()
	owner := stewardtest.NewCondition().Address()

	src := demoConf{Owner: owner, Name: "demo", Limit: 42}
	assert.Nil(t, Save(db, "demo", &src))

	var got demoConf
	assert.Nil(t, Load(db, "demo", &got))
	assert.Equal(t, src, got)

	// Every package has its own singleton.
	err := Load(db, "other", &got)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestSaveValidates(t *testing.T) {
	db := store.MemStore()
	broken := demoConf{Owner: steward.Address("too-short")}
	if err := Save(db, "demo", &broken); err == nil {
		t.Fatal("an invalid configuration must not be persisted")
	}
	var got demoConf
	err := Load(db, "demo", &got)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestInitConfig(t *testing.T) {
	db := store.MemStore()
	owner := stewardtest.NewCondition().Address()

	raw, err := json.Marshal(map[string]interface{}{
		"demo": &demoConf{Owner: owner, Name: "genesis", Limit: 7},
	})
	assert.Nil(t, err)
	opts := steward.Options{"conf": raw}

	assert.Nil(t, InitConfig(db, opts, "demo", &demoConf{}))

	var got demoConf
	assert.Nil(t, Load(db, "demo", &got))
	assert.Equal(t, "genesis", got.Name)
	assert.Equal(t, int64(7), got.Limit)

	// A package absent from genesis stays unconfigured.
	err = InitConfig(db, opts, "missing", &demoConf{})
	assert.IsErr(t, errors.ErrNotFound, err)
}
