package perpetual

import (
	"github.com/steward-one/steward"
	"github.com/steward-one/steward/errors"
	"github.com/steward-one/steward/gconf"
)

// Initializer fulfils the Initializer interface to load the engine
// configuration from the genesis file.
type Initializer struct{}

var _ steward.Initializer = Initializer{}

// FromGenesis will parse the initial engine configuration from genesis
// and save it to the database. A genesis without a perpetual
// configuration leaves the engine uninitialized, every operation is
// rejected until one is set.
func (Initializer) FromGenesis(opts steward.Options, kv steward.KVStore) error {
	switch err := gconf.InitConfig(kv, opts, "perpetual", &Configuration{}); {
	case err == nil, errors.ErrNotFound.Is(err):
		return nil
	default:
		return err
	}
}
