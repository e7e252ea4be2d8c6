package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/steward-one/steward"
	"github.com/steward-one/steward/errors"
)

// Genesis is the file format used to seed the engine state
type Genesis struct {
	ChainID  string          `json:"chain_id"`
	AppState steward.Options `json:"app_state"`
}

// LoadGenesis tries to load a given file into a Genesis struct
func LoadGenesis(filePath string) (Genesis, error) {
	var gen Genesis

	bytes, err := ioutil.ReadFile(filePath)
	if err != nil {
		return gen, errors.Wrap(err, "loading genesis file")
	}

	err = json.Unmarshal(bytes, &gen)
	if err != nil {
		return gen, errors.Wrap(err, "unmarshaling genesis file")
	}
	return gen, nil
}

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...steward.Initializer) steward.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []steward.Initializer
}

// FromGenesis will pass opts to all initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts steward.Options, kv steward.KVStore) error {
	for _, i := range c.inits {
		err := i.FromGenesis(opts, kv)
		if err != nil {
			return err
		}
	}
	return nil
}
