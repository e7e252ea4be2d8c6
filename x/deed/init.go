package deed

import (
	"github.com/steward-one/steward"
)

const optKey = "deed"

// GenesisToken is used to parse token json from the genesis file.
type GenesisToken struct {
	Collection string          `json:"collection"`
	TokenID    string          `json:"token_id"`
	Owner      steward.Address `json:"owner"`
}

// Initializer fulfils the Initializer interface to load token data
// from the genesis file.
type Initializer struct{}

var _ steward.Initializer = Initializer{}

// FromGenesis will parse initial tokens from genesis and save them to
// the database.
func (Initializer) FromGenesis(opts steward.Options, kv steward.KVStore) error {
	tokens := []GenesisToken{}
	if err := opts.ReadOptions(optKey, &tokens); err != nil {
		return err
	}
	registry := NewRegistry()
	for _, tok := range tokens {
		if err := registry.Issue(kv, tok.Collection, []byte(tok.TokenID), tok.Owner); err != nil {
			return err
		}
	}
	return nil
}
