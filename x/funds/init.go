package funds

import (
	"github.com/steward-one/steward"
)

const optKey = "funds"

// GenesisAccount is used to parse account json from the genesis file.
type GenesisAccount struct {
	Address steward.Address `json:"address"`
	Balance int64           `json:"balance"`
}

// Initializer fulfils the Initializer interface to load wallet data
// from the genesis file.
type Initializer struct{}

var _ steward.Initializer = Initializer{}

// FromGenesis will parse initial account balances from genesis and
// save them to the database.
func (Initializer) FromGenesis(opts steward.Options, kv steward.KVStore) error {
	accts := []GenesisAccount{}
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	bucket := NewWalletBucket()
	for _, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return err
		}
		w := &Wallet{Balance: acct.Balance}
		if err := bucket.Put(kv, acct.Address, w); err != nil {
			return err
		}
	}
	return nil
}
