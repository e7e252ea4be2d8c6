package funds

import (
	"github.com/steward-one/steward"
	"github.com/steward-one/steward/errors"
	"github.com/steward-one/steward/orm"
)

// BucketName is where the wallets are stored.
const BucketName = "funds"

var _ orm.Model = (*Wallet)(nil)

// Validate ensures the wallet balance never went negative.
func (w *Wallet) Validate() error {
	if w.Balance < 0 {
		return errors.Wrapf(errors.ErrAmount, "negative balance %d", w.Balance)
	}
	return nil
}

// Copy produces an independent copy of this wallet.
func (w *Wallet) Copy() orm.CloneableData {
	return &Wallet{
		Balance: w.Balance,
	}
}

// WalletBucket stores one wallet per account address.
type WalletBucket struct {
	orm.ModelBucket
}

// NewWalletBucket returns a bucket for keeping wallets keyed by the
// account address.
func NewWalletBucket() *WalletBucket {
	b := orm.NewBucket(BucketName, orm.NewSimpleObj(nil, &Wallet{}))
	return &WalletBucket{
		ModelBucket: orm.NewModelBucket(b),
	}
}

// GetOrCreate loads the wallet of the given account. A zero-balance
// wallet is returned if none was ever stored.
func (b *WalletBucket) GetOrCreate(db steward.ReadOnlyKVStore, addr steward.Address) (*Wallet, error) {
	var w Wallet
	switch err := b.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{}, nil
	default:
		return nil, errors.Wrap(err, "cannot load wallet")
	}
}
