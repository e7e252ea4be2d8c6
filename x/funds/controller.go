package funds

import (
	"math"

	"github.com/steward-one/steward"
	"github.com/steward-one/steward/errors"
)

// Controller is the functionality needed by other extensions to settle
// payments. This needs no permissions and is the full API to the
// wallet ledger.
type Controller interface {
	// Balance returns the current balance of the given account. A
	// missing wallet counts as a zero balance.
	Balance(db steward.ReadOnlyKVStore, src steward.Address) (int64, error)

	// Move transfers the given amount between two accounts.
	Move(db steward.KVStore, src, dest steward.Address, amount int64) error

	// Mint adds the given amount to the destination account out of
	// thin air.
	Mint(db steward.KVStore, dest steward.Address, amount int64) error
}

// BaseController implements Controller on top of a WalletBucket.
type BaseController struct {
	bucket *WalletBucket
}

var _ Controller = BaseController{}

// NewController returns a base controller implementation.
func NewController() BaseController {
	return BaseController{bucket: NewWalletBucket()}
}

// Balance returns the balance of the given account.
func (c BaseController) Balance(db steward.ReadOnlyKVStore, src steward.Address) (int64, error) {
	w, err := c.bucket.GetOrCreate(db, src)
	if err != nil {
		return 0, err
	}
	return w.Balance, nil
}

// Move transfers the given amount from src to dest. It fails if the
// source holds less than the amount, or if crediting the destination
// would overflow its wallet.
func (c BaseController) Move(db steward.KVStore, src, dest steward.Address, amount int64) error {
	if amount <= 0 {
		return errors.Wrapf(errors.ErrAmount, "non-positive transfer %d", amount)
	}
	sender, err := c.bucket.GetOrCreate(db, src)
	if err != nil {
		return err
	}
	if sender.Balance < amount {
		return errors.Wrapf(errors.ErrAmount, "insufficient funds: %d < %d", sender.Balance, amount)
	}
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if recipient.Balance > math.MaxInt64-amount {
		return errors.Wrap(errors.ErrOverflow, "recipient wallet")
	}
	sender.Balance -= amount
	recipient.Balance += amount
	if err := c.bucket.Put(db, src, sender); err != nil {
		return err
	}
	return c.bucket.Put(db, dest, recipient)
}

// Mint credits the destination account with new value. Unlike Move it
// has no source, so use only from trusted setup paths (genesis, tests,
// escrow release).
func (c BaseController) Mint(db steward.KVStore, dest steward.Address, amount int64) error {
	if amount <= 0 {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %d", amount)
	}
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if recipient.Balance > math.MaxInt64-amount {
		return errors.Wrap(errors.ErrOverflow, "recipient wallet")
	}
	recipient.Balance += amount
	return c.bucket.Put(db, dest, recipient)
}
