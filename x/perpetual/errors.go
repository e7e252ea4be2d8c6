package perpetual

import (
	"github.com/steward-one/steward/errors"
)

var (
	// ErrNotInitialized is returned when a mutating operation is
	// attempted before the engine was bound to an operator and
	// factory, or against an asset that was never listed.
	ErrNotInitialized = errors.Register(1200, "not initialized")

	// ErrInvalidPrice is returned when a zero price is supplied where
	// a nonzero one is required.
	ErrInvalidPrice = errors.Register(1201, "invalid price")

	// ErrInvalidPurchase is returned when the settled price, the
	// asserted price and the paid value disagree.
	ErrInvalidPurchase = errors.Register(1202, "invalid purchase")

	// ErrInvalidExit is returned when a withdrawal fails the deposit
	// sufficiency check.
	ErrInvalidExit = errors.Register(1203, "invalid exit")

	// ErrNotPatron is returned when the caller is not a recognized
	// patron of the asset.
	ErrNotPatron = errors.Register(1204, "not a patron")

	// ErrTransferFailed is returned when an explicit fund withdrawal
	// to the caller failed.
	ErrTransferFailed = errors.Register(1205, "transfer failed")
)
