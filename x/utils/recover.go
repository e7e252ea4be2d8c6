package utils

import (
	"github.com/steward-one/steward"
	"github.com/steward-one/steward/errors"
)

// Recovery is a decorator to recover from panics in transactions,
// so we can log them as errors
type Recovery struct{}

var _ steward.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors
func (r Recovery) Check(ctx steward.Context, store steward.KVStore, tx steward.Tx, next steward.Checker) (_ *steward.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors
func (r Recovery) Deliver(ctx steward.Context, store steward.KVStore, tx steward.Tx, next steward.Deliverer) (_ *steward.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}
