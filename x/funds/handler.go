package funds

import (
	"github.com/steward-one/steward"
	"github.com/steward-one/steward/errors"
	"github.com/steward-one/steward/x"
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r steward.Registry, auth x.Authenticator, control Controller) {
	r.Handle(PathSendMsg, NewSendHandler(auth, control))
}

// RegisterQuery will register the wallet bucket as "/wallets".
func RegisterQuery(qr steward.QueryRouter) {
	NewWalletBucket().Register("wallets", qr)
}

// SendHandler moves value between accounts.
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ steward.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg.
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check verifies the message is properly formed and signed by the
// source account, and returns the cost of executing it.
func (h SendHandler) Check(ctx steward.Context, store steward.KVStore, tx steward.Tx) (*steward.CheckResult, error) {
	var msg SendMsg
	if err := steward.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Src) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "wallet owner signature missing")
	}
	return &steward.CheckResult{GasAllocated: sendTxCost}, nil
}

// Deliver moves the value from source to destination if all
// preconditions are met.
func (h SendHandler) Deliver(ctx steward.Context, store steward.KVStore, tx steward.Tx) (*steward.DeliverResult, error) {
	var msg SendMsg
	if err := steward.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Src) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "wallet owner signature missing")
	}
	if err := h.control.Move(store, msg.Src, msg.Dest, msg.Amount); err != nil {
		return nil, err
	}
	return &steward.DeliverResult{}, nil
}
