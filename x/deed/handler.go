package deed

import (
	"github.com/steward-one/steward"
	"github.com/steward-one/steward/errors"
	"github.com/steward-one/steward/x"
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r steward.Registry, auth x.Authenticator, registry Registry) {
	r.Handle(PathIssueMsg, IssueHandler{auth: auth, registry: registry})
	r.Handle(PathTransferMsg, TransferHandler{auth: auth, registry: registry})
	r.Handle(PathApproveMsg, ApproveHandler{auth: auth, registry: registry})
}

// RegisterQuery will register the token bucket as "/deeds".
func RegisterQuery(qr steward.QueryRouter) {
	NewTokenBucket().Register("deeds", qr)
}

// IssueHandler registers new tokens. Anyone can issue into a
// collection, as long as the token ID is not yet taken and the issuer
// signs as the initial owner.
type IssueHandler struct {
	auth     x.Authenticator
	registry Registry
}

var _ steward.Handler = IssueHandler{}

func (h IssueHandler) Check(ctx steward.Context, store steward.KVStore, tx steward.Tx) (*steward.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &steward.CheckResult{GasAllocated: issueTxCost}, nil
}

func (h IssueHandler) Deliver(ctx steward.Context, store steward.KVStore, tx steward.Tx) (*steward.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.registry.Issue(store, msg.Collection, msg.TokenID, msg.Owner); err != nil {
		return nil, err
	}
	return &steward.DeliverResult{}, nil
}

func (h IssueHandler) validate(ctx steward.Context, tx steward.Tx) (*IssueMsg, error) {
	var msg IssueMsg
	if err := steward.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}
	return &msg, nil
}

// TransferHandler moves a token to a new owner on behalf of the
// current owner or the approved address.
type TransferHandler struct {
	auth     x.Authenticator
	registry Registry
}

var _ steward.Handler = TransferHandler{}

func (h TransferHandler) Check(ctx steward.Context, store steward.KVStore, tx steward.Tx) (*steward.CheckResult, error) {
	var msg TransferMsg
	if err := steward.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &steward.CheckResult{GasAllocated: transferTxCost}, nil
}

func (h TransferHandler) Deliver(ctx steward.Context, store steward.KVStore, tx steward.Tx) (*steward.DeliverResult, error) {
	var msg TransferMsg
	if err := steward.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "transaction must be signed")
	}
	err := h.registry.Transfer(store, msg.Collection, msg.TokenID, signer.Address(), msg.Dest)
	if err != nil {
		return nil, err
	}
	return &steward.DeliverResult{}, nil
}

// ApproveHandler lets the current owner authorize one more address to
// transfer the token.
type ApproveHandler struct {
	auth     x.Authenticator
	registry Registry
}

var _ steward.Handler = ApproveHandler{}

func (h ApproveHandler) Check(ctx steward.Context, store steward.KVStore, tx steward.Tx) (*steward.CheckResult, error) {
	var msg ApproveMsg
	if err := steward.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &steward.CheckResult{GasAllocated: approveTxCost}, nil
}

func (h ApproveHandler) Deliver(ctx steward.Context, store steward.KVStore, tx steward.Tx) (*steward.DeliverResult, error) {
	var msg ApproveMsg
	if err := steward.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	owner, err := h.registry.OwnerOf(store, msg.Collection, msg.TokenID)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}
	if err := h.registry.Approve(store, msg.Collection, msg.TokenID, msg.To); err != nil {
		return nil, err
	}
	return &steward.DeliverResult{}, nil
}
