package perpetual

import (
	"github.com/steward-one/steward"
	"github.com/steward-one/steward/errors"
	"github.com/steward-one/steward/gconf"
	"github.com/steward-one/steward/x"
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r steward.Registry, auth x.Authenticator, control *Controller) {
	r.Handle(PathListMsg, ListHandler{auth: auth, control: control})
	r.Handle(PathApproveMsg, ApproveHandler{auth: auth, control: control})
	r.Handle(PathBuyMsg, BuyHandler{auth: auth, control: control})
	r.Handle(PathSetPriceMsg, SetPriceHandler{auth: auth, control: control})
	r.Handle(PathDepositMsg, DepositHandler{auth: auth, control: control})
	r.Handle(PathExitMsg, ExitHandler{auth: auth, control: control})
	r.Handle(PathRebalanceMsg, RebalanceHandler{auth: auth, control: control})
	r.Handle(PathUpdateConfigurationMsg,
		gconf.NewUpdateConfigurationHandler("perpetual", &Configuration{}, auth))
}

// RegisterQuery will register all buckets of this package.
func RegisterQuery(qr steward.QueryRouter) {
	NewListingBucket().Register("listings", qr)
	NewHoldingBucket().Register("holdings", qr)
	NewPatronBucket().Register("patrons", qr)
	NewContributionBucket().Register("contributions", qr)
	NewUnclaimedBucket().Register("unclaimed", qr)
	NewLinkBucket().Register("links", qr)
}

// loadConf returns the package configuration. A missing or incomplete
// configuration means the engine was never initialized and no
// operation may run.
func loadConf(db steward.ReadOnlyKVStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, "perpetual", &conf); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrap(ErrNotInitialized, "no configuration")
		}
		return nil, err
	}
	if len(conf.Operator) == 0 || len(conf.Factory) == 0 {
		return nil, errors.Wrap(ErrNotInitialized, "incomplete configuration")
	}
	return &conf, nil
}

// blockNow returns the current block time as unix seconds.
func blockNow(ctx steward.Context) (steward.UnixTime, error) {
	t, err := steward.BlockTime(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "block time")
	}
	return steward.AsUnixTime(t), nil
}

// ListHandler escrows a deed into the perpetual sale flow.
type ListHandler struct {
	auth    x.Authenticator
	control *Controller
}

var _ steward.Handler = ListHandler{}

func (h ListHandler) Check(ctx steward.Context, store steward.KVStore, tx steward.Tx) (*steward.CheckResult, error) {
	if _, err := h.validate(ctx, store, tx); err != nil {
		return nil, err
	}
	return &steward.CheckResult{GasAllocated: listTxCost}, nil
}

func (h ListHandler) Deliver(ctx steward.Context, store steward.KVStore, tx steward.Tx) (*steward.DeliverResult, error) {
	msg, err := h.validate(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	now, err := blockNow(ctx)
	if err != nil {
		return nil, err
	}
	signer := x.MainSigner(ctx, h.auth)
	if err := h.control.List(store, msg.Collection, msg.TokenID, msg.Price, signer.Address(), now); err != nil {
		return nil, err
	}
	return &steward.DeliverResult{}, nil
}

func (h ListHandler) validate(ctx steward.Context, store steward.KVStore, tx steward.Tx) (*ListMsg, error) {
	var msg ListMsg
	if err := steward.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := loadConf(store); err != nil {
		return nil, err
	}
	if x.MainSigner(ctx, h.auth) == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "transaction must be signed")
	}
	return &msg, nil
}

// ApproveHandler confirms or rejects a pending listing. Only the
// configured operator may decide.
type ApproveHandler struct {
	auth    x.Authenticator
	control *Controller
}

var _ steward.Handler = ApproveHandler{}

func (h ApproveHandler) Check(ctx steward.Context, store steward.KVStore, tx steward.Tx) (*steward.CheckResult, error) {
	if _, err := h.validate(ctx, store, tx); err != nil {
		return nil, err
	}
	return &steward.CheckResult{GasAllocated: approveTxCost}, nil
}

func (h ApproveHandler) Deliver(ctx steward.Context, store steward.KVStore, tx steward.Tx) (*steward.DeliverResult, error) {
	msg, err := h.validate(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Approve(store, msg.Collection, msg.TokenID, msg.Sale); err != nil {
		return nil, err
	}
	return &steward.DeliverResult{}, nil
}

func (h ApproveHandler) validate(ctx steward.Context, store steward.KVStore, tx steward.Tx) (*ApproveMsg, error) {
	var msg ApproveMsg
	if err := steward.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(store)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, conf.Operator) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "operator signature missing")
	}
	return &msg, nil
}

// BuyHandler performs a purchase at the asserted price.
type BuyHandler struct {
	auth    x.Authenticator
	control *Controller
}

var _ steward.Handler = BuyHandler{}

func (h BuyHandler) Check(ctx steward.Context, store steward.KVStore, tx steward.Tx) (*steward.CheckResult, error) {
	if _, _, err := h.validate(ctx, store, tx); err != nil {
		return nil, err
	}
	return &steward.CheckResult{GasAllocated: buyTxCost}, nil
}

func (h BuyHandler) Deliver(ctx steward.Context, store steward.KVStore, tx steward.Tx) (*steward.DeliverResult, error) {
	msg, buyer, err := h.validate(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	now, err := blockNow(ctx)
	if err != nil {
		return nil, err
	}
	err = h.control.Buy(store, msg.Collection, msg.TokenID, buyer,
		msg.NewPrice, msg.CurrentPrice, msg.Payment, now)
	if err != nil {
		return nil, err
	}
	return &steward.DeliverResult{}, nil
}

func (h BuyHandler) validate(ctx steward.Context, store steward.KVStore, tx steward.Tx) (*BuyMsg, steward.Address, error) {
	var msg BuyMsg
	if err := steward.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if _, err := loadConf(store); err != nil {
		return nil, nil, err
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "transaction must be signed")
	}
	return &msg, signer.Address(), nil
}

// SetPriceHandler re-assesses the sale price of a held asset.
type SetPriceHandler struct {
	auth    x.Authenticator
	control *Controller
}

var _ steward.Handler = SetPriceHandler{}

func (h SetPriceHandler) Check(ctx steward.Context, store steward.KVStore, tx steward.Tx) (*steward.CheckResult, error) {
	if _, _, err := h.validate(ctx, store, tx); err != nil {
		return nil, err
	}
	return &steward.CheckResult{GasAllocated: setPriceTxCost}, nil
}

func (h SetPriceHandler) Deliver(ctx steward.Context, store steward.KVStore, tx steward.Tx) (*steward.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	now, err := blockNow(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.control.SetPrice(store, msg.Collection, msg.TokenID, caller, msg.Price, now); err != nil {
		return nil, err
	}
	return &steward.DeliverResult{}, nil
}

func (h SetPriceHandler) validate(ctx steward.Context, store steward.KVStore, tx steward.Tx) (*SetPriceMsg, steward.Address, error) {
	var msg SetPriceMsg
	if err := steward.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if _, err := loadConf(store); err != nil {
		return nil, nil, err
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "transaction must be signed")
	}
	return &msg, signer.Address(), nil
}

// DepositHandler tops up the tax deposit of a held asset.
type DepositHandler struct {
	auth    x.Authenticator
	control *Controller
}

var _ steward.Handler = DepositHandler{}

func (h DepositHandler) Check(ctx steward.Context, store steward.KVStore, tx steward.Tx) (*steward.CheckResult, error) {
	if _, _, err := h.validate(ctx, store, tx); err != nil {
		return nil, err
	}
	return &steward.CheckResult{GasAllocated: depositTxCost}, nil
}

func (h DepositHandler) Deliver(ctx steward.Context, store steward.KVStore, tx steward.Tx) (*steward.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	now, err := blockNow(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Deposit(store, msg.Collection, msg.TokenID, caller, msg.Amount, now); err != nil {
		return nil, err
	}
	return &steward.DeliverResult{}, nil
}

func (h DepositHandler) validate(ctx steward.Context, store steward.KVStore, tx steward.Tx) (*DepositMsg, steward.Address, error) {
	var msg DepositMsg
	if err := steward.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if _, err := loadConf(store); err != nil {
		return nil, nil, err
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "transaction must be signed")
	}
	return &msg, signer.Address(), nil
}

// ExitHandler withdraws from the deposit of a held asset.
type ExitHandler struct {
	auth    x.Authenticator
	control *Controller
}

var _ steward.Handler = ExitHandler{}

func (h ExitHandler) Check(ctx steward.Context, store steward.KVStore, tx steward.Tx) (*steward.CheckResult, error) {
	if _, _, err := h.validate(ctx, store, tx); err != nil {
		return nil, err
	}
	return &steward.CheckResult{GasAllocated: exitTxCost}, nil
}

func (h ExitHandler) Deliver(ctx steward.Context, store steward.KVStore, tx steward.Tx) (*steward.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	now, err := blockNow(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Exit(store, msg.Collection, msg.TokenID, caller, msg.Amount, now); err != nil {
		return nil, err
	}
	return &steward.DeliverResult{}, nil
}

func (h ExitHandler) validate(ctx steward.Context, store steward.KVStore, tx steward.Tx) (*ExitMsg, steward.Address, error) {
	var msg ExitMsg
	if err := steward.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if _, err := loadConf(store); err != nil {
		return nil, nil, err
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "transaction must be signed")
	}
	return &msg, signer.Address(), nil
}

// RebalanceHandler reconciles collective membership tokens with the
// recorded contributions. Anyone may trigger it.
type RebalanceHandler struct {
	auth    x.Authenticator
	control *Controller
}

var _ steward.Handler = RebalanceHandler{}

func (h RebalanceHandler) Check(ctx steward.Context, store steward.KVStore, tx steward.Tx) (*steward.CheckResult, error) {
	if _, err := h.validate(ctx, store, tx); err != nil {
		return nil, err
	}
	return &steward.CheckResult{GasAllocated: rebalanceTxCost}, nil
}

func (h RebalanceHandler) Deliver(ctx steward.Context, store steward.KVStore, tx steward.Tx) (*steward.DeliverResult, error) {
	msg, err := h.validate(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Rebalance(store, msg.Collection, msg.TokenID); err != nil {
		return nil, err
	}
	return &steward.DeliverResult{}, nil
}

func (h RebalanceHandler) validate(ctx steward.Context, store steward.KVStore, tx steward.Tx) (*RebalanceMsg, error) {
	var msg RebalanceMsg
	if err := steward.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := loadConf(store); err != nil {
		return nil, err
	}
	return &msg, nil
}
