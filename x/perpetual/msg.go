package perpetual

import (
	"github.com/steward-one/steward"
	"github.com/steward-one/steward/errors"
)

const (
	// PathListMsg is the routing path for ListMsg.
	PathListMsg = "perpetual/list"
	// PathApproveMsg is the routing path for ApproveMsg.
	PathApproveMsg = "perpetual/approve"
	// PathBuyMsg is the routing path for BuyMsg.
	PathBuyMsg = "perpetual/buy"
	// PathSetPriceMsg is the routing path for SetPriceMsg.
	PathSetPriceMsg = "perpetual/set_price"
	// PathDepositMsg is the routing path for DepositMsg.
	PathDepositMsg = "perpetual/deposit"
	// PathExitMsg is the routing path for ExitMsg.
	PathExitMsg = "perpetual/exit"
	// PathRebalanceMsg is the routing path for RebalanceMsg.
	PathRebalanceMsg = "perpetual/rebalance"
	// PathUpdateConfigurationMsg is the routing path for
	// UpdateConfigurationMsg.
	PathUpdateConfigurationMsg = "perpetual/update_configuration"

	listTxCost      int64 = 200
	approveTxCost   int64 = 100
	buyTxCost       int64 = 500
	setPriceTxCost  int64 = 100
	depositTxCost   int64 = 100
	exitTxCost      int64 = 100
	rebalanceTxCost int64 = 300
)

// Path returns the routing path for this message.
func (ListMsg) Path() string {
	return PathListMsg
}

// Validate makes sure the listing request is sensible.
func (m *ListMsg) Validate() error {
	if _, err := AssetKey(m.Collection, m.TokenID); err != nil {
		return err
	}
	if m.Price <= 0 {
		return errors.Wrapf(ErrInvalidPrice, "price %d", m.Price)
	}
	return nil
}

// Path returns the routing path for this message.
func (ApproveMsg) Path() string {
	return PathApproveMsg
}

// Validate makes sure the approval is sensible.
func (m *ApproveMsg) Validate() error {
	_, err := AssetKey(m.Collection, m.TokenID)
	return err
}

// Path returns the routing path for this message.
func (BuyMsg) Path() string {
	return PathBuyMsg
}

// Validate makes sure the purchase request is sensible.
func (m *BuyMsg) Validate() error {
	if _, err := AssetKey(m.Collection, m.TokenID); err != nil {
		return err
	}
	if m.NewPrice <= 0 {
		return errors.Wrapf(ErrInvalidPurchase, "new price %d", m.NewPrice)
	}
	if m.CurrentPrice <= 0 {
		return errors.Wrapf(ErrInvalidPurchase, "current price %d", m.CurrentPrice)
	}
	if m.Payment <= 0 {
		return errors.Wrapf(ErrInvalidPurchase, "payment %d", m.Payment)
	}
	return nil
}

// Path returns the routing path for this message.
func (SetPriceMsg) Path() string {
	return PathSetPriceMsg
}

// Validate makes sure the new assessment is sensible.
func (m *SetPriceMsg) Validate() error {
	if _, err := AssetKey(m.Collection, m.TokenID); err != nil {
		return err
	}
	if m.Price <= 0 {
		return errors.Wrapf(ErrInvalidPrice, "price %d", m.Price)
	}
	return nil
}

// Path returns the routing path for this message.
func (DepositMsg) Path() string {
	return PathDepositMsg
}

// Validate makes sure the deposit is sensible.
func (m *DepositMsg) Validate() error {
	if _, err := AssetKey(m.Collection, m.TokenID); err != nil {
		return err
	}
	if m.Amount <= 0 {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %d", m.Amount)
	}
	return nil
}

// Path returns the routing path for this message.
func (ExitMsg) Path() string {
	return PathExitMsg
}

// Validate makes sure the withdrawal is sensible.
func (m *ExitMsg) Validate() error {
	if _, err := AssetKey(m.Collection, m.TokenID); err != nil {
		return err
	}
	if m.Amount < 0 {
		return errors.Wrapf(ErrInvalidExit, "negative amount %d", m.Amount)
	}
	return nil
}

// Path returns the routing path for this message.
func (RebalanceMsg) Path() string {
	return PathRebalanceMsg
}

// Validate makes sure the rebalance request is sensible.
func (m *RebalanceMsg) Validate() error {
	_, err := AssetKey(m.Collection, m.TokenID)
	return err
}

// Path returns the routing path for this message.
func (UpdateConfigurationMsg) Path() string {
	return PathUpdateConfigurationMsg
}

// Validate makes sure the configuration patch is sensible.
func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	return nil
}

var _ steward.Msg = (*ListMsg)(nil)
var _ steward.Msg = (*ApproveMsg)(nil)
var _ steward.Msg = (*BuyMsg)(nil)
var _ steward.Msg = (*SetPriceMsg)(nil)
var _ steward.Msg = (*DepositMsg)(nil)
var _ steward.Msg = (*ExitMsg)(nil)
var _ steward.Msg = (*RebalanceMsg)(nil)
var _ steward.Msg = (*UpdateConfigurationMsg)(nil)
