package deed

import (
	"github.com/steward-one/steward"
	"github.com/steward-one/steward/errors"
)

const (
	// PathIssueMsg is the routing path for IssueMsg.
	PathIssueMsg = "deed/issue"
	// PathTransferMsg is the routing path for TransferMsg.
	PathTransferMsg = "deed/transfer"
	// PathApproveMsg is the routing path for ApproveMsg.
	PathApproveMsg = "deed/approve"

	issueTxCost    int64 = 150
	transferTxCost int64 = 100
	approveTxCost  int64 = 100
)

var (
	_ steward.Msg = (*IssueMsg)(nil)
	_ steward.Msg = (*TransferMsg)(nil)
	_ steward.Msg = (*ApproveMsg)(nil)
)

// Path returns the routing path for this message.
func (IssueMsg) Path() string {
	return PathIssueMsg
}

// Validate makes sure the issue request is sensible.
func (m *IssueMsg) Validate() error {
	if _, err := TokenKey(m.Collection, m.TokenID); err != nil {
		return err
	}
	if err := steward.Address(m.Owner).Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	return nil
}

// Path returns the routing path for this message.
func (TransferMsg) Path() string {
	return PathTransferMsg
}

// Validate makes sure the transfer is sensible.
func (m *TransferMsg) Validate() error {
	if _, err := TokenKey(m.Collection, m.TokenID); err != nil {
		return err
	}
	if err := steward.Address(m.Dest).Validate(); err != nil {
		return errors.Wrap(err, "dest")
	}
	return nil
}

// Path returns the routing path for this message.
func (ApproveMsg) Path() string {
	return PathApproveMsg
}

// Validate makes sure the approval is sensible. An empty destination
// is allowed and clears an earlier approval.
func (m *ApproveMsg) Validate() error {
	if _, err := TokenKey(m.Collection, m.TokenID); err != nil {
		return err
	}
	if len(m.To) != 0 {
		if err := steward.Address(m.To).Validate(); err != nil {
			return errors.Wrap(err, "to")
		}
	}
	return nil
}
