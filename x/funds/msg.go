package funds

import (
	"github.com/steward-one/steward"
	"github.com/steward-one/steward/errors"
)

const (
	// PathSendMsg is the routing path for SendMsg.
	PathSendMsg = "funds/send"

	sendTxCost int64 = 100

	maxMemoSize = 128
)

var _ steward.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message.
func (SendMsg) Path() string {
	return PathSendMsg
}

// Validate makes sure the transfer is sensible.
func (s *SendMsg) Validate() error {
	if s.Amount <= 0 {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %d", s.Amount)
	}
	if err := steward.Address(s.Src).Validate(); err != nil {
		return errors.Wrap(err, "src")
	}
	if err := steward.Address(s.Dest).Validate(); err != nil {
		return errors.Wrap(err, "dest")
	}
	if len(s.Memo) > maxMemoSize {
		return errors.Wrap(errors.ErrState, "memo too long")
	}
	return nil
}
