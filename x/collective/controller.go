package collective

import (
	"fmt"
	"math"

	"github.com/steward-one/steward"
	"github.com/steward-one/steward/errors"
	"github.com/steward-one/steward/orm"
)

const (
	// defaultVotingPeriod is one week in seconds.
	defaultVotingPeriod int64 = 7 * 24 * 60 * 60
	// defaultQuorum is the percentage of token weight required for a
	// vote to carry.
	defaultQuorum int64 = 50
)

// Controller is the functionality needed by other extensions to
// summon collectives and manage their membership tokens.
type Controller interface {
	// Summon deploys a new collective with the given initial members
	// and returns its ID.
	Summon(db steward.KVStore, members []*Member) ([]byte, error)

	// Mint adds membership tokens to the given member, appending a
	// brand new member when needed.
	Mint(db steward.KVStore, collectiveID []byte, member steward.Address, amount int64) error

	// Burn removes membership tokens from the given member.
	Burn(db steward.KVStore, collectiveID []byte, member steward.Address, amount int64) error

	// TokensOf returns the membership tokens held by the given
	// member. A non-member holds zero tokens.
	TokensOf(db steward.ReadOnlyKVStore, collectiveID []byte, member steward.Address) (int64, error)
}

// BaseController implements Controller on top of a CollectiveBucket.
type BaseController struct {
	bucket *CollectiveBucket
}

var _ Controller = BaseController{}

// NewController returns a base controller implementation.
func NewController() BaseController {
	return BaseController{bucket: NewCollectiveBucket()}
}

// Summon deploys a new collective. Governance parameters are fixed,
// the name is derived from the global counter so that every collective
// is named uniquely.
func (c BaseController) Summon(db steward.KVStore, members []*Member) ([]byte, error) {
	id := c.bucket.NextID(db)
	col := &Collective{
		Address:      CollectiveAccount(id),
		Name:         fmt.Sprintf("impact-%d", orm.DecodeSequence(id)),
		VotingPeriod: defaultVotingPeriod,
		Quorum:       defaultQuorum,
		Members:      members,
	}
	if err := c.bucket.Put(db, id, col); err != nil {
		return nil, errors.Wrap(err, "cannot store collective")
	}
	return id, nil
}

// Mint adds membership tokens to the given member. An address that is
// not yet a member joins with the minted amount.
func (c BaseController) Mint(db steward.KVStore, collectiveID []byte, member steward.Address, amount int64) error {
	if amount <= 0 {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %d", amount)
	}
	var col Collective
	if err := c.bucket.One(db, collectiveID, &col); err != nil {
		return errors.Wrap(err, "cannot load collective")
	}
	m := findMember(&col, member)
	if m == nil {
		m = &Member{Address: member}
		col.Members = append(col.Members, m)
	}
	if m.Tokens > math.MaxInt64-amount {
		return errors.Wrap(errors.ErrOverflow, "membership tokens")
	}
	m.Tokens += amount
	return c.bucket.Put(db, collectiveID, &col)
}

// Burn removes membership tokens from the given member.
func (c BaseController) Burn(db steward.KVStore, collectiveID []byte, member steward.Address, amount int64) error {
	if amount <= 0 {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %d", amount)
	}
	var col Collective
	if err := c.bucket.One(db, collectiveID, &col); err != nil {
		return errors.Wrap(err, "cannot load collective")
	}
	m := findMember(&col, member)
	if m == nil {
		return errors.Wrapf(errors.ErrNotFound, "member %s", member)
	}
	if m.Tokens < amount {
		return errors.Wrapf(errors.ErrAmount, "cannot burn %d of %d tokens", amount, m.Tokens)
	}
	m.Tokens -= amount
	return c.bucket.Put(db, collectiveID, &col)
}

// TokensOf returns the membership tokens held by the given member.
func (c BaseController) TokensOf(db steward.ReadOnlyKVStore, collectiveID []byte, member steward.Address) (int64, error) {
	var col Collective
	if err := c.bucket.One(db, collectiveID, &col); err != nil {
		return 0, errors.Wrap(err, "cannot load collective")
	}
	if m := findMember(&col, member); m != nil {
		return m.Tokens, nil
	}
	return 0, nil
}

func findMember(col *Collective, addr steward.Address) *Member {
	for _, m := range col.Members {
		if steward.Address(m.Address).Equals(addr) {
			return m
		}
	}
	return nil
}
