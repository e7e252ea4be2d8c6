package collective

import (
	"github.com/steward-one/steward"
	"github.com/steward-one/steward/errors"
	"github.com/steward-one/steward/orm"
)

// BucketName is where the collectives are stored.
const BucketName = "coll"

const maxNameLength = 128

var _ orm.Model = (*Collective)(nil)

// Validate ensures the collective is properly set up.
func (c *Collective) Validate() error {
	if err := steward.Address(c.Address).Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	if n := len(c.Name); n == 0 || n > maxNameLength {
		return errors.Wrapf(errors.ErrModel, "name length %d", n)
	}
	if c.VotingPeriod <= 0 {
		return errors.Wrap(errors.ErrModel, "voting period must be positive")
	}
	if c.Quorum <= 0 || c.Quorum > 100 {
		return errors.Wrapf(errors.ErrModel, "quorum %d out of range", c.Quorum)
	}
	if len(c.Members) == 0 {
		return errors.Wrap(errors.ErrModel, "no members")
	}
	seen := make(map[string]struct{}, len(c.Members))
	for i, m := range c.Members {
		if err := steward.Address(m.Address).Validate(); err != nil {
			return errors.Wrapf(err, "member %d address", i)
		}
		if m.Tokens < 0 {
			return errors.Wrapf(errors.ErrModel, "member %d negative tokens", i)
		}
		a := steward.Address(m.Address).String()
		if _, ok := seen[a]; ok {
			return errors.Wrapf(errors.ErrModel, "member address %q is not unique", a)
		}
		seen[a] = struct{}{}
	}
	return nil
}

// Copy produces an independent copy of this collective.
func (c *Collective) Copy() orm.CloneableData {
	cpy := &Collective{
		Address:      append([]byte(nil), c.Address...),
		Name:         c.Name,
		VotingPeriod: c.VotingPeriod,
		Quorum:       c.Quorum,
		Members:      make([]*Member, len(c.Members)),
	}
	for i, m := range c.Members {
		cpy.Members[i] = &Member{
			Address: append([]byte(nil), m.Address...),
			Tokens:  m.Tokens,
		}
	}
	return cpy
}

// CollectiveBucket stores collectives keyed by an 8 byte sequence ID.
type CollectiveBucket struct {
	orm.ModelBucket
	idSeq orm.Sequence
}

// NewCollectiveBucket returns a bucket for keeping collectives.
func NewCollectiveBucket() *CollectiveBucket {
	b := orm.NewBucket(BucketName, orm.NewSimpleObj(nil, &Collective{}))
	return &CollectiveBucket{
		ModelBucket: orm.NewModelBucket(b),
		idSeq:       b.Sequence("id"),
	}
}

// NextID returns the next collective ID. The counter is global and
// never reused, so every summoned collective gets a unique name.
func (b *CollectiveBucket) NextID(db steward.KVStore) []byte {
	return b.idSeq.NextVal(db)
}

// CollectiveAccount derives the address owned by the collective with
// the given ID.
func CollectiveAccount(key []byte) steward.Address {
	return steward.NewCondition("collective", "impact", key).Address()
}
