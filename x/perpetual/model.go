package perpetual

import (
	"github.com/steward-one/steward"
	"github.com/steward-one/steward/errors"
	"github.com/steward-one/steward/orm"
	"github.com/steward-one/steward/x/deed"
)

const (
	// ListingBucketName is where the listings are stored.
	ListingBucketName = "listing"
	// HoldingBucketName is where the holding states are stored.
	HoldingBucketName = "holding"
	// PatronBucketName is where the patron list entries are stored.
	PatronBucketName = "patron"
	// ContributionBucketName is where the contributions are stored.
	ContributionBucketName = "contrib"
	// UnclaimedBucketName is where the unclaimed balances are stored.
	UnclaimedBucketName = "unclaimed"
	// LinkBucketName is where the collective links are stored.
	LinkBucketName = "link"
)

// maxTaxRate bounds the yearly tax in whole percent.
const maxTaxRate = 100

var (
	_ orm.Model = (*Listing)(nil)
	_ orm.Model = (*Holding)(nil)
	_ orm.Model = (*Patron)(nil)
	_ orm.Model = (*Contribution)(nil)
	_ orm.Model = (*Unclaimed)(nil)
	_ orm.Model = (*Link)(nil)
)

// AssetKey builds the primary key of an asset from its collection name
// and token ID. It is shared by the listing, holding and link buckets.
func AssetKey(collection string, tokenID []byte) ([]byte, error) {
	return deed.TokenKey(collection, tokenID)
}

// patronKey addresses the n-th entry of the per asset patron list.
// Big endian encoding keeps the entries iterable in join order.
func patronKey(asset []byte, index int64) []byte {
	return append(append([]byte(nil), asset...), orm.EncodeSequence(index)...)
}

// contributionKey addresses the contribution of one patron to one
// asset.
func contributionKey(asset []byte, patron steward.Address) []byte {
	return append(append([]byte(nil), asset...), patron...)
}

// Validate ensures the listing is sensible. A zero price is a valid
// state, it marks a foreclosed and inactive asset.
func (l *Listing) Validate() error {
	if l.Price < 0 {
		return errors.Wrapf(ErrInvalidPrice, "negative price %d", l.Price)
	}
	if l.TaxRate <= 0 || l.TaxRate > maxTaxRate {
		return errors.Wrapf(errors.ErrModel, "tax rate %d out of range", l.TaxRate)
	}
	if err := l.Creator.Validate(); err != nil {
		return errors.Wrap(err, "creator")
	}
	if l.ForSale && l.Price == 0 {
		return errors.Wrap(errors.ErrModel, "foreclosed asset cannot be for sale")
	}
	return nil
}

// Copy produces an independent copy of this listing.
func (l *Listing) Copy() orm.CloneableData {
	return &Listing{
		Price:   l.Price,
		ForSale: l.ForSale,
		TaxRate: l.TaxRate,
		Creator: append(steward.Address(nil), l.Creator...),
	}
}

// Validate ensures the holding state is consistent.
func (h *Holding) Validate() error {
	if err := h.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if h.Deposit < 0 {
		return errors.Wrapf(errors.ErrModel, "negative deposit %d", h.Deposit)
	}
	if h.TotalCollected < 0 {
		return errors.Wrapf(errors.ErrModel, "negative total collected %d", h.TotalCollected)
	}
	if h.PatronCount < 0 {
		return errors.Wrapf(errors.ErrModel, "negative patron count %d", h.PatronCount)
	}
	if err := h.TimeCollected.Validate(); err != nil {
		return errors.Wrap(err, "time collected")
	}
	if err := h.TimeAcquired.Validate(); err != nil {
		return errors.Wrap(err, "time acquired")
	}
	return nil
}

// Copy produces an independent copy of this holding state.
func (h *Holding) Copy() orm.CloneableData {
	return &Holding{
		Owner:          append(steward.Address(nil), h.Owner...),
		Deposit:        h.Deposit,
		TimeCollected:  h.TimeCollected,
		TimeAcquired:   h.TimeAcquired,
		TotalCollected: h.TotalCollected,
		PatronCount:    h.PatronCount,
	}
}

// Validate ensures the patron entry references a proper address.
func (p *Patron) Validate() error {
	if err := p.Address.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	return p.Since.Validate()
}

// Copy produces an independent copy of this patron entry.
func (p *Patron) Copy() orm.CloneableData {
	return &Patron{
		Address: append(steward.Address(nil), p.Address...),
		Since:   p.Since,
	}
}

// Validate ensures the contribution totals are non-negative.
func (c *Contribution) Validate() error {
	if c.Total < 0 {
		return errors.Wrapf(errors.ErrModel, "negative total %d", c.Total)
	}
	if c.HeldDuration < 0 {
		return errors.Wrapf(errors.ErrModel, "negative held duration %d", c.HeldDuration)
	}
	return nil
}

// Copy produces an independent copy of this contribution.
func (c *Contribution) Copy() orm.CloneableData {
	return &Contribution{
		Total:        c.Total,
		Patron:       c.Patron,
		HeldDuration: c.HeldDuration,
	}
}

// Validate ensures the unclaimed amount is non-negative.
func (u *Unclaimed) Validate() error {
	if u.Amount < 0 {
		return errors.Wrapf(errors.ErrModel, "negative amount %d", u.Amount)
	}
	return nil
}

// Copy produces an independent copy of this unclaimed balance.
func (u *Unclaimed) Copy() orm.CloneableData {
	return &Unclaimed{
		Amount: u.Amount,
	}
}

// Validate ensures the link references a collective.
func (l *Link) Validate() error {
	return orm.ValidateSequence(l.CollectiveID)
}

// Copy produces an independent copy of this link.
func (l *Link) Copy() orm.CloneableData {
	return &Link{
		CollectiveID: append([]byte(nil), l.CollectiveID...),
	}
}

// Validate ensures all configured identities are proper addresses.
func (c *Configuration) Validate() error {
	if err := c.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := c.Operator.Validate(); err != nil {
		return errors.Wrap(err, "operator")
	}
	if err := c.Factory.Validate(); err != nil {
		return errors.Wrap(err, "factory")
	}
	return nil
}

// NewListingBucket returns a bucket for keeping listings keyed by
// asset.
func NewListingBucket() orm.ModelBucket {
	return orm.NewModelBucket(orm.NewBucket(ListingBucketName, orm.NewSimpleObj(nil, &Listing{})))
}

// NewHoldingBucket returns a bucket for keeping holding states keyed
// by asset.
func NewHoldingBucket() orm.ModelBucket {
	return orm.NewModelBucket(orm.NewBucket(HoldingBucketName, orm.NewSimpleObj(nil, &Holding{})))
}

// NewPatronBucket returns a bucket for keeping the append-only patron
// lists, keyed by asset and join index.
func NewPatronBucket() orm.ModelBucket {
	return orm.NewModelBucket(orm.NewBucket(PatronBucketName, orm.NewSimpleObj(nil, &Patron{})))
}

// NewContributionBucket returns a bucket for keeping contributions
// keyed by asset and patron address.
func NewContributionBucket() orm.ModelBucket {
	return orm.NewModelBucket(orm.NewBucket(ContributionBucketName, orm.NewSimpleObj(nil, &Contribution{})))
}

// NewUnclaimedBucket returns a bucket for keeping unclaimed balances
// keyed by address.
func NewUnclaimedBucket() orm.ModelBucket {
	return orm.NewModelBucket(orm.NewBucket(UnclaimedBucketName, orm.NewSimpleObj(nil, &Unclaimed{})))
}

// NewLinkBucket returns a bucket for keeping collective links keyed by
// asset.
func NewLinkBucket() orm.ModelBucket {
	return orm.NewModelBucket(orm.NewBucket(LinkBucketName, orm.NewSimpleObj(nil, &Link{})))
}
