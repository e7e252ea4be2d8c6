package perpetual

import (
	"math"
	"math/big"

	"github.com/steward-one/steward"
	"github.com/steward-one/steward/errors"
	"github.com/steward-one/steward/orm"
	"github.com/steward-one/steward/x/collective"
	"github.com/steward-one/steward/x/deed"
	"github.com/steward-one/steward/x/funds"
)

const (
	// taxYearSeconds is the accrual period of the full tax rate.
	taxYearSeconds = 365 * 86400

	// DefaultTaxRate is the yearly tax in whole percent applied to
	// every new listing.
	DefaultTaxRate int64 = 50
)

// Custody returns the per asset account that holds the deed and the
// pooled funds while the engine controls them.
func Custody(asset []byte) steward.Condition {
	return steward.NewCondition("perpetual", "custody", asset)
}

// Controller implements the patronage engine. All tax collection,
// foreclosure, settlement and collective balancing flows through it.
type Controller struct {
	listings      orm.ModelBucket
	holdings      orm.ModelBucket
	patrons       orm.ModelBucket
	contributions orm.ModelBucket
	unclaimed     orm.ModelBucket
	links         orm.ModelBucket
	deeds         deed.Registry
	cash          funds.Controller
	collectives   collective.Controller
}

// NewController wires the engine to its collaborators: the asset
// registry, the funds ledger and the collective factory.
func NewController(deeds deed.Registry, cash funds.Controller, collectives collective.Controller) *Controller {
	return &Controller{
		listings:      NewListingBucket(),
		holdings:      NewHoldingBucket(),
		patrons:       NewPatronBucket(),
		contributions: NewContributionBucket(),
		unclaimed:     NewUnclaimedBucket(),
		links:         NewLinkBucket(),
		deeds:         deeds,
		cash:          cash,
		collectives:   collectives,
	}
}

// List accepts an asset into custody and creates its listing. The
// caller must be the current owner of the deed and the price must be
// nonzero. The listing is not purchasable until approved.
func (c *Controller) List(db steward.KVStore, collection string, tokenID []byte, price int64, owner steward.Address, now steward.UnixTime) error {
	if price <= 0 {
		return errors.Wrapf(ErrInvalidPrice, "price %d", price)
	}
	asset, err := AssetKey(collection, tokenID)
	if err != nil {
		return err
	}
	custody := Custody(asset).Address()

	var existing Listing
	switch err := c.listings.One(db, asset, &existing); {
	case err == nil:
		// A foreclosed asset re-enters the sale flow through a fresh
		// listing by its creator. The deed is already in custody.
		if existing.Price != 0 {
			return errors.Wrap(errors.ErrDuplicate, "asset is already listed")
		}
		if !existing.Creator.Equals(owner) {
			return errors.Wrap(errors.ErrUnauthorized, "only the creator may relist")
		}
		var hld Holding
		if err := c.holdings.One(db, asset, &hld); err != nil {
			return err
		}
		existing.Price = price
		existing.ForSale = false
		if err := c.listings.Put(db, asset, &existing); err != nil {
			return err
		}
		hld.Owner = custody
		hld.Deposit = 0
		hld.TimeCollected = now
		hld.TimeAcquired = now
		return c.holdings.Put(db, asset, &hld)
	case !errors.ErrNotFound.Is(err):
		return err
	}

	if err := c.deeds.Transfer(db, collection, tokenID, owner, custody); err != nil {
		return errors.Wrap(err, "cannot take custody")
	}
	lst := &Listing{
		Price:   price,
		ForSale: false,
		TaxRate: DefaultTaxRate,
		Creator: owner,
	}
	if err := c.listings.Put(db, asset, lst); err != nil {
		return err
	}
	hld := &Holding{
		Owner:         custody,
		TimeCollected: now,
		TimeAcquired:  now,
	}
	return c.holdings.Put(db, asset, hld)
}

// Approve confirms or rejects a listing. Rejection returns the deed to
// the recorded creator and removes the listing. The asset must still
// be in custody.
func (c *Controller) Approve(db steward.KVStore, collection string, tokenID []byte, sale bool) error {
	asset, err := AssetKey(collection, tokenID)
	if err != nil {
		return err
	}
	var lst Listing
	if err := c.listings.One(db, asset, &lst); err != nil {
		return errors.Wrap(err, "cannot load listing")
	}
	var hld Holding
	if err := c.holdings.One(db, asset, &hld); err != nil {
		return errors.Wrap(err, "cannot load holding")
	}
	custody := Custody(asset).Address()
	if !hld.Owner.Equals(custody) {
		return errors.Wrap(errors.ErrUnauthorized, "asset is not in custody")
	}
	if !sale {
		if err := c.deeds.Transfer(db, collection, tokenID, custody, lst.Creator); err != nil {
			return errors.Wrap(err, "cannot return deed")
		}
		if err := c.listings.Delete(db, asset); err != nil {
			return err
		}
		return c.holdings.Delete(db, asset)
	}
	lst.ForSale = true
	return c.listings.Put(db, asset, &lst)
}

// Settle collects the tax accrued since the last settlement,
// idempotent per timestamp. The collected amount is subtracted from
// the deposit and credited to the actor's cumulative contribution.
// When the accrued tax meets or exceeds the deposit the asset was
// effectively foreclosed at some point in the past. The settlement
// instant is then interpolated and the asset reverts to custody.
//
// Every operation that reads price, deposit or ownership must settle
// first so that it never acts on stale state.
func (c *Controller) Settle(db steward.KVStore, collection string, tokenID []byte, actor steward.Address, now steward.UnixTime) error {
	asset, err := AssetKey(collection, tokenID)
	if err != nil {
		return err
	}
	var lst Listing
	if err := c.listings.One(db, asset, &lst); err != nil {
		if errors.ErrNotFound.Is(err) {
			return errors.Wrap(ErrNotInitialized, "asset is not listed")
		}
		return err
	}
	if lst.Price == 0 {
		// Foreclosed and inactive.
		return nil
	}
	var hld Holding
	if err := c.holdings.One(db, asset, &hld); err != nil {
		return errors.Wrap(err, "cannot load holding")
	}
	custody := Custody(asset).Address()
	if hld.Owner.Equals(custody) {
		// No tax accrues while the asset sits in custody.
		return nil
	}

	elapsed := int64(now - hld.TimeCollected)
	if elapsed < 0 {
		return errors.Wrap(errors.ErrState, "settlement time before last collection")
	}
	due := patronageDue(lst.Price, lst.TaxRate, elapsed)

	var collected int64
	if due < hld.Deposit {
		hld.TimeCollected = now
		hld.Deposit -= due
		collected = due
	} else {
		// Interpolate the instant the deposit ran out.
		if due > 0 {
			hld.TimeCollected += steward.UnixTime(mulDiv(elapsed, hld.Deposit, due))
		}
		collected = hld.Deposit
		hld.Deposit = 0
	}
	if collected > 0 {
		if hld.TotalCollected > math.MaxInt64-collected {
			return errors.Wrap(errors.ErrOverflow, "total collected")
		}
		hld.TotalCollected += collected
		if err := c.credit(db, asset, actor, collected, false); err != nil {
			return err
		}
	}
	if err := c.holdings.Put(db, asset, &hld); err != nil {
		return err
	}
	if hld.Deposit == 0 {
		return c.foreclose(db, collection, tokenID, asset, &lst, &hld)
	}
	return nil
}

// foreclose reverts the asset into custody. The price drops to zero
// and the listing is taken off sale, so re-entry into the sale flow
// requires a fresh listing cycle.
func (c *Controller) foreclose(db steward.KVStore, collection string, tokenID []byte, asset []byte, lst *Listing, hld *Holding) error {
	custody := Custody(asset).Address()
	// The reclaim is authorized by the approval granted to custody at
	// purchase time, not by the holder.
	if err := c.deeds.Transfer(db, collection, tokenID, custody, custody); err != nil {
		return errors.Wrap(err, "cannot reclaim deed")
	}
	hld.Owner = custody
	if err := c.holdings.Put(db, asset, hld); err != nil {
		return err
	}
	lst.Price = 0
	lst.ForSale = false
	return c.listings.Put(db, asset, lst)
}

// Buy settles the asset, validates the purchase against the settled
// price and performs the full settlement: payment in, payout to the
// previous holder, deed transfer, patron append and collective
// rebalance. A failing payout to the previous holder does not abort
// the sale, the owed amount is credited as unclaimed balance instead.
func (c *Controller) Buy(db steward.KVStore, collection string, tokenID []byte, buyer steward.Address, newPrice, currentPrice, payment int64, now steward.UnixTime) error {
	asset, err := AssetKey(collection, tokenID)
	if err != nil {
		return err
	}
	var lst Listing
	if err := c.listings.One(db, asset, &lst); err != nil {
		if errors.ErrNotFound.Is(err) {
			return errors.Wrap(ErrNotInitialized, "asset is not listed")
		}
		return err
	}
	if !lst.ForSale {
		return errors.Wrap(ErrNotInitialized, "asset is not approved for sale")
	}

	// Act on settled state, never on a stale price or deposit.
	if err := c.Settle(db, collection, tokenID, buyer, now); err != nil {
		return err
	}
	if err := c.listings.One(db, asset, &lst); err != nil {
		return err
	}
	var hld Holding
	if err := c.holdings.One(db, asset, &hld); err != nil {
		return err
	}

	switch {
	case lst.Price != currentPrice:
		return errors.Wrapf(ErrInvalidPurchase, "settled price %d, asserted %d", lst.Price, currentPrice)
	case newPrice <= 0:
		return errors.Wrapf(ErrInvalidPurchase, "new price %d", newPrice)
	case payment < currentPrice:
		return errors.Wrapf(ErrInvalidPurchase, "paid %d below price %d", payment, currentPrice)
	}

	custody := Custody(asset).Address()
	if err := c.cash.Move(db, buyer, custody, payment); err != nil {
		return errors.Wrap(err, "cannot collect payment")
	}
	// The buyer becomes a contributing patron before the transfer.
	if err := c.credit(db, asset, buyer, lst.Price, true); err != nil {
		return err
	}

	prev := hld.Owner
	prevDeposit := hld.Deposit
	// Pay out price plus the remaining deposit. On the first sale the
	// previous holder is the custody account and the proceeds belong
	// to the creator. A failed payout must never block the sale, it
	// degrades to an unclaimed balance.
	payee := prev
	if prev.Equals(custody) {
		payee = lst.Creator
	}
	if payout := lst.Price + prevDeposit; payout > 0 {
		if err := c.cash.Move(db, custody, payee, payout); err != nil {
			if err := c.creditUnclaimed(db, payee, payout); err != nil {
				return err
			}
		}
	}
	if !prev.Equals(custody) {
		// Credit the ownership tenure before the asset moves on.
		if tenure := int64(hld.TimeCollected - hld.TimeAcquired); tenure > 0 {
			if err := c.creditTenure(db, asset, prev, tenure); err != nil {
				return err
			}
		}
	}

	deedOwner, err := c.deeds.OwnerOf(db, collection, tokenID)
	if err != nil {
		return err
	}
	if err := c.deeds.Transfer(db, collection, tokenID, deedOwner, buyer); err != nil {
		return errors.Wrap(err, "cannot transfer deed")
	}
	// Keep custody approved so a foreclosure can always reclaim.
	if err := c.deeds.Approve(db, collection, tokenID, custody); err != nil {
		return err
	}

	hld.Owner = buyer
	hld.Deposit = payment - lst.Price
	hld.TimeCollected = now
	hld.TimeAcquired = now
	hld.PatronCount++
	if err := c.holdings.Put(db, asset, &hld); err != nil {
		return err
	}
	lst.Price = newPrice
	if err := c.listings.Put(db, asset, &lst); err != nil {
		return err
	}
	p := &Patron{Address: buyer, Since: now}
	if err := c.patrons.Put(db, patronKey(asset, hld.PatronCount), p); err != nil {
		return err
	}

	return c.Rebalance(db, collection, tokenID)
}

// SetPrice re-assesses the price of a held asset after settling the
// accrued tax. Only a patron may re-price.
func (c *Controller) SetPrice(db steward.KVStore, collection string, tokenID []byte, caller steward.Address, price int64, now steward.UnixTime) error {
	if price <= 0 {
		return errors.Wrapf(ErrInvalidPrice, "price %d", price)
	}
	asset, err := AssetKey(collection, tokenID)
	if err != nil {
		return err
	}
	if err := c.requirePatron(db, asset, caller); err != nil {
		return err
	}
	if err := c.Settle(db, collection, tokenID, caller, now); err != nil {
		return err
	}
	var hld Holding
	if err := c.holdings.One(db, asset, &hld); err != nil {
		return err
	}
	if hld.Owner.Equals(Custody(asset).Address()) {
		return errors.Wrap(ErrNotInitialized, "asset is not held")
	}
	var lst Listing
	if err := c.listings.One(db, asset, &lst); err != nil {
		return err
	}
	lst.Price = price
	return c.listings.Put(db, asset, &lst)
}

// Deposit tops up the tax deposit of a held asset. Only a patron may
// fund the deposit.
func (c *Controller) Deposit(db steward.KVStore, collection string, tokenID []byte, caller steward.Address, amount int64, now steward.UnixTime) error {
	if amount <= 0 {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %d", amount)
	}
	asset, err := AssetKey(collection, tokenID)
	if err != nil {
		return err
	}
	if err := c.requirePatron(db, asset, caller); err != nil {
		return err
	}
	if err := c.Settle(db, collection, tokenID, caller, now); err != nil {
		return err
	}
	var hld Holding
	if err := c.holdings.One(db, asset, &hld); err != nil {
		return err
	}
	if hld.Owner.Equals(Custody(asset).Address()) {
		return errors.Wrap(ErrNotInitialized, "asset is not held")
	}
	if err := c.cash.Move(db, caller, Custody(asset).Address(), amount); err != nil {
		return errors.Wrap(err, "cannot fund deposit")
	}
	if hld.Deposit > math.MaxInt64-amount {
		return errors.Wrap(errors.ErrOverflow, "deposit")
	}
	hld.Deposit += amount
	return c.holdings.Put(db, asset, &hld)
}

// Exit withdraws from the deposit after settling the accrued tax. The
// deposit must cover the requested amount. Everything above the
// amount is paid back to the caller, the amount itself stays behind as
// the remaining deposit. The foreclosure check afterwards uses the
// deposit as it was before the withdrawal.
func (c *Controller) Exit(db steward.KVStore, collection string, tokenID []byte, caller steward.Address, amount int64, now steward.UnixTime) error {
	if amount < 0 {
		return errors.Wrapf(ErrInvalidExit, "negative amount %d", amount)
	}
	asset, err := AssetKey(collection, tokenID)
	if err != nil {
		return err
	}
	if err := c.requirePatron(db, asset, caller); err != nil {
		return err
	}
	if err := c.Settle(db, collection, tokenID, caller, now); err != nil {
		return err
	}
	var hld Holding
	if err := c.holdings.One(db, asset, &hld); err != nil {
		return err
	}
	if hld.Owner.Equals(Custody(asset).Address()) {
		return errors.Wrap(ErrNotInitialized, "asset is not held")
	}
	if hld.Deposit < amount {
		return errors.Wrapf(ErrInvalidExit, "deposit %d below amount %d", hld.Deposit, amount)
	}
	// The foreclosure check below is defined over the deposit as it
	// was before the withdrawal. The consequence that matters: an exit
	// draining the deposit to exactly zero does not foreclose here,
	// only the next settlement does. The zero branch itself cannot
	// fire anymore since the settlement above already forecloses a
	// drained deposit before this point is reached.
	preDeposit := hld.Deposit
	if payout := hld.Deposit - amount; payout > 0 {
		if err := c.cash.Move(db, Custody(asset).Address(), caller, payout); err != nil {
			return errors.Wrapf(ErrTransferFailed, "withdrawal: %v", err)
		}
	}
	hld.Deposit = amount
	if err := c.holdings.Put(db, asset, &hld); err != nil {
		return err
	}
	if preDeposit == 0 {
		var lst Listing
		if err := c.listings.One(db, asset, &lst); err != nil {
			return err
		}
		return c.foreclose(db, collection, tokenID, asset, &lst, &hld)
	}
	return nil
}

// Rebalance reconciles the collective membership tokens with the
// recorded contributions. The first rebalance with at least two
// patrons summons the collective.
func (c *Controller) Rebalance(db steward.KVStore, collection string, tokenID []byte) error {
	asset, err := AssetKey(collection, tokenID)
	if err != nil {
		return err
	}
	var lst Listing
	if err := c.listings.One(db, asset, &lst); err != nil {
		if errors.ErrNotFound.Is(err) {
			return errors.Wrap(ErrNotInitialized, "asset is not listed")
		}
		return err
	}
	var hld Holding
	if err := c.holdings.One(db, asset, &hld); err != nil {
		return err
	}

	var link Link
	switch err := c.links.One(db, asset, &link); {
	case errors.ErrNotFound.Is(err):
		return c.summon(db, asset, &lst, &hld)
	case err != nil:
		return err
	}

	// Walk every patron and align their membership tokens with the
	// recorded contribution. Minted shortfall goes to the patron and
	// the creator alike, keeping the split even.
	for i := int64(1); i <= hld.PatronCount; i++ {
		var p Patron
		if err := c.patrons.One(db, patronKey(asset, i), &p); err != nil {
			return errors.Wrapf(err, "patron %d", i)
		}
		var contrib Contribution
		if err := c.contributions.One(db, contributionKey(asset, p.Address), &contrib); err != nil {
			return errors.Wrapf(err, "contribution of patron %d", i)
		}
		tokens, err := c.collectives.TokensOf(db, link.CollectiveID, p.Address)
		if err != nil {
			return err
		}
		switch {
		case contrib.Total > tokens:
			diff := contrib.Total - tokens
			if err := c.collectives.Mint(db, link.CollectiveID, p.Address, diff); err != nil {
				return err
			}
			if err := c.collectives.Mint(db, link.CollectiveID, lst.Creator, diff); err != nil {
				return err
			}
		case contrib.Total < tokens:
			if err := c.collectives.Burn(db, link.CollectiveID, p.Address, tokens-contrib.Total); err != nil {
				return err
			}
		}
	}
	return nil
}

// summon deploys the collective once at least two patrons contributed.
// It is seeded with two voting members, the creator and the patron
// displaced by the newest one, both allocated the newest patron's
// contribution.
func (c *Controller) summon(db steward.KVStore, asset []byte, lst *Listing, hld *Holding) error {
	if hld.PatronCount < 2 {
		return nil
	}
	var newest Patron
	if err := c.patrons.One(db, patronKey(asset, hld.PatronCount), &newest); err != nil {
		return err
	}
	var previous Patron
	if err := c.patrons.One(db, patronKey(asset, hld.PatronCount-1), &previous); err != nil {
		return err
	}
	var contrib Contribution
	if err := c.contributions.One(db, contributionKey(asset, newest.Address), &contrib); err != nil {
		return err
	}
	members := []*collective.Member{
		{Address: lst.Creator, Tokens: contrib.Total},
	}
	if !previous.Address.Equals(lst.Creator) {
		members = append(members, &collective.Member{
			Address: previous.Address,
			Tokens:  contrib.Total,
		})
	}
	id, err := c.collectives.Summon(db, members)
	if err != nil {
		return errors.Wrap(err, "cannot summon collective")
	}
	return c.links.Put(db, asset, &Link{CollectiveID: id})
}

// PatronageDue returns the tax accrued since the last settlement.
func (c *Controller) PatronageDue(db steward.ReadOnlyKVStore, collection string, tokenID []byte, now steward.UnixTime) (int64, error) {
	asset, err := AssetKey(collection, tokenID)
	if err != nil {
		return 0, err
	}
	var lst Listing
	if err := c.listings.One(db, asset, &lst); err != nil {
		return 0, err
	}
	var hld Holding
	if err := c.holdings.One(db, asset, &hld); err != nil {
		return 0, err
	}
	if lst.Price == 0 || hld.Owner.Equals(Custody(asset).Address()) {
		return 0, nil
	}
	elapsed := int64(now - hld.TimeCollected)
	if elapsed < 0 {
		elapsed = 0
	}
	return patronageDue(lst.Price, lst.TaxRate, elapsed), nil
}

// IsForeclosed reports whether the accrued tax meets or exceeds the
// deposit, together with the deposit remaining after subtracting the
// amount owed.
func (c *Controller) IsForeclosed(db steward.ReadOnlyKVStore, collection string, tokenID []byte, now steward.UnixTime) (bool, int64, error) {
	asset, err := AssetKey(collection, tokenID)
	if err != nil {
		return false, 0, err
	}
	var lst Listing
	if err := c.listings.One(db, asset, &lst); err != nil {
		return false, 0, err
	}
	var hld Holding
	if err := c.holdings.One(db, asset, &hld); err != nil {
		return false, 0, err
	}
	if lst.Price == 0 || hld.Owner.Equals(Custody(asset).Address()) {
		return true, 0, nil
	}
	elapsed := int64(now - hld.TimeCollected)
	if elapsed < 0 {
		elapsed = 0
	}
	due := patronageDue(lst.Price, lst.TaxRate, elapsed)
	if due >= hld.Deposit {
		return true, 0, nil
	}
	return false, hld.Deposit - due, nil
}

// ForeclosureTime projects the wall clock time at which the deposit
// runs out, given the current per second tax burn rate.
func (c *Controller) ForeclosureTime(db steward.ReadOnlyKVStore, collection string, tokenID []byte, now steward.UnixTime) (steward.UnixTime, error) {
	asset, err := AssetKey(collection, tokenID)
	if err != nil {
		return 0, err
	}
	var lst Listing
	if err := c.listings.One(db, asset, &lst); err != nil {
		return 0, err
	}
	var hld Holding
	if err := c.holdings.One(db, asset, &hld); err != nil {
		return 0, err
	}
	if lst.Price == 0 {
		// Zero burn rate, the asset already foreclosed.
		return hld.TimeCollected, nil
	}
	foreclosed, remaining, err := c.IsForeclosed(db, collection, tokenID, now)
	if err != nil {
		return 0, err
	}
	if foreclosed {
		return now + steward.UnixTime(secondsToBurn(remaining, lst.Price, lst.TaxRate)), nil
	}
	return hld.TimeCollected + steward.UnixTime(secondsToBurn(hld.Deposit, lst.Price, lst.TaxRate)), nil
}

func (c *Controller) requirePatron(db steward.ReadOnlyKVStore, asset []byte, caller steward.Address) error {
	var contrib Contribution
	switch err := c.contributions.One(db, contributionKey(asset, caller), &contrib); {
	case errors.ErrNotFound.Is(err):
		return errors.Wrapf(ErrNotPatron, "%s", caller)
	case err != nil:
		return err
	}
	if !contrib.Patron {
		return errors.Wrapf(ErrNotPatron, "%s", caller)
	}
	return nil
}

// credit adds to the cumulative contribution of the given address,
// optionally marking them as a patron.
func (c *Controller) credit(db steward.KVStore, asset []byte, addr steward.Address, amount int64, patron bool) error {
	key := contributionKey(asset, addr)
	var contrib Contribution
	switch err := c.contributions.One(db, key, &contrib); {
	case err == nil, errors.ErrNotFound.Is(err):
	default:
		return err
	}
	if contrib.Total > math.MaxInt64-amount {
		return errors.Wrap(errors.ErrOverflow, "contribution")
	}
	contrib.Total += amount
	if patron {
		contrib.Patron = true
	}
	return c.contributions.Put(db, key, &contrib)
}

func (c *Controller) creditTenure(db steward.KVStore, asset []byte, addr steward.Address, tenure int64) error {
	key := contributionKey(asset, addr)
	var contrib Contribution
	switch err := c.contributions.One(db, key, &contrib); {
	case err == nil, errors.ErrNotFound.Is(err):
	default:
		return err
	}
	if contrib.HeldDuration > math.MaxInt64-tenure {
		return errors.Wrap(errors.ErrOverflow, "held duration")
	}
	contrib.HeldDuration += tenure
	return c.contributions.Put(db, key, &contrib)
}

func (c *Controller) creditUnclaimed(db steward.KVStore, addr steward.Address, amount int64) error {
	var u Unclaimed
	switch err := c.unclaimed.One(db, addr, &u); {
	case err == nil, errors.ErrNotFound.Is(err):
	default:
		return err
	}
	if u.Amount > math.MaxInt64-amount {
		return errors.Wrap(errors.ErrOverflow, "unclaimed balance")
	}
	u.Amount += amount
	return c.unclaimed.Put(db, addr, &u)
}

// patronageDue computes price * elapsed/year * rate/100 without
// intermediate overflow. The result saturates at the int64 maximum.
func patronageDue(price, rate, elapsed int64) int64 {
	if price <= 0 || elapsed <= 0 {
		return 0
	}
	due := new(big.Int).Mul(big.NewInt(price), big.NewInt(elapsed))
	due.Mul(due, big.NewInt(rate))
	due.Quo(due, big.NewInt(100*taxYearSeconds))
	if !due.IsInt64() {
		return math.MaxInt64
	}
	return due.Int64()
}

// mulDiv returns a*b/c without intermediate overflow.
func mulDiv(a, b, c int64) int64 {
	r := new(big.Int).Mul(big.NewInt(a), big.NewInt(b))
	r.Quo(r, big.NewInt(c))
	if !r.IsInt64() {
		return math.MaxInt64
	}
	return r.Int64()
}

// secondsToBurn returns how long the given deposit lasts under the per
// second burn rate of price/year * rate/100.
func secondsToBurn(deposit, price, rate int64) int64 {
	if deposit <= 0 {
		return 0
	}
	secs := new(big.Int).Mul(big.NewInt(deposit), big.NewInt(100*taxYearSeconds))
	secs.Quo(secs, new(big.Int).Mul(big.NewInt(price), big.NewInt(rate)))
	if !secs.IsInt64() {
		return math.MaxInt64
	}
	return secs.Int64()
}
