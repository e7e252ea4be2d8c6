package perpetual

import (
	"math"
	"testing"

	"github.com/steward-one/steward"
	"github.com/steward-one/steward/errors"
	"github.com/steward-one/steward/store"
	"github.com/steward-one/steward/stewardtest"
	"github.com/steward-one/steward/stewardtest/assert"
	"github.com/steward-one/steward/x/collective"
	"github.com/steward-one/steward/x/deed"
	"github.com/steward-one/steward/x/funds"
)

const (
	testCollection = "paintings"
	t0             = steward.UnixTime(1600000000)
)

var testTokenID = []byte("always-on-sale")

type engineFixture struct {
	db          store.CacheableKVStore
	control     *Controller
	deeds       deed.BaseRegistry
	cash        funds.BaseController
	collectives collective.BaseController
	creator     steward.Address
	asset       []byte
	custody     steward.Address
}

// newEngine issues a deed to a fresh creator and wires a controller
// around it.
func newEngine(t *testing.T) *engineFixture {
	t.Helper()
	f := &engineFixture{
		db:          store.MemStore(),
		deeds:       deed.NewRegistry(),
		cash:        funds.NewController(),
		collectives: collective.NewController(),
		creator:     stewardtest.NewCondition().Address(),
	}
	f.control = NewController(f.deeds, f.cash, f.collectives)
	assert.Nil(t, f.deeds.Issue(f.db, testCollection, testTokenID, f.creator))
	asset, err := AssetKey(testCollection, testTokenID)
	assert.Nil(t, err)
	f.asset = asset
	f.custody = Custody(asset).Address()
	return f
}

func (f *engineFixture) listing(t *testing.T) *Listing {
	t.Helper()
	var lst Listing
	assert.Nil(t, NewListingBucket().One(f.db, f.asset, &lst))
	return &lst
}

func (f *engineFixture) holding(t *testing.T) *Holding {
	t.Helper()
	var hld Holding
	assert.Nil(t, NewHoldingBucket().One(f.db, f.asset, &hld))
	return &hld
}

func (f *engineFixture) contribution(t *testing.T, addr steward.Address) *Contribution {
	t.Helper()
	var c Contribution
	assert.Nil(t, NewContributionBucket().One(f.db, contributionKey(f.asset, addr), &c))
	return &c
}

func (f *engineFixture) buyer(t *testing.T, balance int64) steward.Address {
	t.Helper()
	addr := stewardtest.NewCondition().Address()
	assert.Nil(t, f.cash.Mint(f.db, addr, balance))
	return addr
}

func TestListTakesCustody(t *testing.T) {
	f := newEngine(t)

	assert.Nil(t, f.control.List(f.db, testCollection, testTokenID, 100, f.creator, t0))

	owner, err := f.deeds.OwnerOf(f.db, testCollection, testTokenID)
	assert.Nil(t, err)
	assert.Equal(t, f.custody, owner)

	lst := f.listing(t)
	assert.Equal(t, int64(100), lst.Price)
	assert.Equal(t, false, lst.ForSale)
	assert.Equal(t, DefaultTaxRate, lst.TaxRate)
	assert.Equal(t, f.creator, lst.Creator)

	hld := f.holding(t)
	assert.Equal(t, f.custody, hld.Owner)
	assert.Equal(t, int64(0), hld.Deposit)

	err = f.control.List(f.db, testCollection, testTokenID, 100, f.creator, t0)
	assert.IsErr(t, errors.ErrDuplicate, err)
}

func TestListRequiresDeedControl(t *testing.T) {
	f := newEngine(t)
	stranger := stewardtest.NewCondition().Address()
	err := f.control.List(f.db, testCollection, testTokenID, 100, stranger, t0)
	assert.IsErr(t, errors.ErrUnauthorized, err)
}

func TestListRejectsZeroPrice(t *testing.T) {
	f := newEngine(t)
	err := f.control.List(f.db, testCollection, testTokenID, 0, f.creator, t0)
	assert.IsErr(t, ErrInvalidPrice, err)
}

func TestApproveRejectionReturnsDeed(t *testing.T) {
	f := newEngine(t)
	assert.Nil(t, f.control.List(f.db, testCollection, testTokenID, 100, f.creator, t0))

	assert.Nil(t, f.control.Approve(f.db, testCollection, testTokenID, false))

	owner, err := f.deeds.OwnerOf(f.db, testCollection, testTokenID)
	assert.Nil(t, err)
	assert.Equal(t, f.creator, owner)

	var lst Listing
	err = NewListingBucket().One(f.db, f.asset, &lst)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestFirstPurchase(t *testing.T) {
	f := newEngine(t)
	assert.Nil(t, f.control.List(f.db, testCollection, testTokenID, 100, f.creator, t0))
	assert.Nil(t, f.control.Approve(f.db, testCollection, testTokenID, true))

	bob := f.buyer(t, 120)
	// Overpayment above the price becomes the tax deposit.
	assert.Nil(t, f.control.Buy(f.db, testCollection, testTokenID, bob, 200, 100, 120, t0))

	owner, err := f.deeds.OwnerOf(f.db, testCollection, testTokenID)
	assert.Nil(t, err)
	assert.Equal(t, bob, owner)

	lst := f.listing(t)
	assert.Equal(t, int64(200), lst.Price)
	assert.Equal(t, true, lst.ForSale)

	hld := f.holding(t)
	assert.Equal(t, bob, hld.Owner)
	assert.Equal(t, int64(20), hld.Deposit)
	assert.Equal(t, int64(1), hld.PatronCount)
	assert.Equal(t, t0, hld.TimeAcquired)

	// Custody stays approved on the deed so a later foreclosure can
	// reclaim it from the holder.
	var tok deed.Token
	assert.Nil(t, deed.NewTokenBucket().One(f.db, f.asset, &tok))
	assert.Equal(t, f.custody, steward.Address(tok.Approved))

	contrib := f.contribution(t, bob)
	assert.Equal(t, int64(100), contrib.Total)
	assert.Equal(t, true, contrib.Patron)

	// The first sale pays the creator, only the deposit stays behind.
	balance, err := f.cash.Balance(f.db, f.creator)
	assert.Nil(t, err)
	assert.Equal(t, int64(100), balance)
	balance, err = f.cash.Balance(f.db, f.custody)
	assert.Nil(t, err)
	assert.Equal(t, int64(20), balance)
}

func TestFirstSalePaysCreatorExactPrice(t *testing.T) {
	f := newEngine(t)
	assert.Nil(t, f.control.List(f.db, testCollection, testTokenID, 100, f.creator, t0))
	assert.Nil(t, f.control.Approve(f.db, testCollection, testTokenID, true))

	bob := f.buyer(t, 100)
	assert.Nil(t, f.control.Buy(f.db, testCollection, testTokenID, bob, 200, 100, 100, t0))

	balance, err := f.cash.Balance(f.db, f.creator)
	assert.Nil(t, err)
	assert.Equal(t, int64(100), balance)
	balance, err = f.cash.Balance(f.db, f.custody)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), balance)
	assert.Equal(t, int64(0), f.holding(t).Deposit)
}

func TestBuyValidatesAgainstSettledState(t *testing.T) {
	f := newEngine(t)
	assert.Nil(t, f.control.List(f.db, testCollection, testTokenID, 100, f.creator, t0))
	assert.Nil(t, f.control.Approve(f.db, testCollection, testTokenID, true))
	bob := f.buyer(t, 1000)

	// Stale price assertion.
	err := f.control.Buy(f.db, testCollection, testTokenID, bob, 200, 90, 100, t0)
	assert.IsErr(t, ErrInvalidPurchase, err)
	// Zero re-assessment would foreclose instantly.
	err = f.control.Buy(f.db, testCollection, testTokenID, bob, 0, 100, 100, t0)
	assert.IsErr(t, ErrInvalidPurchase, err)
	// Underpayment.
	err = f.control.Buy(f.db, testCollection, testTokenID, bob, 200, 100, 99, t0)
	assert.IsErr(t, ErrInvalidPurchase, err)
}

func TestBuyRequiresApproval(t *testing.T) {
	f := newEngine(t)
	assert.Nil(t, f.control.List(f.db, testCollection, testTokenID, 100, f.creator, t0))
	bob := f.buyer(t, 120)
	err := f.control.Buy(f.db, testCollection, testTokenID, bob, 200, 100, 120, t0)
	assert.IsErr(t, ErrNotInitialized, err)
}

func TestTaxSettlement(t *testing.T) {
	f := newEngine(t)
	assert.Nil(t, f.control.List(f.db, testCollection, testTokenID, 100, f.creator, t0))
	assert.Nil(t, f.control.Approve(f.db, testCollection, testTokenID, true))
	bob := f.buyer(t, 150)
	assert.Nil(t, f.control.Buy(f.db, testCollection, testTokenID, bob, 100, 100, 150, t0))

	// Half a year at 50% yearly tax on a price of 100 burns 25.
	half := t0 + taxYearSeconds/2
	assert.Nil(t, f.control.Settle(f.db, testCollection, testTokenID, bob, half))

	hld := f.holding(t)
	assert.Equal(t, int64(25), hld.Deposit)
	assert.Equal(t, half, hld.TimeCollected)
	assert.Equal(t, int64(25), hld.TotalCollected)

	// Collected tax counts towards the contribution of the payer.
	contrib := f.contribution(t, bob)
	assert.Equal(t, int64(125), contrib.Total)

	// Settling twice at the same instant changes nothing.
	assert.Nil(t, f.control.Settle(f.db, testCollection, testTokenID, bob, half))
	again := f.holding(t)
	assert.Equal(t, hld.Deposit, again.Deposit)
	assert.Equal(t, hld.TotalCollected, again.TotalCollected)
}

func TestRetroactiveForeclosure(t *testing.T) {
	f := newEngine(t)
	assert.Nil(t, f.control.List(f.db, testCollection, testTokenID, 100, f.creator, t0))
	assert.Nil(t, f.control.Approve(f.db, testCollection, testTokenID, true))
	bob := f.buyer(t, 140)
	assert.Nil(t, f.control.Buy(f.db, testCollection, testTokenID, bob, 100, 100, 140, t0))

	// A full year accrues 50 but the deposit covers only 40. The
	// asset foreclosed after 80% of the year.
	year := t0 + taxYearSeconds
	assert.Nil(t, f.control.Settle(f.db, testCollection, testTokenID, bob, year))

	hld := f.holding(t)
	assert.Equal(t, int64(0), hld.Deposit)
	assert.Equal(t, int64(40), hld.TotalCollected)
	assert.Equal(t, t0+taxYearSeconds*8/10, hld.TimeCollected)
	assert.Equal(t, f.custody, hld.Owner)

	lst := f.listing(t)
	assert.Equal(t, int64(0), lst.Price)
	assert.Equal(t, false, lst.ForSale)

	owner, err := f.deeds.OwnerOf(f.db, testCollection, testTokenID)
	assert.Nil(t, err)
	assert.Equal(t, f.custody, owner)

	// A foreclosed asset settles as a no-op.
	assert.Nil(t, f.control.Settle(f.db, testCollection, testTokenID, bob, year+1))
}

func TestCreatorCanRelistForeclosed(t *testing.T) {
	f := newEngine(t)
	assert.Nil(t, f.control.List(f.db, testCollection, testTokenID, 100, f.creator, t0))
	assert.Nil(t, f.control.Approve(f.db, testCollection, testTokenID, true))
	bob := f.buyer(t, 100)
	// Paying the exact price leaves no deposit, the next settlement
	// forecloses immediately.
	assert.Nil(t, f.control.Buy(f.db, testCollection, testTokenID, bob, 100, 100, 100, t0))
	assert.Nil(t, f.control.Settle(f.db, testCollection, testTokenID, bob, t0+1))
	assert.Equal(t, int64(0), f.listing(t).Price)

	// Strangers cannot hijack a foreclosed asset.
	stranger := stewardtest.NewCondition().Address()
	err := f.control.List(f.db, testCollection, testTokenID, 80, stranger, t0+2)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	assert.Nil(t, f.control.List(f.db, testCollection, testTokenID, 80, f.creator, t0+2))
	lst := f.listing(t)
	assert.Equal(t, int64(80), lst.Price)
	assert.Equal(t, false, lst.ForSale)
	assert.Equal(t, f.custody, f.holding(t).Owner)
}

func TestSecondPurchasePaysPreviousHolder(t *testing.T) {
	f := newEngine(t)
	assert.Nil(t, f.control.List(f.db, testCollection, testTokenID, 100, f.creator, t0))
	assert.Nil(t, f.control.Approve(f.db, testCollection, testTokenID, true))
	bob := f.buyer(t, 120)
	assert.Nil(t, f.control.Buy(f.db, testCollection, testTokenID, bob, 200, 100, 120, t0))

	carl := f.buyer(t, 250)
	day := t0 + 86400
	assert.Nil(t, f.control.Buy(f.db, testCollection, testTokenID, carl, 300, 200, 250, day))

	// Bob is made whole: the new price plus his remaining deposit.
	balance, err := f.cash.Balance(f.db, bob)
	assert.Nil(t, err)
	assert.Equal(t, int64(220), balance)

	contrib := f.contribution(t, bob)
	assert.Equal(t, int64(86400), contrib.HeldDuration)

	hld := f.holding(t)
	assert.Equal(t, carl, hld.Owner)
	assert.Equal(t, int64(50), hld.Deposit)
	assert.Equal(t, int64(2), hld.PatronCount)

	owner, err := f.deeds.OwnerOf(f.db, testCollection, testTokenID)
	assert.Nil(t, err)
	assert.Equal(t, carl, owner)
}

func TestCollectiveSummonedOnSecondPatron(t *testing.T) {
	f := newEngine(t)
	assert.Nil(t, f.control.List(f.db, testCollection, testTokenID, 100, f.creator, t0))
	assert.Nil(t, f.control.Approve(f.db, testCollection, testTokenID, true))

	bob := f.buyer(t, 120)
	assert.Nil(t, f.control.Buy(f.db, testCollection, testTokenID, bob, 200, 100, 120, t0))

	// A single patron is not enough to summon.
	var link Link
	err := NewLinkBucket().One(f.db, f.asset, &link)
	assert.IsErr(t, errors.ErrNotFound, err)

	carl := f.buyer(t, 250)
	assert.Nil(t, f.control.Buy(f.db, testCollection, testTokenID, carl, 300, 200, 250, t0))

	// The second purchase summons the collective, seeded with the
	// creator and the displaced patron, both holding the newest
	// contribution.
	assert.Nil(t, NewLinkBucket().One(f.db, f.asset, &link))

	tokens, err := f.collectives.TokensOf(f.db, link.CollectiveID, f.creator)
	assert.Nil(t, err)
	assert.Equal(t, int64(200), tokens)
	tokens, err = f.collectives.TokensOf(f.db, link.CollectiveID, bob)
	assert.Nil(t, err)
	assert.Equal(t, int64(200), tokens)
}

func TestRebalanceReconcilesContributions(t *testing.T) {
	f := newEngine(t)
	assert.Nil(t, f.control.List(f.db, testCollection, testTokenID, 100, f.creator, t0))
	assert.Nil(t, f.control.Approve(f.db, testCollection, testTokenID, true))
	bob := f.buyer(t, 120)
	assert.Nil(t, f.control.Buy(f.db, testCollection, testTokenID, bob, 200, 100, 120, t0))
	carl := f.buyer(t, 250)
	assert.Nil(t, f.control.Buy(f.db, testCollection, testTokenID, carl, 300, 200, 250, t0))

	assert.Nil(t, f.control.Rebalance(f.db, testCollection, testTokenID))

	var link Link
	assert.Nil(t, NewLinkBucket().One(f.db, f.asset, &link))

	// Bob contributed 100, his seeded 200 burns down. Carl
	// contributed 200 which is minted to him and to the creator.
	tokens, err := f.collectives.TokensOf(f.db, link.CollectiveID, bob)
	assert.Nil(t, err)
	assert.Equal(t, int64(100), tokens)
	tokens, err = f.collectives.TokensOf(f.db, link.CollectiveID, carl)
	assert.Nil(t, err)
	assert.Equal(t, int64(200), tokens)
	tokens, err = f.collectives.TokensOf(f.db, link.CollectiveID, f.creator)
	assert.Nil(t, err)
	assert.Equal(t, int64(400), tokens)

	// Rebalancing a settled ledger again changes nothing.
	assert.Nil(t, f.control.Rebalance(f.db, testCollection, testTokenID))
	tokens, err = f.collectives.TokensOf(f.db, link.CollectiveID, f.creator)
	assert.Nil(t, err)
	assert.Equal(t, int64(400), tokens)
}

func TestSetPrice(t *testing.T) {
	f := newEngine(t)
	assert.Nil(t, f.control.List(f.db, testCollection, testTokenID, 100, f.creator, t0))
	assert.Nil(t, f.control.Approve(f.db, testCollection, testTokenID, true))
	bob := f.buyer(t, 150)
	assert.Nil(t, f.control.Buy(f.db, testCollection, testTokenID, bob, 100, 100, 150, t0))

	stranger := stewardtest.NewCondition().Address()
	err := f.control.SetPrice(f.db, testCollection, testTokenID, stranger, 500, t0)
	assert.IsErr(t, ErrNotPatron, err)

	err = f.control.SetPrice(f.db, testCollection, testTokenID, bob, 0, t0)
	assert.IsErr(t, ErrInvalidPrice, err)

	assert.Nil(t, f.control.SetPrice(f.db, testCollection, testTokenID, bob, 500, t0))
	assert.Equal(t, int64(500), f.listing(t).Price)
}

func TestDepositTopUp(t *testing.T) {
	f := newEngine(t)
	assert.Nil(t, f.control.List(f.db, testCollection, testTokenID, 100, f.creator, t0))
	assert.Nil(t, f.control.Approve(f.db, testCollection, testTokenID, true))
	bob := f.buyer(t, 200)
	assert.Nil(t, f.control.Buy(f.db, testCollection, testTokenID, bob, 100, 100, 150, t0))

	assert.Nil(t, f.control.Deposit(f.db, testCollection, testTokenID, bob, 50, t0))
	assert.Equal(t, int64(100), f.holding(t).Deposit)

	err := f.control.Deposit(f.db, testCollection, testTokenID, bob, 0, t0)
	assert.IsErr(t, errors.ErrAmount, err)
}

func TestExitWithdrawsAboveAmount(t *testing.T) {
	f := newEngine(t)
	assert.Nil(t, f.control.List(f.db, testCollection, testTokenID, 100, f.creator, t0))
	assert.Nil(t, f.control.Approve(f.db, testCollection, testTokenID, true))
	bob := f.buyer(t, 150)
	assert.Nil(t, f.control.Buy(f.db, testCollection, testTokenID, bob, 100, 100, 150, t0))

	// Everything above the requested amount flows back, the amount
	// itself stays behind as deposit.
	assert.Nil(t, f.control.Exit(f.db, testCollection, testTokenID, bob, 10, t0))
	assert.Equal(t, int64(10), f.holding(t).Deposit)

	balance, err := f.cash.Balance(f.db, bob)
	assert.Nil(t, err)
	assert.Equal(t, int64(40), balance)

	// The deposit cannot cover more than it holds.
	err = f.control.Exit(f.db, testCollection, testTokenID, bob, 11, t0)
	assert.IsErr(t, ErrInvalidExit, err)
}

func TestExitDrainDefersForeclosure(t *testing.T) {
	f := newEngine(t)
	assert.Nil(t, f.control.List(f.db, testCollection, testTokenID, 100, f.creator, t0))
	assert.Nil(t, f.control.Approve(f.db, testCollection, testTokenID, true))
	bob := f.buyer(t, 150)
	assert.Nil(t, f.control.Buy(f.db, testCollection, testTokenID, bob, 100, 100, 150, t0))

	// Draining the deposit to zero does not foreclose yet. The check
	// runs against the pre-withdrawal deposit.
	assert.Nil(t, f.control.Exit(f.db, testCollection, testTokenID, bob, 0, t0))
	assert.Equal(t, int64(0), f.holding(t).Deposit)
	assert.Equal(t, bob, f.holding(t).Owner)
	assert.Equal(t, int64(100), f.listing(t).Price)

	// The next settlement does.
	assert.Nil(t, f.control.Settle(f.db, testCollection, testTokenID, bob, t0+1))
	assert.Equal(t, int64(0), f.listing(t).Price)
	assert.Equal(t, f.custody, f.holding(t).Owner)
}

func TestForeclosureTime(t *testing.T) {
	f := newEngine(t)
	assert.Nil(t, f.control.List(f.db, testCollection, testTokenID, 100, f.creator, t0))
	assert.Nil(t, f.control.Approve(f.db, testCollection, testTokenID, true))
	bob := f.buyer(t, 125)
	assert.Nil(t, f.control.Buy(f.db, testCollection, testTokenID, bob, 100, 100, 125, t0))

	// A deposit of 25 at a burn of 50 per year lasts half a year.
	at, err := f.control.ForeclosureTime(f.db, testCollection, testTokenID, t0)
	assert.Nil(t, err)
	assert.Equal(t, t0+taxYearSeconds/2, at)

	// Once in deficit the projection collapses to now.
	late := t0 + taxYearSeconds
	at, err = f.control.ForeclosureTime(f.db, testCollection, testTokenID, late)
	assert.Nil(t, err)
	assert.Equal(t, late, at)

	// After foreclosing, the interpolated past instant is reported.
	assert.Nil(t, f.control.Settle(f.db, testCollection, testTokenID, bob, late))
	at, err = f.control.ForeclosureTime(f.db, testCollection, testTokenID, late)
	assert.Nil(t, err)
	assert.Equal(t, t0+taxYearSeconds/2, at)
}

func TestIsForeclosed(t *testing.T) {
	f := newEngine(t)
	assert.Nil(t, f.control.List(f.db, testCollection, testTokenID, 100, f.creator, t0))
	assert.Nil(t, f.control.Approve(f.db, testCollection, testTokenID, true))
	bob := f.buyer(t, 150)
	assert.Nil(t, f.control.Buy(f.db, testCollection, testTokenID, bob, 100, 100, 150, t0))

	foreclosed, remaining, err := f.control.IsForeclosed(f.db, testCollection, testTokenID, t0)
	assert.Nil(t, err)
	assert.Equal(t, false, foreclosed)
	assert.Equal(t, int64(50), remaining)

	quarter := t0 + taxYearSeconds/4
	foreclosed, remaining, err = f.control.IsForeclosed(f.db, testCollection, testTokenID, quarter)
	assert.Nil(t, err)
	assert.Equal(t, false, foreclosed)
	assert.Equal(t, int64(38), remaining)

	deep := t0 + 2*taxYearSeconds
	foreclosed, remaining, err = f.control.IsForeclosed(f.db, testCollection, testTokenID, deep)
	assert.Nil(t, err)
	assert.Equal(t, true, foreclosed)
	assert.Equal(t, int64(0), remaining)
}

func TestPayoutFailureDegradesToUnclaimed(t *testing.T) {
	f := newEngine(t)
	assert.Nil(t, f.control.List(f.db, testCollection, testTokenID, 100, f.creator, t0))
	assert.Nil(t, f.control.Approve(f.db, testCollection, testTokenID, true))

	// A wallet at the integer maximum cannot receive the payout. The
	// sale must still settle, with the owed amount kept as unclaimed.
	bob := f.buyer(t, math.MaxInt64)
	assert.Nil(t, f.control.Buy(f.db, testCollection, testTokenID, bob, 200, 100, 120, t0))

	carl := f.buyer(t, 250)
	assert.Nil(t, f.control.Buy(f.db, testCollection, testTokenID, carl, 300, 200, 250, t0))

	assert.Equal(t, carl, f.holding(t).Owner)

	var u Unclaimed
	assert.Nil(t, NewUnclaimedBucket().One(f.db, bob, &u))
	assert.Equal(t, int64(220), u.Amount)

	balance, err := f.cash.Balance(f.db, f.custody)
	assert.Nil(t, err)
	assert.Equal(t, int64(270), balance)
}

func TestPatronageDueGrowsMonotonically(t *testing.T) {
	f := newEngine(t)
	assert.Nil(t, f.control.List(f.db, testCollection, testTokenID, 100, f.creator, t0))
	assert.Nil(t, f.control.Approve(f.db, testCollection, testTokenID, true))
	bob := f.buyer(t, 1000)
	assert.Nil(t, f.control.Buy(f.db, testCollection, testTokenID, bob, 100, 100, 1000, t0))

	var last int64 = -1
	for _, offset := range []steward.UnixTime{0, 1, 86400, taxYearSeconds / 4, taxYearSeconds, 3 * taxYearSeconds} {
		due, err := f.control.PatronageDue(f.db, testCollection, testTokenID, t0+offset)
		assert.Nil(t, err)
		if due < last {
			t.Fatalf("due %d shrunk below %d at offset %d", due, last, offset)
		}
		last = due
	}
	// A full year owes half the price at the default rate.
	due, err := f.control.PatronageDue(f.db, testCollection, testTokenID, t0+taxYearSeconds)
	assert.Nil(t, err)
	assert.Equal(t, int64(50), due)
}
