package perpetual

import (
	"context"
	"testing"

	"github.com/steward-one/steward"
	"github.com/steward-one/steward/app"
	"github.com/steward-one/steward/errors"
	"github.com/steward-one/steward/gconf"
	"github.com/steward-one/steward/store"
	"github.com/steward-one/steward/stewardtest"
	"github.com/steward-one/steward/stewardtest/assert"
	"github.com/steward-one/steward/x/collective"
	"github.com/steward-one/steward/x/deed"
	"github.com/steward-one/steward/x/funds"
)

type handlerFixture struct {
	db      store.CacheableKVStore
	rt      *app.Router
	auth    *stewardtest.CtxAuth
	control *Controller
	deeds   deed.BaseRegistry
	cash    funds.BaseController

	owner    steward.Condition
	operator steward.Condition
	creator  steward.Condition
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	f := &handlerFixture{
		db:       store.MemStore(),
		rt:       app.NewRouter(),
		auth:     &stewardtest.CtxAuth{Key: "auth"},
		deeds:    deed.NewRegistry(),
		cash:     funds.NewController(),
		owner:    stewardtest.NewCondition(),
		operator: stewardtest.NewCondition(),
		creator:  stewardtest.NewCondition(),
	}
	f.control = NewController(f.deeds, f.cash, collective.NewController())
	RegisterRoutes(f.rt, f.auth, f.control)

	assert.Nil(t, gconf.Save(f.db, "perpetual", &Configuration{
		Owner:    f.owner.Address(),
		Operator: f.operator.Address(),
		Factory:  stewardtest.NewCondition().Address(),
	}))
	assert.Nil(t, f.deeds.Issue(f.db, testCollection, testTokenID, f.creator.Address()))
	return f
}

// deliverAs routes the message signed by the given condition at the
// given block time.
func (f *handlerFixture) deliverAs(signer steward.Condition, now steward.UnixTime, msg steward.Msg) error {
	ctx := steward.WithBlockTime(context.Background(), now.Time())
	ctx = f.auth.SetConditions(ctx, signer)
	_, err := f.rt.Deliver(ctx, f.db, &stewardtest.Tx{Msg: msg})
	return err
}

func TestHandlersFullFlow(t *testing.T) {
	f := newHandlerFixture(t)
	bob := stewardtest.NewCondition()
	carl := stewardtest.NewCondition()
	assert.Nil(t, f.cash.Mint(f.db, bob.Address(), 200))
	assert.Nil(t, f.cash.Mint(f.db, carl.Address(), 300))

	assert.Nil(t, f.deliverAs(f.creator, t0, &ListMsg{
		Collection: testCollection,
		TokenID:    testTokenID,
		Price:      100,
	}))

	// Purchasing needs the operator's approval first.
	err := f.deliverAs(bob, t0, &BuyMsg{
		Collection:   testCollection,
		TokenID:      testTokenID,
		NewPrice:     200,
		CurrentPrice: 100,
		Payment:      120,
	})
	assert.IsErr(t, ErrNotInitialized, err)

	// Only the operator can approve.
	err = f.deliverAs(bob, t0, &ApproveMsg{
		Collection: testCollection,
		TokenID:    testTokenID,
		Sale:       true,
	})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	assert.Nil(t, f.deliverAs(f.operator, t0, &ApproveMsg{
		Collection: testCollection,
		TokenID:    testTokenID,
		Sale:       true,
	}))

	assert.Nil(t, f.deliverAs(bob, t0, &BuyMsg{
		Collection:   testCollection,
		TokenID:      testTokenID,
		NewPrice:     200,
		CurrentPrice: 100,
		Payment:      120,
	}))
	deedOwner, err := f.deeds.OwnerOf(f.db, testCollection, testTokenID)
	assert.Nil(t, err)
	assert.Equal(t, bob.Address(), deedOwner)

	// The first sale proceeds go to the creator.
	balance, err := f.cash.Balance(f.db, f.creator.Address())
	assert.Nil(t, err)
	assert.Equal(t, int64(100), balance)

	assert.Nil(t, f.deliverAs(bob, t0, &SetPriceMsg{
		Collection: testCollection,
		TokenID:    testTokenID,
		Price:      250,
	}))

	assert.Nil(t, f.deliverAs(bob, t0, &DepositMsg{
		Collection: testCollection,
		TokenID:    testTokenID,
		Amount:     30,
	}))

	// Keep 20 as deposit, withdraw the other 30.
	assert.Nil(t, f.deliverAs(bob, t0, &ExitMsg{
		Collection: testCollection,
		TokenID:    testTokenID,
		Amount:     20,
	}))
	balance, err = f.cash.Balance(f.db, bob.Address())
	assert.Nil(t, err)
	assert.Equal(t, int64(80), balance)

	assert.Nil(t, f.deliverAs(carl, t0, &BuyMsg{
		Collection:   testCollection,
		TokenID:      testTokenID,
		NewPrice:     400,
		CurrentPrice: 250,
		Payment:      300,
	}))
	// Bob is paid out price plus deposit.
	balance, err = f.cash.Balance(f.db, bob.Address())
	assert.Nil(t, err)
	assert.Equal(t, int64(350), balance)

	// Anyone may trigger a rebalance.
	assert.Nil(t, f.deliverAs(carl, t0, &RebalanceMsg{
		Collection: testCollection,
		TokenID:    testTokenID,
	}))
}

func TestHandlersRejectStrangers(t *testing.T) {
	f := newHandlerFixture(t)
	stranger := stewardtest.NewCondition()

	// Listing by anyone but the deed owner fails.
	err := f.deliverAs(stranger, t0, &ListMsg{
		Collection: testCollection,
		TokenID:    testTokenID,
		Price:      100,
	})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	assert.Nil(t, f.deliverAs(f.creator, t0, &ListMsg{
		Collection: testCollection,
		TokenID:    testTokenID,
		Price:      100,
	}))
	assert.Nil(t, f.deliverAs(f.operator, t0, &ApproveMsg{
		Collection: testCollection,
		TokenID:    testTokenID,
		Sale:       true,
	}))

	// Strangers are not patrons.
	err = f.deliverAs(stranger, t0, &SetPriceMsg{
		Collection: testCollection,
		TokenID:    testTokenID,
		Price:      500,
	})
	assert.IsErr(t, ErrNotPatron, err)
	err = f.deliverAs(stranger, t0, &ExitMsg{
		Collection: testCollection,
		TokenID:    testTokenID,
		Amount:     1,
	})
	assert.IsErr(t, ErrNotPatron, err)
}

func TestHandlersRequireConfiguration(t *testing.T) {
	f := newHandlerFixture(t)
	// Wipe out what the fixture configured.
	f.db = store.MemStore()
	assert.Nil(t, f.deeds.Issue(f.db, testCollection, testTokenID, f.creator.Address()))

	err := f.deliverAs(f.creator, t0, &ListMsg{
		Collection: testCollection,
		TokenID:    testTokenID,
		Price:      100,
	})
	assert.IsErr(t, ErrNotInitialized, err)

	err = f.deliverAs(f.creator, t0, &RebalanceMsg{
		Collection: testCollection,
		TokenID:    testTokenID,
	})
	assert.IsErr(t, ErrNotInitialized, err)
}

func TestUpdateConfiguration(t *testing.T) {
	f := newHandlerFixture(t)
	newOperator := stewardtest.NewCondition().Address()

	// Only the configuration owner may patch.
	err := f.deliverAs(f.operator, t0, &UpdateConfigurationMsg{
		Patch: &Configuration{Operator: newOperator},
	})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	assert.Nil(t, f.deliverAs(f.owner, t0, &UpdateConfigurationMsg{
		Patch: &Configuration{Operator: newOperator},
	}))

	var conf Configuration
	assert.Nil(t, gconf.Load(f.db, "perpetual", &conf))
	assert.Equal(t, newOperator, conf.Operator)
	// Zero fields in the patch leave the previous value in place.
	assert.Equal(t, f.owner.Address(), conf.Owner)
}
