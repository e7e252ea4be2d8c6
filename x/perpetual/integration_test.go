package perpetual

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/steward-one/steward"
	"github.com/steward-one/steward/app"
	"github.com/steward-one/steward/errors"
	"github.com/steward-one/steward/gconf"
	"github.com/steward-one/steward/store"
	"github.com/steward-one/steward/store/iavl"
	"github.com/steward-one/steward/stewardtest"
	"github.com/steward-one/steward/stewardtest/assert"
	"github.com/steward-one/steward/x/collective"
	"github.com/steward-one/steward/x/deed"
	"github.com/steward-one/steward/x/funds"
	"github.com/steward-one/steward/x/utils"
)

// marshalTx frames a message the way testDecoder expects it: the
// routing path, a newline, the protobuf body.
func marshalTx(t *testing.T, msg steward.Msg) []byte {
	t.Helper()
	body, err := msg.Marshal()
	assert.Nil(t, err)
	return append([]byte(msg.Path()+"\n"), body...)
}

func testDecoder(raw []byte) (steward.Tx, error) {
	cut := bytes.IndexByte(raw, '\n')
	if cut == -1 {
		return nil, errors.Wrap(errors.ErrInput, "malformed transaction")
	}
	var msg steward.Msg
	switch path := string(raw[:cut]); path {
	case PathListMsg:
		msg = &ListMsg{}
	case PathApproveMsg:
		msg = &ApproveMsg{}
	case PathBuyMsg:
		msg = &BuyMsg{}
	case PathSetPriceMsg:
		msg = &SetPriceMsg{}
	case PathDepositMsg:
		msg = &DepositMsg{}
	case PathExitMsg:
		msg = &ExitMsg{}
	case PathRebalanceMsg:
		msg = &RebalanceMsg{}
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown path %q", path)
	}
	if err := msg.Unmarshal(raw[cut+1:]); err != nil {
		return nil, errors.Wrap(err, "unmarshal message")
	}
	return &stewardtest.Tx{Msg: msg}, nil
}

// newStack registers all module routes on a router and wraps it in the
// standard decorator chain. The returned auth double is mutated
// between deliveries to pick the signer.
func newStack(control *Controller, deeds deed.BaseRegistry, cash funds.BaseController) (steward.Handler, *stewardtest.Auth) {
	auth := &stewardtest.Auth{}
	rt := app.NewRouter()
	funds.RegisterRoutes(rt, auth, cash)
	deed.RegisterRoutes(rt, auth, deeds)
	RegisterRoutes(rt, auth, control)

	stack := app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewSavepoint().OnDeliver(),
	).WithHandler(rt)
	return stack, auth
}

func TestEngineDeliversFullFlow(t *testing.T) {
	creator := stewardtest.NewCondition()
	operator := stewardtest.NewCondition()
	bob := stewardtest.NewCondition()

	deeds := deed.NewRegistry()
	cash := funds.NewController()
	control := NewController(deeds, cash, collective.NewController())
	stack, auth := newStack(control, deeds, cash)

	qr := steward.NewQueryRouter()
	RegisterQuery(qr)
	deed.RegisterQuery(qr)
	funds.RegisterQuery(qr)

	engine := app.NewEngine("steward", iavl.MockCommitStore(),
		testDecoder, stack, qr, context.Background()).
		WithInit(app.ChainInitializers(
			funds.Initializer{},
			deed.Initializer{},
			Initializer{},
		))

	opts := steward.Options{}
	set := func(key string, v interface{}) {
		raw, err := json.Marshal(v)
		assert.Nil(t, err)
		opts[key] = raw
	}
	set("funds", []funds.GenesisAccount{
		{Address: bob.Address(), Balance: 200},
	})
	set("deed", []deed.GenesisToken{
		{Collection: testCollection, TokenID: string(testTokenID), Owner: creator.Address()},
	})
	set("conf", map[string]interface{}{
		"perpetual": &Configuration{
			Owner:    creator.Address(),
			Operator: operator.Address(),
			Factory:  stewardtest.NewCondition().Address(),
		},
	})

	assert.Nil(t, engine.InitGenesis(app.Genesis{
		ChainID:  "steward-test-1",
		AppState: opts,
	}))
	engine.BeginBlock(1, t0.Time())

	deliver := func(signer steward.Condition, msg steward.Msg) error {
		auth.Signer = signer
		_, err := engine.Deliver(marshalTx(t, msg))
		return err
	}

	assert.Nil(t, deliver(creator, &ListMsg{
		Collection: testCollection,
		TokenID:    testTokenID,
		Price:      100,
	}))
	assert.Nil(t, deliver(operator, &ApproveMsg{
		Collection: testCollection,
		TokenID:    testTokenID,
		Sale:       true,
	}))
	assert.Nil(t, deliver(bob, &BuyMsg{
		Collection:   testCollection,
		TokenID:      testTokenID,
		NewPrice:     200,
		CurrentPrice: 100,
		Payment:      120,
	}))
	engine.Commit()

	// The committed state is visible in the next block.
	engine.BeginBlock(2, (t0 + 100).Time())

	asset, err := AssetKey(testCollection, testTokenID)
	assert.Nil(t, err)
	models, err := engine.Query("/listings", asset)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(models))
	var lst Listing
	assert.Nil(t, lst.Unmarshal(models[0].Value))
	assert.Equal(t, int64(200), lst.Price)
	assert.Equal(t, true, lst.ForSale)

	owner, err := deeds.OwnerOf(engine.DeliverStore(), testCollection, testTokenID)
	assert.Nil(t, err)
	assert.Equal(t, bob.Address(), owner)

	balance, err := cash.Balance(engine.DeliverStore(), creator.Address())
	assert.Nil(t, err)
	assert.Equal(t, int64(100), balance)
}

func TestFailedPurchaseRollsBack(t *testing.T) {
	creator := stewardtest.NewCondition()
	bob := stewardtest.NewCondition()

	db := store.MemStore()
	deeds := deed.NewRegistry()
	cash := funds.NewController()
	control := NewController(deeds, cash, collective.NewController())
	stack, auth := newStack(control, deeds, cash)

	assert.Nil(t, gconf.Save(db, "perpetual", &Configuration{
		Owner:    creator.Address(),
		Operator: stewardtest.NewCondition().Address(),
		Factory:  stewardtest.NewCondition().Address(),
	}))
	assert.Nil(t, deeds.Issue(db, testCollection, testTokenID, creator.Address()))
	assert.Nil(t, cash.Mint(db, bob.Address(), 150))
	assert.Nil(t, control.List(db, testCollection, testTokenID, 100, creator.Address(), t0))
	assert.Nil(t, control.Approve(db, testCollection, testTokenID, true))

	asset, err := AssetKey(testCollection, testTokenID)
	assert.Nil(t, err)
	// Force the purchase to fail halfway: the payment succeeds, then
	// crediting the contribution overflows.
	assert.Nil(t, NewContributionBucket().Put(db, contributionKey(asset, bob.Address()),
		&Contribution{Total: math.MaxInt64}))

	auth.Signer = bob
	ctx := steward.WithBlockTime(context.Background(), t0.Time())
	_, err = stack.Deliver(ctx, db, &stewardtest.Tx{Msg: &BuyMsg{
		Collection:   testCollection,
		TokenID:      testTokenID,
		NewPrice:     200,
		CurrentPrice: 100,
		Payment:      120,
	}})
	assert.IsErr(t, errors.ErrOverflow, err)

	// Nothing of the half done purchase may remain.
	balance, err := cash.Balance(db, bob.Address())
	assert.Nil(t, err)
	assert.Equal(t, int64(150), balance)
	balance, err = cash.Balance(db, Custody(asset).Address())
	assert.Nil(t, err)
	assert.Equal(t, int64(0), balance)

	var hld Holding
	assert.Nil(t, NewHoldingBucket().One(db, asset, &hld))
	assert.Equal(t, Custody(asset).Address(), hld.Owner)
	assert.Equal(t, int64(0), hld.Deposit)
	assert.Equal(t, int64(0), hld.PatronCount)

	owner, err := deeds.OwnerOf(db, testCollection, testTokenID)
	assert.Nil(t, err)
	assert.Equal(t, Custody(asset).Address(), owner)
}
