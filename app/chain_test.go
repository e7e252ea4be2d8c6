package app

import (
	"context"
	"testing"

	"github.com/steward-one/steward/errors"
	"github.com/steward-one/steward/store"
	"github.com/steward-one/steward/stewardtest"
	"github.com/steward-one/steward/stewardtest/assert"
)

func TestChain(t *testing.T) {
	c1 := &stewardtest.Decorator{}
	c2 := &stewardtest.Decorator{}
	c3 := &stewardtest.Decorator{}
	h := &stewardtest.Handler{}

	stack := ChainDecorators(c1, nil, c2).
		Chain(c3).
		WithHandler(h)

	db := store.MemStore()
	tx := &stewardtest.Tx{Msg: &stewardtest.Msg{RoutePath: "ok"}}

	_, err := stack.Check(context.Background(), db, tx)
	assert.Nil(t, err)
	_, err = stack.Deliver(context.Background(), db, tx)
	assert.Nil(t, err)

	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 2, c2.CallCount())
	assert.Equal(t, 2, c3.CallCount())
	assert.Equal(t, 2, h.CallCount())
}

func TestChainAbort(t *testing.T) {
	c1 := &stewardtest.Decorator{}
	c2 := &stewardtest.Decorator{
		CheckErr:   errors.ErrUnauthorized,
		DeliverErr: errors.ErrUnauthorized,
	}
	h := &stewardtest.Handler{}

	stack := ChainDecorators(c1, c2).WithHandler(h)

	db := store.MemStore()
	tx := &stewardtest.Tx{Msg: &stewardtest.Msg{RoutePath: "ok"}}

	_, err := stack.Check(context.Background(), db, tx)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	_, err = stack.Deliver(context.Background(), db, tx)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	// the failing decorator cut the chain before the handler
	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 2, c2.CallCount())
	assert.Equal(t, 0, h.CallCount())
}

func TestChainCutsOffTypedNil(t *testing.T) {
	var d *stewardtest.Decorator
	h := &stewardtest.Handler{}

	stack := ChainDecorators(d).WithHandler(h)

	db := store.MemStore()
	tx := &stewardtest.Tx{Msg: &stewardtest.Msg{RoutePath: "ok"}}
	_, err := stack.Check(context.Background(), db, tx)
	assert.Nil(t, err)
	assert.Equal(t, 1, h.CheckCallCount())
}
