package app

import (
	"context"
	"testing"

	"github.com/steward-one/steward/errors"
	"github.com/steward-one/steward/store"
	"github.com/steward-one/steward/stewardtest"
	"github.com/steward-one/steward/stewardtest/assert"
)

func TestRouterSuccess(t *testing.T) {
	r := NewRouter()
	h := &stewardtest.Handler{}
	r.Handle("test/good", h)

	tx := &stewardtest.Tx{Msg: &stewardtest.Msg{RoutePath: "test/good"}}
	db := store.MemStore()

	_, err := r.Check(context.Background(), db, tx)
	assert.Nil(t, err)
	_, err = r.Deliver(context.Background(), db, tx)
	assert.Nil(t, err)
	assert.Equal(t, 2, h.CallCount())
}

func TestRouterNoHandler(t *testing.T) {
	r := NewRouter()
	tx := &stewardtest.Tx{Msg: &stewardtest.Msg{RoutePath: "test/missing"}}
	db := store.MemStore()

	_, err := r.Check(context.Background(), db, tx)
	assert.IsErr(t, errors.ErrNotFound, err)
	_, err = r.Deliver(context.Background(), db, tx)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestRouterBadPaths(t *testing.T) {
	r := NewRouter()
	h := &stewardtest.Handler{}

	for _, path := range []string{"", "no spaces", "UPPER/case", "sla/sh/ok/but#none$of%this"} {
		func(path string) {
			assert.Panics(t, func() { r.Handle(path, h) })
		}(path)
	}

	// registering twice panics as well
	r.Handle("test/good", h)
	assert.Panics(t, func() { r.Handle("test/good", h) })
}

func TestRouterUnroutableTx(t *testing.T) {
	r := NewRouter()
	broken := &stewardtest.Tx{Err: errors.ErrMsg}
	db := store.MemStore()

	_, err := r.Check(context.Background(), db, broken)
	assert.IsErr(t, errors.ErrMsg, err)
}
