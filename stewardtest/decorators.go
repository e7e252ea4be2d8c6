package stewardtest

import "github.com/steward-one/steward"

// Decorator is a mock implementation of the steward.Decorator interface.
//
// Set CheckErr or DeliverErr to force error response for corresponding
// method. If error attributes are not set then wrapped handler method is
// called and its result returned.
// Each method call is counted. Regardless of the method call result the
// counter is incremented.
type Decorator struct {
	checkCall int
	// CheckErr if set is returned by the Check method before calling
	// the wrapped handler.
	CheckErr error

	deliverCall int
	// DeliverErr if set is returned by the Deliver method before calling
	// the wrapped handler.
	DeliverErr error
}

var _ steward.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx steward.Context, db steward.KVStore, tx steward.Tx, next steward.Checker) (*steward.CheckResult, error) {
	d.checkCall++

	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx steward.Context, db steward.KVStore, tx steward.Tx, next steward.Deliverer) (*steward.DeliverResult, error) {
	d.deliverCall++

	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int {
	return d.checkCall
}

func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

func (d *Decorator) CallCount() int {
	return d.checkCall + d.deliverCall
}

// Decorate wraps a handler with a single decorator, so the pair can be
// used wherever a handler is expected.
func Decorate(h steward.Handler, d steward.Decorator) steward.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn steward.Handler
	dc steward.Decorator
}

var _ steward.Handler = (*decoratedHandler)(nil)

func (d *decoratedHandler) Check(ctx steward.Context, db steward.KVStore, tx steward.Tx) (*steward.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx steward.Context, db steward.KVStore, tx steward.Tx) (*steward.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
