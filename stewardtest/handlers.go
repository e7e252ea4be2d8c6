package stewardtest

import "github.com/steward-one/steward"

// Handler is a mock implementation of the steward.Handler interface.
type Handler struct {
	checkCall   int
	CheckResult steward.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult steward.DeliverResult
	DeliverErr    error
}

var _ steward.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx steward.Context, db steward.KVStore, tx steward.Tx) (*steward.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx steward.Context, db steward.KVStore, tx steward.Tx) (*steward.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
