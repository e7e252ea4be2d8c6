package app

import (
	"fmt"
	"regexp"

	"github.com/steward-one/steward"
	"github.com/steward-one/steward/errors"
)

var isPath = regexp.MustCompile(`^[a-z]+(/[a-z_]+)*$`).MatchString

// Router allows us to register many handlers with different
// paths and then direct each message to the registered handler.
type Router struct {
	handlers map[string]steward.Handler
}

var _ steward.Registry = (*Router)(nil)
var _ steward.Handler = (*Router)(nil)

// NewRouter initializes a router with no routes
func NewRouter() *Router {
	return &Router{
		handlers: make(map[string]steward.Handler),
	}
}

// Handle adds a new Handler for the given path. This function panics if
// a handler for given path is already registered or if the path is
// invalid.
func (r *Router) Handle(path string, h steward.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.handlers[path]; ok {
		panic(fmt.Sprintf("re-registering route: %q", path))
	}
	r.handlers[path] = h
}

// Handler returns the registered Handler for this path. If no path is
// found, it returns a noSuchPathHandler that will fail all operations
// with a not found error.
func (r *Router) Handler(path string) steward.Handler {
	h, ok := r.handlers[path]
	if !ok {
		return noSuchPathHandler{path}
	}
	return h
}

// Check dispatches to the proper handler based on the message path
func (r *Router) Check(ctx steward.Context, store steward.KVStore, tx steward.Tx) (*steward.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.Handler(msg.Path()).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on the message path
func (r *Router) Deliver(ctx steward.Context, store steward.KVStore, tx steward.Tx) (*steward.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.Handler(msg.Path()).Deliver(ctx, store, tx)
}

type noSuchPathHandler struct {
	path string
}

var _ steward.Handler = noSuchPathHandler{}

func (h noSuchPathHandler) Check(steward.Context, steward.KVStore, steward.Tx) (*steward.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", h.path)
}

func (h noSuchPathHandler) Deliver(steward.Context, steward.KVStore, steward.Tx) (*steward.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", h.path)
}
