package app

import (
	"strings"
	"time"

	"github.com/tendermint/tendermint/libs/log"

	"github.com/steward-one/steward"
	"github.com/steward-one/steward/errors"
)

// Engine wires a durable store, a tx decoder and a handler stack into
// one unit of execution. Operations are submitted one at a time through
// Check and Deliver, each delivered operation runs on the deliver cache
// and becomes durable on the next Commit. This gives every operation
// all-or-nothing semantics without the caller managing any locks.
type Engine struct {
	logger log.Logger

	// name reported for queries and info
	name string

	// database state (committed, check, deliver....)
	store *CommitStore

	decoder steward.TxDecoder
	handler steward.Handler

	// code to initialize from a genesis file
	initializer steward.Initializer

	// how to handle queries
	queryRouter steward.QueryRouter

	// chainID is loaded from db in initialization,
	// saved once in InitGenesis
	chainID string

	// baseContext contains context info that is valid for
	// the lifetime of this engine (eg. chainID)
	baseContext steward.Context

	// blockContext contains context info that is valid for the
	// current batch (eg. height, time), reset on BeginBlock
	blockContext steward.Context
}

// NewEngine initializes the engine into a ready state.
//
// panics if unable to properly load the state from the given store
func NewEngine(name string, store steward.CommitKVStore,
	decoder steward.TxDecoder, handler steward.Handler,
	queryRouter steward.QueryRouter, baseContext steward.Context) *Engine {

	e := &Engine{
		name: name,
		// note: panics if trouble initializing from store
		store:       NewCommitStore(store),
		decoder:     decoder,
		handler:     handler,
		queryRouter: queryRouter,
		baseContext: baseContext,
	}
	e = e.WithLogger(log.NewNopLogger())

	// load the chainID from the db
	e.chainID = loadChainID(e.DeliverStore())
	if e.chainID != "" {
		e.baseContext = steward.WithChainID(e.baseContext, e.chainID)
	}

	// get the most recent height
	info := e.store.CommitInfo()
	e.blockContext = steward.WithHeight(e.baseContext, info.Version)
	return e
}

// GetChainID returns the current chainID
func (e *Engine) GetChainID() string {
	return e.chainID
}

// WithInit is used to set the init function we call on InitGenesis
func (e *Engine) WithInit(init steward.Initializer) *Engine {
	e.initializer = init
	return e
}

// WithLogger sets the logger on the engine and returns it,
// for chaining in variable construction
func (e *Engine) WithLogger(logger log.Logger) *Engine {
	e.baseContext = steward.WithLogger(e.baseContext, logger)
	e.logger = logger
	return e
}

// Logger returns the application logger
func (e *Engine) Logger() log.Logger {
	return e.logger
}

// BlockContext returns the block context for public use
func (e *Engine) BlockContext() steward.Context {
	return e.blockContext
}

// DeliverStore returns the store used during the delivery phase
func (e *Engine) DeliverStore() steward.CacheableKVStore {
	return e.store.DeliverStore()
}

// CheckStore returns the store used during the checking phase
func (e *Engine) CheckStore() steward.CacheableKVStore {
	return e.store.CheckStore()
}

// InitGenesis seeds a fresh store from the genesis document. It errors
// if the engine was already initialized with a chain id.
func (e *Engine) InitGenesis(gen Genesis) error {
	if e.chainID != "" {
		return errors.Wrapf(errors.ErrState, "state already loaded for chain %q", e.chainID)
	}
	if len(gen.AppState) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app_state not set in genesis")
	}

	if err := saveChainID(e.DeliverStore(), gen.ChainID); err != nil {
		return err
	}
	e.chainID = gen.ChainID
	e.baseContext = steward.WithChainID(e.baseContext, e.chainID)

	if e.initializer != nil {
		if err := e.initializer.FromGenesis(gen.AppState, e.DeliverStore()); err != nil {
			return err
		}
	}
	e.store.Commit()
	return nil
}

// BeginBlock opens a new batch of operations at the given height and
// wall clock time. All following Check/Deliver calls use this context.
func (e *Engine) BeginBlock(height int64, now time.Time) {
	ctx := steward.WithHeight(e.baseContext, height)
	ctx = steward.WithBlockTime(ctx, now)
	e.blockContext = ctx
}

// Check runs the operation against the check cache, to validate it
// without any durable effect
func (e *Engine) Check(txBytes []byte) (*steward.CheckResult, error) {
	tx, err := e.loadTx(txBytes)
	if err != nil {
		return nil, err
	}

	ctx := steward.WithLogInfo(e.blockContext,
		"call", "check",
		"path", steward.GetPath(tx))
	return e.handler.Check(ctx, e.CheckStore(), tx)
}

// Deliver executes the operation against the deliver cache. The result
// becomes durable on the next Commit.
func (e *Engine) Deliver(txBytes []byte) (*steward.DeliverResult, error) {
	tx, err := e.loadTx(txBytes)
	if err != nil {
		return nil, err
	}

	ctx := steward.WithLogInfo(e.blockContext,
		"call", "deliver",
		"path", steward.GetPath(tx))
	return e.handler.Deliver(ctx, e.DeliverStore(), tx)
}

// Commit writes all delivered operations to disk and resets the caches
func (e *Engine) Commit() steward.CommitID {
	return e.store.Commit()
}

// Query gives read access to committed and pending state. The path
// selects a registered bucket or index, with an optional "?prefix"
// suffix to scan instead of an exact lookup.
func (e *Engine) Query(path string, data []byte) ([]steward.Model, error) {
	path, mod := splitPath(path)
	qh := e.queryRouter.Handler(path)
	if qh == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "no query handler for %q", path)
	}
	return qh.Query(e.DeliverStore(), mod, data)
}

// loadTx calls the decoder, and captures any panics
func (e *Engine) loadTx(txBytes []byte) (tx steward.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = e.decoder(txBytes)
	return
}

// splitPath splits out the real path along with the query
// modifier (everything after the ?)
func splitPath(path string) (string, string) {
	var mod string
	chunks := strings.SplitN(path, "?", 2)
	if len(chunks) == 2 {
		path, mod = chunks[0], chunks[1]
	}
	return path, mod
}
