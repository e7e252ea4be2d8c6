package store

import (
	"github.com/steward-one/steward"
)

// Reexport the basic store types from the root package, so the
// implementations here satisfy the interfaces everything else consumes.
type (
	ReadOnlyKVStore  = steward.ReadOnlyKVStore
	KVStore          = steward.KVStore
	Iterator         = steward.Iterator
	CacheableKVStore = steward.CacheableKVStore
	KVCacheWrap      = steward.KVCacheWrap
	CommitKVStore    = steward.CommitKVStore
	CommitID         = steward.CommitID
	Model            = steward.Model
)

// SetDeleter is a minimal interface for writing,
// Unifying KVStore and Batch
type SetDeleter interface {
	Set(key, value []byte)
	Delete(key []byte)
}

// Batch can write multiple ops atomically to an underlying store
type Batch interface {
	SetDeleter
	Write()
}
