package deed

import (
	"github.com/steward-one/steward"
	"github.com/steward-one/steward/errors"
)

// Registry is the functionality needed by other extensions to inspect
// and move unique assets.
type Registry interface {
	// OwnerOf returns the address currently holding the token.
	OwnerOf(db steward.ReadOnlyKVStore, collection string, tokenID []byte) (steward.Address, error)

	// Transfer moves the token from src to dest. Src must be the
	// current owner or the approved address.
	Transfer(db steward.KVStore, collection string, tokenID []byte, src, dest steward.Address) error

	// Approve authorizes one more address to transfer the token.
	Approve(db steward.KVStore, collection string, tokenID []byte, to steward.Address) error

	// Issue registers a brand new token.
	Issue(db steward.KVStore, collection string, tokenID []byte, owner steward.Address) error
}

// BaseRegistry implements Registry on top of a TokenBucket.
type BaseRegistry struct {
	bucket *TokenBucket
}

var _ Registry = BaseRegistry{}

// NewRegistry returns a base registry implementation.
func NewRegistry() BaseRegistry {
	return BaseRegistry{bucket: NewTokenBucket()}
}

// OwnerOf returns the address currently holding the token.
func (r BaseRegistry) OwnerOf(db steward.ReadOnlyKVStore, collection string, tokenID []byte) (steward.Address, error) {
	t, _, err := r.load(db, collection, tokenID)
	if err != nil {
		return nil, err
	}
	return steward.Address(t.Owner), nil
}

// Transfer moves the token from src to dest. The source address must
// be either the current owner or the approved address. Any approval is
// cleared by a successful transfer.
func (r BaseRegistry) Transfer(db steward.KVStore, collection string, tokenID []byte, src, dest steward.Address) error {
	t, key, err := r.load(db, collection, tokenID)
	if err != nil {
		return err
	}
	owner := steward.Address(t.Owner)
	if !owner.Equals(src) && !steward.Address(t.Approved).Equals(src) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s does not control the token", src)
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "dest")
	}
	t.Owner = dest
	t.Approved = nil
	return r.bucket.Put(db, key, t)
}

// Approve authorizes one more address to transfer the token. Passing a
// nil address clears the previous approval.
func (r BaseRegistry) Approve(db steward.KVStore, collection string, tokenID []byte, to steward.Address) error {
	t, key, err := r.load(db, collection, tokenID)
	if err != nil {
		return err
	}
	t.Approved = to
	return r.bucket.Put(db, key, t)
}

// Issue registers a brand new token. It fails if a token with the same
// collection and ID already exists.
func (r BaseRegistry) Issue(db steward.KVStore, collection string, tokenID []byte, owner steward.Address) error {
	key, err := TokenKey(collection, tokenID)
	if err != nil {
		return err
	}
	switch err := r.bucket.Has(db, key); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "token %q exists", key)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	t := &Token{Owner: owner}
	return r.bucket.Put(db, key, t)
}

func (r BaseRegistry) load(db steward.ReadOnlyKVStore, collection string, tokenID []byte) (*Token, []byte, error) {
	key, err := TokenKey(collection, tokenID)
	if err != nil {
		return nil, nil, err
	}
	var t Token
	if err := r.bucket.One(db, key, &t); err != nil {
		return nil, nil, errors.Wrapf(err, "token %q", key)
	}
	return &t, key, nil
}
