package deed

import (
	"regexp"

	"github.com/steward-one/steward"
	"github.com/steward-one/steward/errors"
	"github.com/steward-one/steward/orm"
)

// BucketName is where the tokens are stored.
const BucketName = "deeds"

// maxTokenIDLength bounds the free-form token identifier.
const maxTokenIDLength = 64

var isCollectionName = regexp.MustCompile(`^[a-z0-9]{3,20}$`).MatchString

var _ orm.Model = (*Token)(nil)

// Validate ensures the token references a proper owner.
func (t *Token) Validate() error {
	if err := steward.Address(t.Owner).Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if len(t.Approved) != 0 {
		if err := steward.Address(t.Approved).Validate(); err != nil {
			return errors.Wrap(err, "approved")
		}
	}
	return nil
}

// Copy produces an independent copy of this token.
func (t *Token) Copy() orm.CloneableData {
	return &Token{
		Owner:    append([]byte(nil), t.Owner...),
		Approved: append([]byte(nil), t.Approved...),
	}
}

// TokenKey builds the primary key of a token from its collection name
// and identifier.
func TokenKey(collection string, tokenID []byte) ([]byte, error) {
	if !isCollectionName(collection) {
		return nil, errors.Wrapf(errors.ErrInput, "invalid collection name %q", collection)
	}
	if n := len(tokenID); n == 0 || n > maxTokenIDLength {
		return nil, errors.Wrapf(errors.ErrInput, "token id length %d", n)
	}
	key := make([]byte, 0, len(collection)+1+len(tokenID))
	key = append(key, collection...)
	key = append(key, ':')
	key = append(key, tokenID...)
	return key, nil
}

// TokenBucket stores tokens keyed by collection and token ID.
type TokenBucket struct {
	orm.ModelBucket
}

// NewTokenBucket returns a bucket for keeping tokens.
func NewTokenBucket() *TokenBucket {
	b := orm.NewBucket(BucketName, orm.NewSimpleObj(nil, &Token{}))
	return &TokenBucket{
		ModelBucket: orm.NewModelBucket(b),
	}
}
