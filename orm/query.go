package orm

import (
	"github.com/steward-one/steward"
)

// prefixRange turns a prefix into (start, end) to create
// and iterator over the whole domain of keys with this prefix
//
// Assumes prefix is non-nil, in-/decrements the last byte to
// get the smallest key out of range.
func prefixRange(prefix []byte) ([]byte, []byte) {
	// special case: no prefix is whole range
	if len(prefix) == 0 {
		return nil, nil
	}

	// copy the prefix and update last byte
	end := make([]byte, len(prefix))
	copy(end, prefix)
	l := len(end) - 1
	end[l]++

	// wait, what if that overflowed the byte??
	for end[l] == 0 && l > 0 {
		l--
		end[l]++
	}

	// okay, funny guy, you gave us FFF, no end to this range...
	if l == 0 && end[0] == 0 {
		end = nil
	}
	return prefix, end
}

// queryPrefix returns all models with the given key prefix,
// in ascending key order
func queryPrefix(db steward.ReadOnlyKVStore, prefix []byte) []steward.Model {
	start, end := prefixRange(prefix)
	return ConsumeIterator(db.Iterator(start, end))
}

// ConsumeIterator will read all remaining data into an
// array and close the iterator
func ConsumeIterator(itr steward.Iterator) []steward.Model {
	defer itr.Close()

	var res []steward.Model
	for ; itr.Valid(); itr.Next() {
		mod := steward.Model{
			Key:   append([]byte(nil), itr.Key()...),
			Value: append([]byte(nil), itr.Value()...),
		}
		res = append(res, mod)
	}
	return res
}
