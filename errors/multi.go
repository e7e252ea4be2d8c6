package errors

import (
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If given error implements unpacker interface, it is flattened and all
// its sub-errors are directly included in the result. This means that
// appending to a result of an Append call extends it rather than
// nesting.
func Append(errs ...error) error {
	var res multiError
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if u, ok := e.(unpacker); ok {
			for _, se := range u.Unpack() {
				if !isNilErr(se) {
					res = append(res, se)
				}
			}
		} else {
			res = append(res, e)
		}
	}

	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

// multiError represents a group of errors. It is a result of combining
// many errors into one.
type multiError []error

func (errs multiError) Error() string {
	switch len(errs) {
	case 0:
		return ""
	case 1:
		return errs[0].Error()
	}

	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unpack implements the unpacker interface.
func (errs multiError) Unpack() []error {
	return errs
}

// unpacker is implemented by an error that represents a group of errors.
// It allows to flatten the group and inspect each error separately.
type unpacker interface {
	Unpack() []error
}
