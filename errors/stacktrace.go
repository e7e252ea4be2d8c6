package errors

import (
	"github.com/pkg/errors"
)

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackTrace returns the stack trace attached to the deepest error in the
// cause chain, or nil if no error in the chain carries one.
func stackTrace(err error) errors.StackTrace {
	var deepest errors.StackTrace
	for {
		if err == nil {
			return deepest
		}
		if st, ok := err.(stackTracer); ok {
			deepest = st.StackTrace()
		}
		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return deepest
		}
	}
}
