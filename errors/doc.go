/*
Package errors implements custom error interfaces for steward.

The idea is to reuse as many errors from this package as possible and
define custom package errors when absolutely necessary. Errors are
registered with a unique code so that an embedding application can
return them over a wire without leaking internals. Use Register to
create a new root error and Wrap to give context to an existing one.

Error kind is tested with the root error Is method, following the cause
chain created by Wrap:

  if errors.ErrNotFound.Is(err) {
      ...
  }
*/
package errors
