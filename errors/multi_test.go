package errors

import (
	"testing"
)

func TestAppend(t *testing.T) {
	cases := map[string]struct {
		errs     []error
		wantNil  bool
		wantMsgs string
	}{
		"no errors": {
			errs:    nil,
			wantNil: true,
		},
		"nil values are ignored": {
			errs:    []error{nil, nil},
			wantNil: true,
		},
		"single error is returned unwrapped": {
			errs:     []error{ErrNotFound},
			wantMsgs: "not found",
		},
		"multiple errors are combined": {
			errs:     []error{ErrNotFound, ErrAmount},
			wantMsgs: "not found; invalid amount",
		},
		"nested append is flattened": {
			errs:     []error{Append(ErrNotFound, ErrAmount), ErrEmpty},
			wantMsgs: "not found; invalid amount; value is empty",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := Append(tc.errs...)
			if tc.wantNil {
				if err != nil {
					t.Fatalf("want nil, got %+v", err)
				}
				return
			}
			if err.Error() != tc.wantMsgs {
				t.Fatalf("unexpected message: %q", err.Error())
			}
		})
	}
}

func TestAppendPreservesKind(t *testing.T) {
	err := Append(Wrap(ErrNotFound, "first"), Wrap(ErrAmount, "second"))
	errs, ok := err.(unpacker)
	if !ok {
		t.Fatalf("expected a multi error, got %T", err)
	}
	all := errs.Unpack()
	if len(all) != 2 {
		t.Fatalf("want 2 errors, got %d", len(all))
	}
	if !ErrNotFound.Is(all[0]) {
		t.Fatalf("first error lost its kind: %+v", all[0])
	}
	if !ErrAmount.Is(all[1]) {
		t.Fatalf("second error lost its kind: %+v", all[1])
	}
}

func TestFieldErrors(t *testing.T) {
	err := Append(
		Field("Price", ErrAmount, "negative"),
		Field("Creator", ErrEmpty, ""),
	)

	if errs := FieldErrors(err, "Price"); len(errs) != 1 || !ErrAmount.Is(errs[0]) {
		t.Fatalf("unexpected Price errors: %+v", errs)
	}
	if errs := FieldErrors(err, "Creator"); len(errs) != 1 || !ErrEmpty.Is(errs[0]) {
		t.Fatalf("unexpected Creator errors: %+v", errs)
	}
	if errs := FieldErrors(err, "Deposit"); len(errs) != 0 {
		t.Fatalf("unexpected Deposit errors: %+v", errs)
	}
}
