// SPDX-License-Identifier: MIT

// Package status: sentinel error set (closed, numbered).
// All packages MUST return these sentinels (optionally wrapped with %w) and
// tests MUST check them via errors.Is. No package should panic on
// user-triggered error conditions.

package status

import (
	"context"
	"errors"
	"fmt"
)

// Code is the numeric identity of an error kind.
type Code int

// Error kinds. The numbering is part of the public contract; append only.
const (
	Success Code = iota
	InvalidArgument
	IncompatibleSymmetries
	BasisNotBuilt
	BasisIsEmpty
	StateNotFound
	DimensionMismatch
	UnsupportedDataType
	CacheMismatch
	Cancelled
	OutOfMemory
	Internal
)

// messages is indexed by Code.
var messages = [...]string{
	Success:                "success",
	InvalidArgument:        "invalid argument",
	IncompatibleSymmetries: "incompatible symmetries",
	BasisNotBuilt:          "basis has not been built",
	BasisIsEmpty:           "basis is empty",
	StateNotFound:          "state is not a representative of the basis",
	DimensionMismatch:      "dimension mismatch",
	UnsupportedDataType:    "unsupported data type",
	CacheMismatch:          "cache does not match the basis",
	Cancelled:              "operation cancelled",
	OutOfMemory:            "out of memory",
	Internal:               "internal error",
}

// kindError is the concrete type behind every sentinel below.
type kindError struct{ code Code }

func (e *kindError) Error() string { return "spinsym: " + messages[e.code] }

// Sentinels. Wrap with fmt.Errorf("Ctx: %w", ErrX) at the detection site.
var (
	// ErrInvalidArgument: malformed permutation, out-of-range sector, bad
	// matrix shape, bad site tuple, invalid spin count or Hamming weight.
	ErrInvalidArgument error = &kindError{InvalidArgument}

	// ErrIncompatibleSymmetries: group closure produced conflicting phases
	// for one permutation action, or generators disagree on spin count.
	ErrIncompatibleSymmetries error = &kindError{IncompatibleSymmetries}

	// ErrBasisNotBuilt: the query needs a built basis.
	ErrBasisNotBuilt error = &kindError{BasisNotBuilt}

	// ErrBasisIsEmpty: symmetrization left no representatives.
	ErrBasisIsEmpty error = &kindError{BasisIsEmpty}

	// ErrStateNotFound: Index was asked for a non-representative.
	ErrStateNotFound error = &kindError{StateNotFound}

	// ErrDimensionMismatch: vector/matrix size disagrees with the basis, or
	// paired buffers disagree in shape or element type.
	ErrDimensionMismatch error = &kindError{DimensionMismatch}

	// ErrUnsupportedDataType: element type outside the supported set.
	ErrUnsupportedDataType error = &kindError{UnsupportedDataType}

	// ErrCacheMismatch: cache header disagrees with the requesting basis.
	ErrCacheMismatch error = &kindError{CacheMismatch}

	// ErrCancelled: the context was cancelled between work batches.
	ErrCancelled error = &kindError{Cancelled}

	// ErrOutOfMemory: the requested enumeration cannot be held in memory.
	ErrOutOfMemory error = &kindError{OutOfMemory}

	// ErrInternal: invariant violation (closure blow-up, corrupt cache).
	ErrInternal error = &kindError{Internal}
)

// String implements fmt.Stringer.
func (c Code) String() string {
	if c < 0 || int(c) >= len(messages) {
		return fmt.Sprintf("Code(%d)", int(c))
	}

	return messages[c]
}

// Message returns the human-readable message of a code. Unknown codes map to
// a descriptive placeholder rather than an empty string.
func Message(c Code) string {
	if c < 0 || int(c) >= len(messages) {
		return fmt.Sprintf("unknown status code %d", int(c))
	}

	return messages[c]
}

// CodeOf extracts the kind of err.
//   - nil → Success.
//   - any wrapped sentinel → its code.
//   - bare context cancellation → Cancelled.
//   - anything else → Internal (there is no kind-less failure).
func CodeOf(err error) Code {
	if err == nil {
		return Success
	}
	var k *kindError
	if errors.As(err, &k) {
		return k.code
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return Cancelled
	}

	return Internal
}

// WrapCancelled wraps a context error so that it matches both ErrCancelled
// and the original context error.
func WrapCancelled(ctxTag string, cause error) error {
	return fmt.Errorf("%s: %w: %w", ctxTag, ErrCancelled, cause)
}
