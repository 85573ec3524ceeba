package chillvec

import (
	"errors"
	"fmt"
)

var (
	// ErrAllocationFailed means the allocator could not satisfy a request.
	ErrAllocationFailed = errors.New("allocation failed")
	// ErrSizeOverflow means a requested capacity, in bytes, exceeds the
	// largest allocation the platform can address safely.
	ErrSizeOverflow = errors.New("allocation size overflow")
)

// AbortError describes the condition that terminated the process.
//
// It is never returned from an operation. It is passed to the logger and the
// metrics collector right before the process exits with AbortExitCode.
//
// Kind is ErrAllocationFailed or ErrSizeOverflow; the allocator's own error
// (if any) can be accessed via errors.Unwrap.
type AbortError struct {
	Kind      error
	Op        string
	Requested uint64  // requested capacity in elements
	ElemSize  uintptr // element size in bytes
	cause     error
}

func (e *AbortError) Error() string {
	msg := fmt.Sprintf("%s: %v (%d elements of %d bytes)", e.Op, e.Kind, e.Requested, e.ElemSize)
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

func (e *AbortError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.cause}
}
