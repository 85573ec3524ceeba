package mmap

import "errors"

// AccessPattern is a read-ahead hint passed to Advise.
type AccessPattern int

const (
	// AccessDefault clears any earlier hint.
	AccessDefault AccessPattern = iota
	// AccessSequential favors aggressive read-ahead, as for a single
	// front-to-back decode of a snapshot.
	AccessSequential
)

var (
	// ErrClosed is returned by Advise on a mapping that was closed.
	ErrClosed = errors.New("mmap: mapping is closed")
	// ErrInvalidSize is returned for sizes the kernel cannot map.
	ErrInvalidSize = errors.New("mmap: invalid size")
)
