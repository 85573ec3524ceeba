package chillvec

import (
	"context"
	"iter"
	"strconv"
	"unsafe"

	"github.com/hupe1980/chillvec/internal/conv"
)

// Width is the number of bits each value occupies in a CompactInts.
type Width uint8

// Supported widths.
const (
	Width8  Width = 8
	Width16 Width = 16
	Width32 Width = 32
	Width64 Width = 64
)

func (w Width) String() string {
	return "u" + strconv.Itoa(int(w))
}

// CompactInts is a dense sequence of unsigned integers stored at the
// narrowest width (8, 16, 32 or 64 bits) that holds every value pushed so far.
//
// Pushing a value that does not fit the current width re-encodes all stored
// values into the next width that fits it. The width never shrinks: the type
// is meant for monotonically growing data such as offset indexes.
//
// The zero CompactInts is empty, 8 bits wide, and ready to use.
type CompactInts struct {
	_ noCopy

	store intStore // nil until first use
	cfg   *options
}

// NewCompactInts creates an empty, 8-bit wide CompactInts.
func NewCompactInts(opts ...Option) *CompactInts {
	c := &CompactInts{}
	c.init(applyOptions(opts))
	return c
}

func (c *CompactInts) init(cfg *options) {
	c.cfg = cfg
	c.store = newIntStore(Width8, cfg)
}

func (c *CompactInts) active() intStore {
	if c.store == nil {
		if c.cfg == nil {
			c.cfg = defaultOptions
		}
		c.store = newIntStore(Width8, c.cfg)
	}
	return c.store
}

// Push appends v, upgrading the width first if v does not fit.
func (c *CompactInts) Push(v uint64) {
	s := c.active()
	if want := Width(conv.BitsFor(v)); want > s.width() {
		s = c.upgrade(want)
	}
	s.push(v)
}

// upgrade re-encodes every stored value at width to. The new store starts
// with the old store's capacity.
func (c *CompactInts) upgrade(to Width) intStore {
	old := c.store
	next := newIntStore(to, c.cfg)
	next.reserve(old.cap())

	n := old.len()
	for i := 0; i < n; i++ {
		next.push(old.getUnchecked(i))
	}
	old.free()
	c.store = next

	c.cfg.metrics.RecordUpgrade(old.width(), to, n)
	c.cfg.logger.LogUpgrade(context.Background(), old.width(), to, n)
	return next
}

// Get returns the value at index i, or false if i is out of range.
func (c *CompactInts) Get(i int) (uint64, bool) {
	if c.store == nil || i < 0 || i >= c.store.len() {
		return 0, false
	}
	return c.store.getUnchecked(i), true
}

// GetUnchecked returns the value at index i without a bounds check.
// The caller must guarantee 0 <= i < Len().
func (c *CompactInts) GetUnchecked(i int) uint64 {
	return c.store.getUnchecked(i)
}

// Len returns the number of stored values.
func (c *CompactInts) Len() int {
	if c.store == nil {
		return 0
	}
	return c.store.len()
}

// Cap returns the number of values the active representation can hold
// without reallocating.
func (c *CompactInts) Cap() int {
	if c.store == nil {
		return 0
	}
	return c.store.cap()
}

// Width returns the bit width of the active representation.
func (c *CompactInts) Width() Width {
	if c.store == nil {
		return Width8
	}
	return c.store.width()
}

// Reserve ensures Cap() >= n at the current width.
func (c *CompactInts) Reserve(n int) {
	c.active().reserve(n)
}

// ShrinkToFit reduces the capacity to exactly Len().
func (c *CompactInts) ShrinkToFit() {
	if c.store != nil {
		c.store.shrinkToFit()
	}
}

// All returns an iterator over index/value pairs in order.
func (c *CompactInts) All() iter.Seq2[int, uint64] {
	return func(yield func(int, uint64) bool) {
		for i := 0; i < c.Len(); i++ {
			if !yield(i, c.store.getUnchecked(i)) {
				return
			}
		}
	}
}

// Values returns an iterator over the values in order.
func (c *CompactInts) Values() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		for i := 0; i < c.Len(); i++ {
			if !yield(c.store.getUnchecked(i)) {
				return
			}
		}
	}
}

// Clone returns a deep copy at the same width.
func (c *CompactInts) Clone() *CompactInts {
	cfg := c.cfg
	if cfg == nil {
		cfg = defaultOptions
	}
	out := &CompactInts{cfg: cfg}
	if c.store == nil {
		out.store = newIntStore(Width8, cfg)
		return out
	}
	out.store = newIntStore(c.store.width(), cfg)
	out.store.reserve(c.store.len())
	for i := 0; i < c.store.len(); i++ {
		out.store.push(c.store.getUnchecked(i))
	}
	return out
}

// Free releases the backing region. The CompactInts is left empty and
// 8 bits wide.
func (c *CompactInts) Free() {
	if c.store == nil {
		return
	}
	c.store.free()
	c.store = nil
}

// intStore is one fixed-width representation of a CompactInts.
type intStore interface {
	width() Width
	len() int
	cap() int
	getUnchecked(i int) uint64
	push(v uint64)
	reserve(n int)
	shrinkToFit()
	free()
}

type fixedStore[U uint8 | uint16 | uint32 | uint64] struct {
	vec Vec[U]
}

func newIntStore(w Width, cfg *options) intStore {
	switch w {
	case Width8:
		return newFixedStore[uint8](cfg)
	case Width16:
		return newFixedStore[uint16](cfg)
	case Width32:
		return newFixedStore[uint32](cfg)
	default:
		return newFixedStore[uint64](cfg)
	}
}

func newFixedStore[U uint8 | uint16 | uint32 | uint64](cfg *options) *fixedStore[U] {
	s := &fixedStore[U]{}
	s.vec.init(cfg)
	return s
}

func (s *fixedStore[U]) width() Width {
	var zero U
	return Width(unsafe.Sizeof(zero) * 8)
}

func (s *fixedStore[U]) len() int                  { return s.vec.Len() }
func (s *fixedStore[U]) cap() int                  { return s.vec.Cap() }
func (s *fixedStore[U]) getUnchecked(i int) uint64 { return uint64(s.vec.GetUnchecked(i)) }
func (s *fixedStore[U]) push(v uint64)             { s.vec.Push(U(v)) }
func (s *fixedStore[U]) reserve(n int)             { s.vec.Reserve(n) }
func (s *fixedStore[U]) shrinkToFit()              { s.vec.ShrinkToFit() }
func (s *fixedStore[U]) free()                     { s.vec.Free() }
