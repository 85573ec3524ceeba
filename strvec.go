package chillvec

import (
	"iter"
	"strings"
	"unsafe"
)

const (
	initialStrBytes   = 64
	initialStrOffsets = 8
)

// Key identifies a string pushed into a StrVec. It is the string's ordinal
// position and is only meaningful for the StrVec that returned it.
type Key struct {
	index int
}

// Index returns the ordinal position of the string.
func (k Key) Index() int {
	return k.index
}

// StrVec is an append-only collection of strings packed into one contiguous
// byte buffer, delimited by an offset index.
//
// String i occupies bytes [offsets[i], offsets[i+1]) of the buffer. Offsets
// are stored in a CompactInts, so small tables pay one byte per offset.
//
// Strings returned by Get, Lookup and the iterators alias the buffer without
// copying. They stay valid until the next Push, ShrinkToFit or Free; with a
// heap-backed table the garbage collector keeps old buffers alive, but with
// an allocator the memory is reused or unmapped.
//
// The zero StrVec is empty and ready to use.
type StrVec struct {
	_ noCopy

	data    Vec[byte]
	offsets CompactInts
}

// NewStrVec creates an empty StrVec.
func NewStrVec(opts ...Option) *StrVec {
	s := &StrVec{}
	s.init(applyOptions(opts))
	s.data.Reserve(initialStrBytes)
	s.offsets.Reserve(initialStrOffsets)
	s.offsets.Push(0)
	return s
}

func (s *StrVec) init(cfg *options) {
	s.data.init(cfg)
	s.offsets.init(cfg)
}

// Push appends str and returns its key.
// Empty strings are stored as an empty span.
func (s *StrVec) Push(str string) Key {
	return s.PushBytes(unsafe.Slice(unsafe.StringData(str), len(str)))
}

// PushBytes appends a copy of b as a string and returns its key. b may be a
// view returned by this StrVec, such as a Get result or a slice of Bytes.
func (s *StrVec) PushBytes(b []byte) Key {
	if s.offsets.Len() == 0 {
		s.offsets.Push(0)
	}
	key := Key{index: s.offsets.Len() - 1}
	s.data.ExtendFromSlice(b)
	s.offsets.Push(uint64(s.data.Len()))
	return key
}

// Reserve makes room for n more strings totalling byteLen bytes.
func (s *StrVec) Reserve(n, byteLen int) {
	if n > 0 {
		s.offsets.Reserve(s.Len() + n + 1)
	}
	if byteLen > 0 {
		s.data.Reserve(s.data.Len() + byteLen)
	}
}

// Get returns string i, or false if i is out of range.
func (s *StrVec) Get(i int) (string, bool) {
	if i < 0 || i >= s.Len() {
		return "", false
	}
	return s.span(i), true
}

// Lookup returns the string for a key returned by Push on this StrVec.
// It performs no bounds check.
func (s *StrVec) Lookup(k Key) string {
	return s.span(k.index)
}

// Len returns the number of strings.
func (s *StrVec) Len() int {
	if n := s.offsets.Len(); n > 0 {
		return n - 1
	}
	return 0
}

// IsEmpty reports whether the StrVec holds no strings.
func (s *StrVec) IsEmpty() bool {
	return s.Len() == 0
}

// ByteLen returns the total number of bytes of all strings.
func (s *StrVec) ByteLen() int {
	return s.data.Len()
}

// Bytes returns the packed byte buffer. It aliases the StrVec's storage.
func (s *StrVec) Bytes() []byte {
	return s.data.Slice()
}

// All returns an iterator over index/string pairs in insertion order.
// Each range over it starts from the first string.
func (s *StrVec) All() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		n := s.Len()
		if n == 0 {
			return
		}
		begin := s.offsets.GetUnchecked(0)
		for i := 0; i < n; i++ {
			end := s.offsets.GetUnchecked(i + 1)
			if !yield(i, s.bytesToString(begin, end)) {
				return
			}
			begin = end
		}
	}
}

// Values returns an iterator over the strings in insertion order.
func (s *StrVec) Values() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, str := range s.All() {
			if !yield(str) {
				return
			}
		}
	}
}

// Strings returns a copy of all strings as an ordinary slice.
func (s *StrVec) Strings() []string {
	out := make([]string, 0, s.Len())
	for _, str := range s.All() {
		out = append(out, strings.Clone(str))
	}
	return out
}

// ShrinkToFit reduces both the byte buffer and the offset index to their
// lengths.
func (s *StrVec) ShrinkToFit() {
	s.offsets.ShrinkToFit()
	s.data.ShrinkToFit()
}

// Clone returns a deep copy.
func (s *StrVec) Clone() *StrVec {
	out := &StrVec{}
	out.init(s.data.config())
	out.data.Reserve(s.data.Len())
	out.data.ExtendFromSlice(s.data.Slice())
	out.offsets.store = s.offsets.Clone().store
	return out
}

// Free releases the byte buffer and the offset index. The StrVec is left
// empty and reusable.
func (s *StrVec) Free() {
	s.data.Free()
	s.offsets.Free()
}

func (s *StrVec) span(i int) string {
	return s.bytesToString(s.offsets.GetUnchecked(i), s.offsets.GetUnchecked(i+1))
}

func (s *StrVec) bytesToString(begin, end uint64) string {
	if begin == end {
		return ""
	}
	return unsafe.String(s.data.at(int(begin)), int(end-begin)) //nolint:gosec // span bounded by the offset index
}
