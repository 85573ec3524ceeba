package snapshot

import (
	"fmt"

	"github.com/hupe1980/chillvec"
	"github.com/hupe1980/chillvec/internal/mmap"
)

// LoadFile maps the strings snapshot at path and decodes it into a new
// StrVec. The file is unmapped before LoadFile returns; the StrVec owns a
// copy of the data.
func LoadFile(path string, opts ...chillvec.Option) (*chillvec.StrVec, error) {
	var s *chillvec.StrVec
	err := withMapping(path, kindStrings, func(payload []byte) (err error) {
		s, err = decodeStrings(payload, opts)
		return err
	})
	return s, err
}

// LoadIntsFile maps the ints snapshot at path and decodes it into a new
// CompactInts.
func LoadIntsFile(path string, opts ...chillvec.Option) (*chillvec.CompactInts, error) {
	var c *chillvec.CompactInts
	err := withMapping(path, kindInts, func(payload []byte) (err error) {
		c, err = decodeInts(payload, opts)
		return err
	})
	return c, err
}

func withMapping(path string, k kind, decode func(payload []byte) error) error {
	m, err := mmap.Open(path)
	if err != nil {
		return fmt.Errorf("snapshot: open %s: %w", path, err)
	}
	defer m.Close()

	// Advice is a hint; failure only costs read-ahead.
	_ = m.Advise(mmap.AccessSequential)

	payload, err := frame(m.Bytes(), k)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return decode(payload)
}
