package chillvec

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// MarshalJSON encodes the strings as a JSON array in insertion order.
func (s *StrVec) MarshalJSON() ([]byte, error) {
	out := make([]string, 0, s.Len())
	for str := range s.Values() {
		out = append(out, str)
	}
	return json.Marshal(out)
}

// UnmarshalJSON appends the strings of a JSON array. A null input leaves the
// StrVec unchanged.
func (s *StrVec) UnmarshalJSON(data []byte) error {
	var in []string
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("chillvec: decode strings: %w", err)
	}
	for _, str := range in {
		s.Push(str)
	}
	return nil
}

// MarshalJSON encodes the values as a JSON array of numbers.
func (c *CompactInts) MarshalJSON() ([]byte, error) {
	out := make([]uint64, 0, c.Len())
	for v := range c.Values() {
		out = append(out, v)
	}
	return json.Marshal(out)
}

// UnmarshalJSON appends the values of a JSON array of unsigned integers,
// widening as needed.
func (c *CompactInts) UnmarshalJSON(data []byte) error {
	var in []uint64
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("chillvec: decode ints: %w", err)
	}
	c.Reserve(c.Len() + len(in))
	for _, v := range in {
		c.Push(v)
	}
	return nil
}
