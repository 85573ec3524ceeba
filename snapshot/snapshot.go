package snapshot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/zeebo/xxh3"

	"github.com/hupe1980/chillvec"
	"github.com/hupe1980/chillvec/internal/conv"
)

const (
	magic      = "CHVS"
	version    = 1
	headerSize = 32
)

type kind uint8

const (
	kindStrings kind = 1
	kindInts    kind = 2
)

func (k kind) String() string {
	switch k {
	case kindStrings:
		return "strings"
	case kindInts:
		return "ints"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

var (
	// ErrBadMagic means the input is not a snapshot.
	ErrBadMagic = errors.New("snapshot: bad magic")
	// ErrUnsupportedVersion means the snapshot was written by a newer format.
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")
	// ErrKindMismatch means the snapshot holds a different container type.
	ErrKindMismatch = errors.New("snapshot: kind mismatch")
	// ErrUnknownCompression means the codec byte is not a known Compression.
	ErrUnknownCompression = errors.New("snapshot: unknown compression")
	// ErrChecksum means the payload does not match its stored checksum.
	ErrChecksum = errors.New("snapshot: checksum mismatch")
	// ErrCorrupt means a length or count in the snapshot is inconsistent
	// with the data.
	ErrCorrupt = errors.New("snapshot: corrupt data")
)

type header struct {
	kind    kind
	codec   Compression
	rawLen  uint64
	bodyLen uint64
	sum     uint64
}

func (h header) encode() []byte {
	b := make([]byte, headerSize)
	copy(b, magic)
	b[4] = version
	b[5] = byte(h.kind)
	b[6] = byte(h.codec)
	b[7] = 0
	binary.LittleEndian.PutUint64(b[8:], h.rawLen)
	binary.LittleEndian.PutUint64(b[16:], h.bodyLen)
	binary.LittleEndian.PutUint64(b[24:], h.sum)
	return b
}

func parseHeader(b []byte, want kind) (header, error) {
	if len(b) < headerSize {
		return header{}, fmt.Errorf("%w: header needs %d bytes, have %d", ErrCorrupt, headerSize, len(b))
	}
	if string(b[:4]) != magic {
		return header{}, ErrBadMagic
	}
	if b[4] != version {
		return header{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, b[4])
	}
	h := header{
		kind:    kind(b[5]),
		codec:   Compression(b[6]),
		rawLen:  binary.LittleEndian.Uint64(b[8:]),
		bodyLen: binary.LittleEndian.Uint64(b[16:]),
		sum:     binary.LittleEndian.Uint64(b[24:]),
	}
	if h.kind != want {
		return header{}, fmt.Errorf("%w: have %s, want %s", ErrKindMismatch, h.kind, want)
	}
	if h.codec > CompressionZstd {
		return header{}, fmt.Errorf("%w: %d", ErrUnknownCompression, b[6])
	}
	if h.rawLen > conv.MaxAllocBytes || h.bodyLen > conv.MaxAllocBytes {
		return header{}, fmt.Errorf("%w: payload length out of range", ErrCorrupt)
	}
	return h, nil
}

// open decompresses body and verifies the checksum.
func (h header) open(body []byte) ([]byte, error) {
	payload, err := decompress(body, h.codec, h.rawLen)
	if err != nil {
		return nil, err
	}
	if xxh3.Hash(payload) != h.sum {
		return nil, ErrChecksum
	}
	return payload, nil
}

// WriteStrings writes s to w and returns the number of bytes written.
func WriteStrings(w io.Writer, s *chillvec.StrVec, opts ...Option) (int64, error) {
	return write(w, kindStrings, encodeStrings(s), applyOptions(opts))
}

// WriteInts writes c to w and returns the number of bytes written.
func WriteInts(w io.Writer, c *chillvec.CompactInts, opts ...Option) (int64, error) {
	return write(w, kindInts, encodeInts(c), applyOptions(opts))
}

// ReadStrings reads a strings snapshot from r into a new StrVec configured
// with opts.
func ReadStrings(r io.Reader, opts ...chillvec.Option) (*chillvec.StrVec, error) {
	payload, err := read(r, kindStrings)
	if err != nil {
		return nil, err
	}
	return decodeStrings(payload, opts)
}

// ReadInts reads an ints snapshot from r into a new CompactInts configured
// with opts.
func ReadInts(r io.Reader, opts ...chillvec.Option) (*chillvec.CompactInts, error) {
	payload, err := read(r, kindInts)
	if err != nil {
		return nil, err
	}
	return decodeInts(payload, opts)
}

func write(w io.Writer, k kind, payload []byte, o options) (int64, error) {
	body, codec, err := compress(payload, o.compression)
	if err != nil {
		return 0, err
	}
	h := header{
		kind:    k,
		codec:   codec,
		rawLen:  uint64(len(payload)),
		bodyLen: uint64(len(body)),
		sum:     xxh3.Hash(payload),
	}

	n, err := w.Write(h.encode())
	total := int64(n)
	if err != nil {
		return total, fmt.Errorf("snapshot: write header: %w", err)
	}
	n, err = w.Write(body)
	total += int64(n)
	if err != nil {
		return total, fmt.Errorf("snapshot: write body: %w", err)
	}
	return total, nil
}

func read(r io.Reader, k kind) ([]byte, error) {
	hb := make([]byte, headerSize)
	if _, err := io.ReadFull(r, hb); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: truncated header", ErrCorrupt)
		}
		return nil, fmt.Errorf("snapshot: read header: %w", err)
	}
	h, err := parseHeader(hb, k)
	if err != nil {
		return nil, err
	}

	// The body grows with the data actually present, so a corrupt bodyLen
	// cannot force a large allocation.
	var buf bytes.Buffer
	n, err := buf.ReadFrom(io.LimitReader(r, int64(h.bodyLen)))
	if err != nil {
		return nil, fmt.Errorf("snapshot: read body: %w", err)
	}
	if uint64(n) != h.bodyLen {
		return nil, fmt.Errorf("%w: truncated body, have %d of %d bytes", ErrCorrupt, n, h.bodyLen)
	}
	return h.open(buf.Bytes())
}

// frame validates a complete in-memory snapshot and returns its payload.
func frame(data []byte, k kind) ([]byte, error) {
	h, err := parseHeader(data, k)
	if err != nil {
		return nil, err
	}
	body := data[headerSize:]
	if uint64(len(body)) < h.bodyLen {
		return nil, fmt.Errorf("%w: truncated body, have %d of %d bytes", ErrCorrupt, len(body), h.bodyLen)
	}
	return h.open(body[:h.bodyLen])
}

func encodeStrings(s *chillvec.StrVec) []byte {
	out := make([]byte, 0, binary.MaxVarintLen64*(s.Len()+1)+s.ByteLen())
	out = binary.AppendUvarint(out, uint64(s.Len()))
	for str := range s.Values() {
		out = binary.AppendUvarint(out, uint64(len(str)))
	}
	return append(out, s.Bytes()...)
}

func decodeStrings(p []byte, opts []chillvec.Option) (*chillvec.StrVec, error) {
	count, n := binary.Uvarint(p)
	if n <= 0 {
		return nil, fmt.Errorf("%w: string count", ErrCorrupt)
	}
	p = p[n:]
	// Every length takes at least one byte.
	if count > uint64(len(p)) {
		return nil, fmt.Errorf("%w: %d strings in %d bytes", ErrCorrupt, count, len(p))
	}

	lengths := p
	var total uint64
	for i := uint64(0); i < count; i++ {
		l, n := binary.Uvarint(p)
		if n <= 0 {
			return nil, fmt.Errorf("%w: length of string %d", ErrCorrupt, i)
		}
		p = p[n:]
		if l > uint64(len(p)) {
			return nil, fmt.Errorf("%w: string %d overruns the payload", ErrCorrupt, i)
		}
		total += l
		if total > uint64(len(p)) {
			return nil, fmt.Errorf("%w: string %d overruns the payload", ErrCorrupt, i)
		}
	}
	if total != uint64(len(p)) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, uint64(len(p))-total)
	}

	data := p
	s := chillvec.NewStrVec(opts...)
	s.Reserve(int(count), len(data))
	for i := uint64(0); i < count; i++ {
		l, n := binary.Uvarint(lengths)
		lengths = lengths[n:]
		s.PushBytes(data[:l])
		data = data[l:]
	}
	return s, nil
}

func encodeInts(c *chillvec.CompactInts) []byte {
	w := c.Width()
	size := int(w) / 8
	out := make([]byte, 0, 1+binary.MaxVarintLen64+c.Len()*size)
	out = append(out, byte(w))
	out = binary.AppendUvarint(out, uint64(c.Len()))
	for v := range c.Values() {
		switch w {
		case chillvec.Width8:
			out = append(out, byte(v))
		case chillvec.Width16:
			out = binary.LittleEndian.AppendUint16(out, uint16(v))
		case chillvec.Width32:
			out = binary.LittleEndian.AppendUint32(out, uint32(v))
		default:
			out = binary.LittleEndian.AppendUint64(out, v)
		}
	}
	return out
}

func decodeInts(p []byte, opts []chillvec.Option) (*chillvec.CompactInts, error) {
	if len(p) == 0 {
		return nil, fmt.Errorf("%w: missing width", ErrCorrupt)
	}
	w := chillvec.Width(p[0])
	switch w {
	case chillvec.Width8, chillvec.Width16, chillvec.Width32, chillvec.Width64:
	default:
		return nil, fmt.Errorf("%w: width %d", ErrCorrupt, p[0])
	}
	p = p[1:]

	count, n := binary.Uvarint(p)
	if n <= 0 {
		return nil, fmt.Errorf("%w: value count", ErrCorrupt)
	}
	p = p[n:]
	size := uint64(w) / 8
	if count > uint64(len(p)) || count*size != uint64(len(p)) {
		return nil, fmt.Errorf("%w: %d values of %s in %d bytes", ErrCorrupt, count, w, len(p))
	}

	c := chillvec.NewCompactInts(opts...)
	c.Reserve(int(count))
	for ; len(p) > 0; p = p[size:] {
		switch w {
		case chillvec.Width8:
			c.Push(uint64(p[0]))
		case chillvec.Width16:
			c.Push(uint64(binary.LittleEndian.Uint16(p)))
		case chillvec.Width32:
			c.Push(uint64(binary.LittleEndian.Uint32(p)))
		default:
			c.Push(binary.LittleEndian.Uint64(p))
		}
	}
	return c, nil
}
