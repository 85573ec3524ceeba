// Package snapshot serialises StrVec and CompactInts to a compact,
// self-describing binary format.
//
// Every snapshot starts with a fixed 32-byte header:
//
//	magic   "CHVS"
//	version 1 byte
//	kind    1 byte (1 = strings, 2 = ints)
//	codec   1 byte (0 = none, 1 = lz4, 2 = zstd)
//	flags   1 byte (reserved, 0)
//	rawLen  uint64 little endian, uncompressed payload length
//	bodyLen uint64 little endian, stored payload length
//	sum     uint64 little endian, XXH3 of the uncompressed payload
//
// followed by bodyLen bytes of payload. A strings payload is a uvarint count,
// count uvarint byte lengths, then the concatenated bytes. An ints payload is
// the bit width (8, 16, 32 or 64), a uvarint count, then count little-endian
// values of that width.
//
// Decoding validates every length against the input before allocating, so
// truncated or corrupt snapshots return an error wrapping ErrCorrupt or
// ErrChecksum rather than exhausting memory.
//
// Compression is applied only when it saves at least 10% of the payload;
// otherwise the payload is stored as is and the header records codec none.
package snapshot
