package snapshot

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the payload codec.
type Compression uint8

const (
	// CompressionNone stores the payload as is.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZstd uses Zstandard (better ratio).
	CompressionZstd Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
}

// maxLZ4Ratio bounds how far an LZ4 block can expand on decompression.
const maxLZ4Ratio = 255

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	// Drop the reference to the last input before pooling.
	_ = dec.Reset(nil)
	zstdDecoderPool.Put(dec)
}

// compress returns the stored body and the codec that was actually applied.
// Payloads that do not shrink by at least 10% are stored uncompressed.
func compress(payload []byte, c Compression) ([]byte, Compression, error) {
	if c == CompressionNone || len(payload) == 0 {
		return payload, CompressionNone, nil
	}

	var body []byte
	switch c {
	case CompressionLZ4:
		dst := make([]byte, lz4.CompressBlockBound(len(payload)))
		n, err := lz4.CompressBlock(payload, dst, nil)
		if err != nil {
			return nil, 0, fmt.Errorf("snapshot: lz4 compress: %w", err)
		}
		body = dst[:n]
	case CompressionZstd:
		enc := getZstdEncoder()
		body = enc.EncodeAll(payload, nil)
		putZstdEncoder(enc)
	default:
		return nil, 0, fmt.Errorf("%w: %s", ErrUnknownCompression, c)
	}

	if len(body) == 0 || float64(len(body)) > float64(len(payload))*0.9 {
		return payload, CompressionNone, nil
	}
	return body, c, nil
}

// decompress restores a payload of exactly rawLen bytes.
func decompress(body []byte, c Compression, rawLen uint64) ([]byte, error) {
	switch c {
	case CompressionNone:
		if uint64(len(body)) != rawLen {
			return nil, fmt.Errorf("%w: stored length %d, want %d", ErrCorrupt, len(body), rawLen)
		}
		return body, nil

	case CompressionLZ4:
		if rawLen > uint64(len(body))*maxLZ4Ratio {
			return nil, fmt.Errorf("%w: lz4 length %d cannot expand to %d", ErrCorrupt, len(body), rawLen)
		}
		dst := make([]byte, rawLen)
		n, err := lz4.UncompressBlock(body, dst)
		if err != nil {
			return nil, fmt.Errorf("%w: lz4: %v", ErrCorrupt, err)
		}
		if uint64(n) != rawLen {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
		return dst, nil

	case CompressionZstd:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)

		if err := dec.Reset(bytes.NewReader(body)); err != nil {
			return nil, fmt.Errorf("%w: zstd: %v", ErrCorrupt, err)
		}
		// Stop one byte past rawLen so a frame that inflates beyond its
		// declared size is rejected without being materialized.
		var out bytes.Buffer
		out.Grow(int(min(rawLen, uint64(len(body))*64)))
		n, err := out.ReadFrom(io.LimitReader(dec, int64(rawLen)+1))
		if err != nil {
			return nil, fmt.Errorf("%w: zstd: %v", ErrCorrupt, err)
		}
		if uint64(n) != rawLen {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
		return out.Bytes(), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCompression, c)
	}
}
