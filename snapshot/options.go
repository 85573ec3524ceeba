package snapshot

type options struct {
	compression Compression
}

// Option configures a snapshot writer.
type Option func(*options)

// WithCompression selects the payload codec. The default is
// CompressionNone.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

func applyOptions(optFns []Option) options {
	var o options
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
