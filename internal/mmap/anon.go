package mmap

// Anon maps size bytes of zero-filled, read-write anonymous memory.
func Anon(size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	return osMapAnon(size)
}

// Resize changes the size of an anonymous region returned by Anon or Resize.
// The first min(len(buf), size) bytes are preserved. On success buf must no
// longer be used; on failure buf is still mapped and unchanged.
func Resize(buf []byte, size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	if len(buf) == 0 {
		return osMapAnon(size)
	}
	if size == len(buf) {
		return buf, nil
	}
	return osRemapAnon(buf, size)
}

// Release unmaps an anonymous region returned by Anon or Resize.
func Release(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	return osUnmapAnon(buf)
}

// copyRemap is the portable Resize: map a new region, copy, unmap the old one.
func copyRemap(buf []byte, size int) ([]byte, error) {
	next, err := osMapAnon(size)
	if err != nil {
		return nil, err
	}
	copy(next, buf)
	if err := osUnmapAnon(buf); err != nil {
		_ = osUnmapAnon(next)
		return nil, err
	}
	return next, nil
}
