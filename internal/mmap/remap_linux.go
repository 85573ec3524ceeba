package mmap

import "golang.org/x/sys/unix"

// osRemapAnon lets the kernel move the pages instead of copying them.
func osRemapAnon(buf []byte, size int) ([]byte, error) {
	return unix.Mremap(buf, size, unix.MREMAP_MAYMOVE)
}
