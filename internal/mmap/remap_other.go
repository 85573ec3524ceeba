//go:build !linux

package mmap

func osRemapAnon(buf []byte, size int) ([]byte, error) {
	return copyRemap(buf, size)
}
