package mmap

import (
	"os"
	"sync/atomic"
	"unsafe"
)

// Mapping is a region of memory mapped outside the Go heap.
// It owns the memory and unmaps it on Close.
type Mapping struct {
	data     []byte
	size     int
	writable bool
	closed   atomic.Bool
	unmap    func([]byte) error
}

// Open maps the file at path read-only. Empty files yield an empty mapping
// that holds no memory.
func Open(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	size := fi.Size()
	if size < 0 || int64(int(size)) != size {
		return nil, ErrInvalidSize
	}
	if size == 0 {
		return &Mapping{}, nil
	}

	data, unmap, err := osMap(f, int(size))
	if err != nil {
		return nil, err
	}
	return &Mapping{data: data, size: int(size), unmap: unmap}, nil
}

// MapAnon maps size bytes of zeroed, read-write anonymous memory.
func MapAnon(size int) (*Mapping, error) {
	if size < 0 {
		return nil, ErrInvalidSize
	}
	if size == 0 {
		return &Mapping{writable: true}, nil
	}

	data, unmap, err := osMapAnon(size)
	if err != nil {
		return nil, err
	}
	return &Mapping{data: data, size: size, writable: true, unmap: unmap}, nil
}

// Close unmaps the memory. It is idempotent.
func (m *Mapping) Close() error {
	if m.closed.Swap(true) {
		return nil
	}
	if m.unmap != nil && m.data != nil {
		return m.unmap(m.data)
	}
	return nil
}

// Bytes returns the mapped memory, or nil after Close.
// Anonymous mappings may be written through the returned slice.
func (m *Mapping) Bytes() []byte {
	if m.closed.Load() {
		return nil
	}
	return m.data
}

// Pointer returns the base address of the mapping, or nil if the mapping is
// empty or closed.
func (m *Mapping) Pointer() unsafe.Pointer {
	if m.closed.Load() || len(m.data) == 0 {
		return nil
	}
	return unsafe.Pointer(unsafe.SliceData(m.data))
}

// Size returns the mapping size in bytes.
func (m *Mapping) Size() int {
	return m.size
}

// Writable reports whether the mapping was created read-write.
func (m *Mapping) Writable() bool {
	return m.writable
}

// Advise passes an access hint for the whole mapping to the kernel.
func (m *Mapping) Advise(pattern AccessPattern) error {
	if m.closed.Load() {
		return ErrClosed
	}
	if m.data == nil {
		return nil
	}
	return osAdvise(m.data, pattern)
}
