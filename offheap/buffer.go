package offheap

import (
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"unsafe"

	"github.com/hupe1980/xxregion/internal/mmap"
)

// AccessPattern is a kernel hint for mapped buffers.
type AccessPattern = mmap.AccessPattern

// Access hints accepted by Buffer.Advise.
const (
	AccessDefault    = mmap.AccessDefault
	AccessSequential = mmap.AccessSequential
	AccessRandom     = mmap.AccessRandom
	AccessWillNeed   = mmap.AccessWillNeed
	AccessDontNeed   = mmap.AccessDontNeed
)

var (
	// ErrClosed is returned when using a closed buffer.
	ErrClosed = errors.New("offheap: buffer is closed")
	// ErrReadOnly is returned when writing into a read-only buffer.
	ErrReadOnly = errors.New("offheap: buffer is read-only")
)

// Buffer is a contiguous byte range, usually outside the Go heap.
type Buffer struct {
	mapping *mmap.Mapping
	ptr     unsafe.Pointer
	size    int
	direct  bool
	heap    []byte
	owner   any
	closed  atomic.Bool
}

func fromMapping(m *mmap.Mapping) *Buffer {
	b := &Buffer{
		mapping: m,
		ptr:     m.Pointer(),
		size:    m.Size(),
		direct:  true,
	}
	runtime.AddCleanup(b, func(m *mmap.Mapping) { _ = m.Close() }, m)
	return b
}

// Alloc returns a zeroed, writable off-heap buffer of size bytes.
func Alloc(size int) (*Buffer, error) {
	m, err := mmap.MapAnon(size)
	if err != nil {
		return nil, fmt.Errorf("offheap: alloc %d bytes: %w", size, err)
	}
	return fromMapping(m), nil
}

// FromBytes copies data into a new off-heap buffer.
func FromBytes(data []byte) (*Buffer, error) {
	b, err := Alloc(len(data))
	if err != nil {
		return nil, err
	}
	copy(b.Bytes(), data)
	return b, nil
}

// Map maps the file at path read-only.
func Map(path string) (*Buffer, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	return fromMapping(m), nil
}

// Wrap views size bytes of foreign memory at ptr. The memory must stay valid
// for as long as owner is reachable; the buffer keeps owner reachable for its
// own lifetime. Close does not free foreign memory.
func Wrap(ptr unsafe.Pointer, size int, owner any) (*Buffer, error) {
	if size < 0 {
		return nil, fmt.Errorf("offheap: negative size %d", size)
	}
	if ptr == nil && size > 0 {
		return nil, errors.New("offheap: nil pointer with non-zero size")
	}
	return &Buffer{ptr: ptr, size: size, direct: true, owner: owner}, nil
}

// Heap returns a non-direct buffer over data. It is never off-heap, so
// resolving its address fails.
func Heap(data []byte) *Buffer {
	return &Buffer{heap: data, size: len(data)}
}

// Direct reports whether the buffer lives outside the Go heap.
func (b *Buffer) Direct() bool {
	return b != nil && b.direct
}

// Pointer returns the base address of a direct buffer. It returns nil for
// heap buffers, empty buffers, and closed buffers.
func (b *Buffer) Pointer() unsafe.Pointer {
	if !b.direct || b.closed.Load() {
		return nil
	}
	return b.ptr
}

// Len returns the buffer size in bytes.
func (b *Buffer) Len() int {
	return b.size
}

// Bytes returns a slice view of the buffer, or nil once closed.
func (b *Buffer) Bytes() []byte {
	if b.closed.Load() {
		return nil
	}
	if !b.direct {
		return b.heap
	}
	if b.ptr == nil {
		return nil
	}
	return unsafe.Slice((*byte)(b.ptr), b.size)
}

// WriteAt copies p into the buffer at off. Only anonymous and heap buffers
// are writable.
func (b *Buffer) WriteAt(p []byte, off int64) (int, error) {
	if b.closed.Load() {
		return 0, ErrClosed
	}
	if b.mapping != nil && !b.mapping.Writable() {
		return 0, ErrReadOnly
	}
	if off < 0 || off > int64(b.size) || int64(len(p)) > int64(b.size)-off {
		return 0, fmt.Errorf("offheap: write [%d, %d) beyond size %d", off, off+int64(len(p)), b.size)
	}
	return copy(b.Bytes()[off:], p), nil
}

// Advise passes an access hint to the kernel for mapped buffers.
// It is a no-op for other buffers.
func (b *Buffer) Advise(pattern AccessPattern) error {
	if b.closed.Load() {
		return ErrClosed
	}
	if b.mapping == nil {
		return nil
	}
	return b.mapping.Advise(pattern)
}

// Close releases mapped memory. It is idempotent.
//
// Regions created from b with region.WrapOffHeap keep b reachable but not
// open: reading such a region after Close faults the process. Close a buffer
// only once no region over it is in use.
func (b *Buffer) Close() error {
	if b.closed.Swap(true) {
		return nil
	}
	if b.mapping != nil {
		return b.mapping.Close()
	}
	return nil
}
