package region

import (
	"encoding/binary"
	"unsafe"

	"github.com/hupe1980/xxregion/internal/platform"
)

// Kind identifies where a region's bytes live.
type Kind uint8

const (
	// KindHeap regions are backed by a Go slice.
	KindHeap Kind = iota
	// KindOffHeap regions are backed by an address outside the Go heap.
	KindOffHeap
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case KindHeap:
		return "heap"
	case KindOffHeap:
		return "off-heap"
	default:
		return "unknown"
	}
}

// Handle is an off-heap buffer that can back a region.
type Handle = platform.Handle

// Region is an immutable view of length bytes.
//
// For heap regions data holds the bytes. For off-heap regions base is the
// address of byte 0 and owner keeps the backing memory reachable.
type Region struct {
	kind   Kind
	data   []byte
	base   unsafe.Pointer
	length int
	owner  any
}

// Wrap returns a heap region over b without copying.
func Wrap(b []byte) Region {
	return Region{kind: KindHeap, data: b, length: len(b), owner: b}
}

// WrapString returns a heap region over the UTF-8 bytes of s without copying.
func WrapString(s string) Region {
	return Wrap(unsafe.Slice(unsafe.StringData(s), len(s)))
}

// WrapOffHeap returns an off-heap region over h. The handle is retained as the
// region's owner, which keeps it reachable but does not keep its memory
// mapped: the caller must not release h while the region is read. A read
// after the memory is unmapped is a fatal fault, not a recoverable panic.
func WrapOffHeap(h Handle) (Region, error) {
	base, err := platform.AddressOf(h)
	if err != nil {
		return Region{}, err
	}
	return Region{kind: KindOffHeap, base: base, length: h.Len(), owner: h}, nil
}

// Len returns the region length in bytes.
func (r Region) Len() int { return r.length }

// Kind returns the backing kind.
func (r Region) Kind() Kind { return r.kind }

// Owner returns the value keeping the backing memory alive.
func (r Region) Owner() any { return r.owner }

// Bytes returns the backing slice of a heap region.
func (r Region) Bytes() ([]byte, bool) {
	if r.kind != KindHeap {
		return nil, false
	}
	return r.data, true
}

// CheckWindow reports whether [offset, offset+length) lies inside the region.
func (r Region) CheckWindow(offset, length int) error {
	if offset < 0 || length < 0 || offset > r.length-length {
		return &RangeError{Offset: offset, Length: length, Size: r.length}
	}
	return nil
}

// Slice returns the sub-region [offset, offset+length). It shares the owner.
func (r Region) Slice(offset, length int) (Region, error) {
	if err := r.CheckWindow(offset, length); err != nil {
		return Region{}, err
	}
	out := Region{kind: r.kind, length: length, owner: r.owner}
	if r.kind == KindHeap {
		out.data = r.data[offset : offset+length]
	} else if length > 0 {
		out.base = unsafe.Add(r.base, offset)
	}
	return out, nil
}

// Uint8 returns the byte at offset.
func (r Region) Uint8(offset int) (uint8, error) {
	if err := r.CheckWindow(offset, 1); err != nil {
		return 0, err
	}
	if r.kind == KindHeap {
		return r.data[offset], nil
	}
	return platform.ReadU8(r.owner, unsafe.Add(r.base, offset)), nil
}

// Uint16 returns the little-endian uint16 at offset.
func (r Region) Uint16(offset int) (uint16, error) {
	if err := r.CheckWindow(offset, 2); err != nil {
		return 0, err
	}
	if r.kind == KindHeap {
		return binary.LittleEndian.Uint16(r.data[offset:]), nil
	}
	return platform.ReadU16(r.owner, unsafe.Add(r.base, offset)), nil
}

// Uint32 returns the little-endian uint32 at offset.
func (r Region) Uint32(offset int) (uint32, error) {
	if err := r.CheckWindow(offset, 4); err != nil {
		return 0, err
	}
	if r.kind == KindHeap {
		return binary.LittleEndian.Uint32(r.data[offset:]), nil
	}
	return platform.ReadU32(r.owner, unsafe.Add(r.base, offset)), nil
}

// Uint64 returns the little-endian uint64 at offset.
func (r Region) Uint64(offset int) (uint64, error) {
	if err := r.CheckWindow(offset, 8); err != nil {
		return 0, err
	}
	if r.kind == KindHeap {
		return binary.LittleEndian.Uint64(r.data[offset:]), nil
	}
	return platform.ReadU64(r.owner, unsafe.Add(r.base, offset)), nil
}
