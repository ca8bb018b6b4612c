package platform

import (
	"encoding/binary"
	"fmt"
	"runtime"
	"unsafe"
)

// Handle is an off-heap buffer whose base address can be resolved.
type Handle interface {
	// Direct reports whether the buffer lives outside the Go heap.
	Direct() bool
	// Pointer returns the base address, or nil for empty buffers.
	Pointer() unsafe.Pointer
	// Len returns the capacity in bytes.
	Len() int
}

// AddressOf returns the base address backing an off-heap handle.
func AddressOf(h Handle) (unsafe.Pointer, error) {
	if h == nil {
		return nil, fmt.Errorf("%w: nil handle", ErrInvalidArgument)
	}
	if !h.Direct() {
		return nil, fmt.Errorf("%w: handle is not off-heap backed", ErrInvalidArgument)
	}
	p := h.Pointer()
	if p == nil && h.Len() > 0 {
		return nil, fmt.Errorf("%w: handle has no backing memory", ErrInvalidArgument)
	}
	return p, nil
}

// ReadU8 reads one byte at p.
func ReadU8(owner any, p unsafe.Pointer) uint8 {
	v := *(*uint8)(p)
	runtime.KeepAlive(owner)
	return v
}

// ReadU16 reads a little-endian uint16 at p. p need not be aligned.
func ReadU16(owner any, p unsafe.Pointer) uint16 {
	var v uint16
	if native.Load() {
		v = *(*uint16)(p)
	} else {
		v = binary.LittleEndian.Uint16(unsafe.Slice((*byte)(p), 2))
	}
	runtime.KeepAlive(owner)
	return v
}

// ReadU32 reads a little-endian uint32 at p. p need not be aligned.
func ReadU32(owner any, p unsafe.Pointer) uint32 {
	var v uint32
	if native.Load() {
		v = *(*uint32)(p)
	} else {
		v = binary.LittleEndian.Uint32(unsafe.Slice((*byte)(p), 4))
	}
	runtime.KeepAlive(owner)
	return v
}

// ReadU64 reads a little-endian uint64 at p. p need not be aligned.
func ReadU64(owner any, p unsafe.Pointer) uint64 {
	var v uint64
	if native.Load() {
		v = *(*uint64)(p)
	} else {
		v = binary.LittleEndian.Uint64(unsafe.Slice((*byte)(p), 8))
	}
	runtime.KeepAlive(owner)
	return v
}
