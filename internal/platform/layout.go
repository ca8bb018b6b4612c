package platform

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/cpu"
)

var (
	// ErrAssumptionViolated is returned when the platform memory layout does
	// not match what raw address arithmetic requires.
	ErrAssumptionViolated = errors.New("platform: memory layout assumption violated")
	// ErrInvalidArgument is returned for handles or arguments inconsistent
	// with the requested operation.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Stride is the observed distance between two consecutive array elements.
type Stride struct {
	Kind string
	Want uintptr
	Got  uintptr
}

// Info is the immutable result of layout validation.
type Info struct {
	PointerSize uintptr
	BigEndian   bool
	// NativeLoads reports whether raw reads load whole words instead of
	// decoding bytes. Only little-endian hosts with unaligned loads qualify.
	NativeLoads bool
	Strides     []Stride
}

// LayoutError lists every element kind whose stride did not match.
type LayoutError struct {
	Mismatches []Stride
}

func (e *LayoutError) Error() string {
	parts := make([]string, 0, len(e.Mismatches))
	for _, m := range e.Mismatches {
		parts = append(parts, fmt.Sprintf("%s: want %d, got %d", m.Kind, m.Want, m.Got))
	}
	return fmt.Sprintf("%s (%s)", ErrAssumptionViolated, strings.Join(parts, "; "))
}

func (e *LayoutError) Unwrap() error { return ErrAssumptionViolated }

// Package-level state, written once by Validate.
var (
	once     sync.Once
	info     Info
	layoutEr error
	native   atomic.Bool

	observer = observe
)

// Validate checks primitive array strides. The check runs exactly once;
// concurrent first callers block until it finishes and all observe the same
// result.
func Validate() error {
	once.Do(func() {
		info, layoutEr = check(observer())
		native.Store(layoutEr == nil && info.NativeLoads)
	})
	return layoutEr
}

// ResetForTesting discards the cached validation result and makes the next
// Validate use the strides returned by p. A nil p restores the real
// measurement. It must not run concurrently with Validate.
func ResetForTesting(p func() []Stride) {
	if p == nil {
		p = observe
	}
	observer = p
	once = sync.Once{}
	info = Info{}
	layoutEr = nil
	native.Store(false)
}

// Layout returns the validated layout snapshot together with the validation
// result.
func Layout() (Info, error) {
	err := Validate()
	return info, err
}

func elemStride[T any]() uintptr {
	var a [2]T
	return uintptr(unsafe.Pointer(&a[1])) - uintptr(unsafe.Pointer(&a[0])) //nolint:gosec // stride measurement
}

func observe() []Stride {
	return []Stride{
		{Kind: "bool", Want: 1, Got: elemStride[bool]()},
		{Kind: "uint8", Want: 1, Got: elemStride[uint8]()},
		{Kind: "int16", Want: 2, Got: elemStride[int16]()},
		{Kind: "uint16", Want: 2, Got: elemStride[uint16]()},
		{Kind: "int32", Want: 4, Got: elemStride[int32]()},
		{Kind: "rune", Want: 4, Got: elemStride[rune]()},
		{Kind: "float32", Want: 4, Got: elemStride[float32]()},
		{Kind: "int64", Want: 8, Got: elemStride[int64]()},
		{Kind: "uint64", Want: 8, Got: elemStride[uint64]()},
		{Kind: "float64", Want: 8, Got: elemStride[float64]()},
	}
}

func check(strides []Stride) (Info, error) {
	out := Info{
		PointerSize: unsafe.Sizeof(uintptr(0)),
		BigEndian:   cpu.IsBigEndian,
		NativeLoads: unalignedLoads && !cpu.IsBigEndian,
		Strides:     strides,
	}

	var bad []Stride
	for _, s := range strides {
		if s.Got != s.Want {
			bad = append(bad, s)
		}
	}
	if len(bad) > 0 {
		return out, &LayoutError{Mismatches: bad}
	}
	return out, nil
}
