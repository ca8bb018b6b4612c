package region

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned when a requested window exceeds a region.
var ErrIndexOutOfRange = errors.New("index out of range")

// RangeError describes an out-of-range window.
type RangeError struct {
	Offset int
	Length int
	Size   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("region: window [%d, %d+%d) out of range for length %d", e.Offset, e.Offset, e.Length, e.Size)
}

func (e *RangeError) Unwrap() error { return ErrIndexOutOfRange }
