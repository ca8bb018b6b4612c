package xxregion

import (
	"errors"
	"fmt"

	"github.com/hupe1980/xxregion/internal/platform"
	"github.com/hupe1980/xxregion/region"
)

var (
	// ErrIndexOutOfRange is returned when a requested window exceeds a region.
	ErrIndexOutOfRange = region.ErrIndexOutOfRange
	// ErrInvalidArgument is returned for handles inconsistent with the
	// requested operation, e.g. the address of a heap buffer.
	ErrInvalidArgument = platform.ErrInvalidArgument
	// ErrPlatformAssumptionViolated is returned by every hashing call when
	// primitive array strides do not match their expected widths.
	ErrPlatformAssumptionViolated = platform.ErrAssumptionViolated
	// ErrUnknownAlgorithm is returned by New for unsupported names.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
)

// ErrSeedOverflow indicates a seed that does not fit the algorithm width.
type ErrSeedOverflow struct {
	Algorithm string
	Seed      uint64
}

func (e *ErrSeedOverflow) Error() string {
	return fmt.Sprintf("seed %#x overflows %s", e.Seed, e.Algorithm)
}

func (e *ErrSeedOverflow) Unwrap() error { return ErrInvalidArgument }
