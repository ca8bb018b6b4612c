// Package collision counts digest collisions over a corpus. It is used to
// check that a hasher's output is spread the way its width predicts.
package collision

import (
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/xxregion"
)

// Counter tracks distinct digests.
type Counter interface {
	// Add records d and reports whether it was new.
	Add(d uint64) bool
	// Collisions returns the number of Add calls that hit a seen digest.
	Collisions() int
	// Total returns the number of Add calls.
	Total() int
}

// NewCounter returns a Counter for digests of size bytes. 32-bit digests are
// tracked in a roaring bitmap; wider digests in a hash set.
func NewCounter(size int) (Counter, error) {
	switch size {
	case 4:
		return &bitmapCounter{seen: roaring.New()}, nil
	case 8:
		return &setCounter{seen: make(map[uint64]struct{})}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported digest size %d", xxregion.ErrInvalidArgument, size)
	}
}

type bitmapCounter struct {
	seen       *roaring.Bitmap
	total      int
	collisions int
}

func (c *bitmapCounter) Add(d uint64) bool {
	c.total++
	if d > math.MaxUint32 || !c.seen.CheckedAdd(uint32(d)) {
		c.collisions++
		return false
	}
	return true
}

func (c *bitmapCounter) Collisions() int { return c.collisions }
func (c *bitmapCounter) Total() int      { return c.total }

type setCounter struct {
	seen       map[uint64]struct{}
	total      int
	collisions int
}

func (c *setCounter) Add(d uint64) bool {
	c.total++
	if _, ok := c.seen[d]; ok {
		c.collisions++
		return false
	}
	c.seen[d] = struct{}{}
	return true
}

func (c *setCounter) Collisions() int { return c.collisions }
func (c *setCounter) Total() int      { return c.total }

// Count hashes gen(0) through gen(n-1) with h and returns the number of
// collisions.
func Count(h xxregion.Hasher, n int, gen func(i int) []byte) (int, error) {
	c, err := NewCounter(h.Size())
	if err != nil {
		return 0, err
	}
	for i := range n {
		d, err := h.Hash(gen(i))
		if err != nil {
			return 0, err
		}
		c.Add(d)
	}
	return c.Collisions(), nil
}
