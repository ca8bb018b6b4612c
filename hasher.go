package xxregion

import (
	"fmt"
	"strings"

	"github.com/hupe1980/xxregion/internal/conv"
	"github.com/hupe1980/xxregion/region"
	"github.com/hupe1980/xxregion/xxhash"
)

// Algorithm names accepted by New.
const (
	XXH32 = "xxh32"
	XXH64 = "xxh64"
)

// Hasher digests a byte slice. Digests of narrower algorithms are
// zero-extended to uint64.
type Hasher interface {
	// Hash returns the digest of data.
	Hash(data []byte) (uint64, error)
	// Size returns the digest width in bytes.
	Size() int
	// Name returns the algorithm name.
	Name() string
}

// RegionHasher can also digest a window of a region without copying it.
type RegionHasher interface {
	Hasher
	HashRegion(r region.Region, offset, length int) (uint64, error)
}

// XxHash32 is the 32-bit XxHash with a fixed seed.
type XxHash32 struct {
	seed uint32
}

// NewXxHash32 returns a 32-bit hasher.
func NewXxHash32(seed uint32) *XxHash32 {
	return &XxHash32{seed: seed}
}

// Hash implements Hasher.
func (h *XxHash32) Hash(data []byte) (uint64, error) {
	return h.HashRegion(region.Wrap(data), 0, len(data))
}

// HashString digests the UTF-8 bytes of s.
func (h *XxHash32) HashString(s string) (uint64, error) {
	r := region.WrapString(s)
	return h.HashRegion(r, 0, r.Len())
}

// HashRegion implements RegionHasher.
func (h *XxHash32) HashRegion(r region.Region, offset, length int) (uint64, error) {
	d, err := xxhash.Hash32(h.seed, r, offset, length)
	return uint64(d), err
}

// Size implements Hasher.
func (h *XxHash32) Size() int { return xxhash.Size32 }

// Name implements Hasher.
func (h *XxHash32) Name() string { return XXH32 }

// Seed returns the configured seed.
func (h *XxHash32) Seed() uint32 { return h.seed }

// XxHash64 is the 64-bit XxHash with a fixed seed.
type XxHash64 struct {
	seed uint64
}

// NewXxHash64 returns a 64-bit hasher.
func NewXxHash64(seed uint64) *XxHash64 {
	return &XxHash64{seed: seed}
}

// Hash implements Hasher.
func (h *XxHash64) Hash(data []byte) (uint64, error) {
	return h.HashRegion(region.Wrap(data), 0, len(data))
}

// HashString digests the UTF-8 bytes of s.
func (h *XxHash64) HashString(s string) (uint64, error) {
	r := region.WrapString(s)
	return h.HashRegion(r, 0, r.Len())
}

// HashRegion implements RegionHasher.
func (h *XxHash64) HashRegion(r region.Region, offset, length int) (uint64, error) {
	return xxhash.Hash64(h.seed, r, offset, length)
}

// Size implements Hasher.
func (h *XxHash64) Size() int { return xxhash.Size64 }

// Name implements Hasher.
func (h *XxHash64) Name() string { return XXH64 }

// Seed returns the configured seed.
func (h *XxHash64) Seed() uint64 { return h.seed }

// New returns the hasher registered under name ("xxh32" or "xxh64").
func New(name string, seed uint64) (RegionHasher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case XXH32:
		s, err := conv.Uint64ToUint32(seed)
		if err != nil {
			return nil, &ErrSeedOverflow{Algorithm: XXH32, Seed: seed}
		}
		return NewXxHash32(s), nil
	case XXH64:
		return NewXxHash64(seed), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

// FormatDigest renders d as fixed-width lowercase hex for h's digest size.
func FormatDigest(h Hasher, d uint64) string {
	return fmt.Sprintf("%0*x", 2*h.Size(), d)
}
