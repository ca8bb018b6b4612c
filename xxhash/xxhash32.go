package xxhash

import (
	"math/bits"

	"github.com/hupe1980/xxregion/internal/platform"
	"github.com/hupe1980/xxregion/region"
)

// Digests depend on these exact values; prime32x1..3 are the XXH32 primes
// with bit 31 cleared.
const (
	prime32x1 uint32 = 506952113
	prime32x2 uint32 = 99338871
	prime32x3 uint32 = 1119006269
	prime32x4 uint32 = 668265263
	prime32x5 uint32 = 374761393
)

// Size32 is the 32-bit digest size in bytes.
const Size32 = 4

func round32(acc, input uint32) uint32 {
	return bits.RotateLeft32(acc+input*prime32x2, 13) * prime32x1
}

func avalanche32(h uint32) uint32 {
	h ^= h >> 15
	h *= prime32x2
	h ^= h >> 13
	h *= prime32x3
	h ^= h >> 16
	return h
}

// Hash32 returns the 32-bit digest of r[offset:offset+length] with seed.
func Hash32(seed uint32, r region.Region, offset, length int) (uint32, error) {
	if err := platform.Validate(); err != nil {
		return 0, err
	}
	if err := r.CheckWindow(offset, length); err != nil {
		return 0, err
	}

	c := cursor{r: r, pos: offset}
	end := offset + length

	var h uint32
	if length >= 16 {
		v1 := seed + prime32x1 + prime32x2
		v2 := seed + prime32x2
		v3 := seed
		v4 := seed - prime32x1

		for end-c.pos >= 16 {
			v1 = round32(v1, c.u32())
			v2 = round32(v2, c.u32())
			v3 = round32(v3, c.u32())
			v4 = round32(v4, c.u32())
		}

		h = bits.RotateLeft32(v1, 1) + bits.RotateLeft32(v2, 7) +
			bits.RotateLeft32(v3, 12) + bits.RotateLeft32(v4, 18)
	} else {
		h = seed + prime32x5
	}

	h += uint32(length)

	for end-c.pos >= 4 {
		h = bits.RotateLeft32(h+c.u32()*prime32x3, 17) * prime32x4
	}
	for c.pos < end {
		h = bits.RotateLeft32(h+uint32(c.u8())*prime32x5, 11) * prime32x1
	}

	if c.err != nil {
		return 0, c.err
	}
	return avalanche32(h), nil
}

// Sum32 returns the 32-bit digest of the whole region with seed 0.
func Sum32(r region.Region) (uint32, error) {
	return Hash32(0, r, 0, r.Len())
}

// Sum32Bytes returns the 32-bit digest of b with seed 0.
func Sum32Bytes(b []byte) (uint32, error) {
	return Sum32(region.Wrap(b))
}

// Sum32String returns the 32-bit digest of the UTF-8 bytes of s with seed 0.
func Sum32String(s string) (uint32, error) {
	return Sum32(region.WrapString(s))
}
