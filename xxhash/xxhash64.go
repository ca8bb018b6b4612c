package xxhash

import (
	"math/bits"

	"github.com/hupe1980/xxregion/internal/platform"
	"github.com/hupe1980/xxregion/region"
)

const (
	prime64x1 uint64 = 0x9E3779B185EBCA87
	prime64x2 uint64 = 0xC2B2AE3D27D4EB4F
	prime64x3 uint64 = 0x165667B19E3779F9
	prime64x4 uint64 = 0x85EBCA77C2B2AE63
	prime64x5 uint64 = 0x27D4EB2F165667C5
)

// Size64 is the 64-bit digest size in bytes.
const Size64 = 8

func round64(acc, input uint64) uint64 {
	acc += input * prime64x2
	acc = bits.RotateLeft64(acc, 31)
	return acc * prime64x1
}

func mergeRound64(acc, val uint64) uint64 {
	acc ^= round64(0, val)
	return acc*prime64x1 + prime64x4
}

func avalanche64(h uint64) uint64 {
	h ^= h >> 33
	h *= prime64x2
	h ^= h >> 29
	h *= prime64x3
	h ^= h >> 32
	return h
}

// Hash64 returns the 64-bit digest of r[offset:offset+length] with seed.
func Hash64(seed uint64, r region.Region, offset, length int) (uint64, error) {
	if err := platform.Validate(); err != nil {
		return 0, err
	}
	if err := r.CheckWindow(offset, length); err != nil {
		return 0, err
	}

	c := cursor{r: r, pos: offset}
	end := offset + length

	var h uint64
	if length >= 32 {
		v1 := seed + prime64x1 + prime64x2
		v2 := seed + prime64x2
		v3 := seed
		v4 := seed - prime64x1

		for end-c.pos >= 32 {
			v1 = round64(v1, c.u64())
			v2 = round64(v2, c.u64())
			v3 = round64(v3, c.u64())
			v4 = round64(v4, c.u64())
		}

		h = bits.RotateLeft64(v1, 1) + bits.RotateLeft64(v2, 7) +
			bits.RotateLeft64(v3, 12) + bits.RotateLeft64(v4, 18)
		h = mergeRound64(h, v1)
		h = mergeRound64(h, v2)
		h = mergeRound64(h, v3)
		h = mergeRound64(h, v4)
	} else {
		h = seed + prime64x5
	}

	h += uint64(length)

	for end-c.pos >= 8 {
		h ^= round64(0, c.u64())
		h = bits.RotateLeft64(h, 27)*prime64x1 + prime64x4
	}
	if end-c.pos >= 4 {
		h ^= uint64(c.u32()) * prime64x1
		h = bits.RotateLeft64(h, 23)*prime64x2 + prime64x3
	}
	for c.pos < end {
		h ^= uint64(c.u8()) * prime64x5
		h = bits.RotateLeft64(h, 11) * prime64x1
	}

	if c.err != nil {
		return 0, c.err
	}
	return avalanche64(h), nil
}

// Sum64 returns the 64-bit digest of the whole region with seed 0.
func Sum64(r region.Region) (uint64, error) {
	return Hash64(0, r, 0, r.Len())
}

// Sum64Bytes returns the 64-bit digest of b with seed 0.
func Sum64Bytes(b []byte) (uint64, error) {
	return Sum64(region.Wrap(b))
}

// Sum64String returns the 64-bit digest of the UTF-8 bytes of s with seed 0.
func Sum64String(s string) (uint64, error) {
	return Sum64(region.WrapString(s))
}
