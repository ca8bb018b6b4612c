// Package xxhash implements the 32-bit and 64-bit XxHash digests over
// region.Region values.
//
// The algorithms only read through the region contract, so a digest never
// depends on whether the bytes live on the heap or off-heap:
//
//	d, err := xxhash.Sum32(region.Wrap(data))
//	d, err := xxhash.Hash64(seed, r, offset, length)
//
// Every call is a pure function of (seed, bytes) and may run concurrently.
//
// The 32-bit variant uses prime constants whose top bit is cleared for the
// first three primes, so its digests differ from canonical XXH32. The 64-bit
// variant is canonical XXH64.
package xxhash
