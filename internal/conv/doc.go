// Package conv provides checked integer conversions.
//
// Use cases:
//   - Blob sizes reported as int64 by stores, used as in-memory lengths
//   - 64-bit seeds narrowed for the 32-bit hash
//
// For conversions that are provably safe by domain constraints, use direct
// type casts instead.
package conv
