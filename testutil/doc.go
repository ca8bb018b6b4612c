// Package testutil provides testing utilities for xxregion.
//
// This package is intended for use in tests and benchmarks only.
//
// # Random Inputs
//
//	rng := testutil.NewRNG(seed)
//	data := rng.Bytes(1 << 20)
//
// # Backings
//
//	for name, r := range testutil.Regions(t, data) {
//	    // r is a heap or off-heap region over the same bytes
//	}
//
// # Layout Failures
//
// BreakLayout forces platform validation to fail for the rest of a test, so
// the refusal paths of hashing entry points can be exercised.
package testutil
