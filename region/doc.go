// Package region provides an immutable, bounds-checked view over a contiguous
// byte range that lives either on the Go heap or off-heap.
//
// Both kinds return identical values for identical bytes, so code written
// against Region never needs to know where the bytes live:
//
//	r := region.Wrap(data)               // heap
//	r, err := region.WrapOffHeap(buf)    // off-heap (*offheap.Buffer)
//
//	v, err := r.Uint32(12)               // little-endian
package region
