// Package offheap constructs byte buffers that live outside the Go heap.
//
// A Buffer is the handle that region.WrapOffHeap accepts. Buffers come from
// anonymous mappings (Alloc, FromBytes), read-only file mappings (Map), or
// foreign memory whose lifetime is tied to an owner value (Wrap). Heap
// returns a non-direct Buffer over an ordinary slice; it exists so callers
// can hold one handle type for both kinds.
//
// # Lifetime
//
// Mapped buffers are released by Close. A mapped buffer that becomes
// unreachable without being closed is unmapped by a GC cleanup, so any code
// reading through a buffer's address must keep the buffer reachable until the
// read completes. Regions do this by holding the buffer as their owner.
package offheap
