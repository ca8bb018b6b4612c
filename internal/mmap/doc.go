// Package mmap maps files and anonymous memory outside the Go heap.
//
//	m, err := mmap.Open("blob.bin")
//	if err != nil { ... }
//	defer m.Close()
//
//	data := m.Bytes() // zero-copy, valid until Close
//
// Anonymous mappings (MapAnon) are read-write and back off-heap scratch
// buffers. File mappings are read-only.
//
// On Unix the package uses mmap(2) and madvise(2); on Windows it uses
// CreateFileMapping/MapViewOfFile and VirtualAlloc, and Advise is a no-op.
//
// A Mapping may be read concurrently. Close is idempotent, but callers must
// make sure nothing touches the memory after Close returns.
package mmap
