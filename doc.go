// Package xxregion computes XxHash digests over byte regions that live on the
// Go heap or off-heap, through one read path.
//
// # Quick Start
//
//	h := xxregion.NewXxHash32(0)
//	d, _ := h.Hash([]byte("hello"))
//	fmt.Println(xxregion.FormatDigest(h, d))
//
// Off-heap bytes (anonymous or file mappings) are hashed without copying:
//
//	buf, _ := offheap.Map("blob.bin")
//	defer buf.Close()
//	r, _ := region.WrapOffHeap(buf)
//	d, _ := xxregion.NewXxHash64(0).HashRegion(r, 0, r.Len())
//
// The digest never depends on where the bytes live.
//
// # Packages
//
//   - region: immutable bounds-checked views (heap or off-heap)
//   - offheap: off-heap buffers (anonymous mmap, file mmap, foreign memory)
//   - xxhash: the 32-bit and 64-bit algorithms
//   - blobstore: local, in-memory, S3 and MinIO byte sources
//   - digest: digests blobs and checks them against a ledger
//   - collision: digest collision counting
//
// # Errors
//
// Hashing fails only with ErrIndexOutOfRange (a caller bug) or
// ErrPlatformAssumptionViolated (the process cannot hash at all). Neither is
// retryable.
package xxregion
