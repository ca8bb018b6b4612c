// Package blobstore provides the byte sources digests are computed over.
//
// BlobStore is the interface for reading and writing immutable blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, blobs are memory-mapped (Mappable)
//   - MemoryStore: in-memory, for tests
//   - s3.Store: Amazon S3 with range reads and multipart uploads
//   - minio.Store: MinIO and other S3-compatible servers
//
// Blobs that implement Mappable expose an off-heap buffer and can be hashed
// without copying. All other blobs are read through ReadAt.
package blobstore
