// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("artifacts/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	svc := digest.NewService(store)
//
// # Features
//
//   - Range reads for chunked digests
//   - Multipart uploads with CRC32C checksums
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
