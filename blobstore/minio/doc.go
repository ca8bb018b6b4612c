// Package minio provides a blobstore.BlobStore for MinIO and other
// S3-compatible servers.
//
// # Usage
//
//	store, err := minio.New("localhost:9000", "artifacts",
//	    minio.WithCredentials("minioadmin", "minioadmin"),
//	    minio.WithPrefix("builds/"),
//	)
//
// Without WithCredentials the MINIO_ACCESS_KEY and MINIO_SECRET_KEY
// environment variables are used.
package minio
