// Package digest computes XxHash digests of blobs held in a blobstore.
//
// Memory-mapped blobs are hashed in place through an off-heap region. Other
// blobs are streamed in chunks into a scratch buffer, outside the Go heap by
// default, and hashed once complete. Blobs named *.zst or *.lz4 can be
// decompressed on the way in.
//
// A Ledger remembers digests so that later runs can verify them:
//
//	svc, _ := digest.NewService(blobstore.NewLocalStore("dist"))
//	results, _ := svc.Record(ctx, ledger, names)
//	checks, err := svc.Verify(ctx, ledger, names)
package digest
