// Command xxsum prints or checks XxHash digests of files and object-store
// blobs.
//
// Usage:
//
//	xxsum [options] names...
//	xxsum -w SUMS dist/*.tar       # record
//	xxsum -c SUMS                  # verify every entry in SUMS
//	xxsum -s3 my-bucket -prefix releases/ -a xxh32 app.tar.zst
//
// XXSUM_ALGO and XXSUM_SEED provide defaults for -a and -seed.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
