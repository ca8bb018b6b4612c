package digest

import (
	"github.com/hupe1980/xxregion"
)

// DefaultChunkSize is the read size for blobs that cannot be mapped.
const DefaultChunkSize = 4 << 20

type options struct {
	hasher         xxregion.RegionHasher
	logger         *xxregion.Logger
	metrics        xxregion.MetricsCollector
	concurrency    int
	chunkSize      int
	memoryLimit    int64
	ioLimit        int64
	decompress     bool
	offHeapScratch bool
}

func defaultOptions() options {
	return options{
		hasher:         xxregion.NewXxHash64(0),
		logger:         xxregion.NoopLogger(),
		metrics:        xxregion.NoopMetricsCollector{},
		concurrency:    4,
		chunkSize:      DefaultChunkSize,
		offHeapScratch: true,
	}
}

// Option configures a Service.
type Option func(*options)

// WithHasher sets the digest algorithm. Defaults to XXH64 with seed 0.
func WithHasher(h xxregion.RegionHasher) Option {
	return func(o *options) {
		if h != nil {
			o.hasher = h
		}
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *xxregion.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m xxregion.MetricsCollector) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithConcurrency bounds the number of blobs digested at once. Defaults to 4.
func WithConcurrency(n int) Option {
	return func(o *options) { o.concurrency = n }
}

// WithChunkSize sets the read size for streamed blobs.
func WithChunkSize(n int) Option {
	return func(o *options) { o.chunkSize = n }
}

// WithMemoryLimit caps the scratch memory held by in-flight digests.
// Zero means unlimited.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) { o.memoryLimit = bytes }
}

// WithIOLimit caps the read rate in bytes per second. Zero means unlimited.
func WithIOLimit(bytesPerSec int64) Option {
	return func(o *options) { o.ioLimit = bytesPerSec }
}

// WithDecompression hashes the decompressed contents of *.zst and *.lz4 blobs.
func WithDecompression(enabled bool) Option {
	return func(o *options) { o.decompress = enabled }
}

// WithOffHeapScratch controls whether streamed blobs are assembled in
// anonymous mappings (the default) or on the Go heap.
func WithOffHeapScratch(enabled bool) Option {
	return func(o *options) { o.offHeapScratch = enabled }
}
