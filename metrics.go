package xxregion

import (
	"sync/atomic"
	"time"
)

// MetricsCollector receives operational metrics from the digest service.
// Implement it to forward to a monitoring system.
type MetricsCollector interface {
	// RecordDigest is called after each blob digest with the number of bytes
	// hashed, the total time taken, and the error if it failed.
	RecordDigest(bytes int64, duration time.Duration, err error)

	// RecordBatch is called after each batch with the number of blobs
	// attempted and the number that failed.
	RecordBatch(count, failed int, duration time.Duration)
}

// NoopMetricsCollector discards all metrics.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordDigest(int64, time.Duration, error) {}
func (NoopMetricsCollector) RecordBatch(int, int, time.Duration)      {}

// BasicMetricsCollector keeps simple in-memory counters.
type BasicMetricsCollector struct {
	DigestCount      atomic.Int64
	DigestErrors     atomic.Int64
	DigestBytes      atomic.Int64
	DigestTotalNanos atomic.Int64
	BatchCount       atomic.Int64
	BatchItems       atomic.Int64
	BatchFailed      atomic.Int64
}

// RecordDigest implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDigest(bytes int64, duration time.Duration, err error) {
	b.DigestCount.Add(1)
	b.DigestTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.DigestErrors.Add(1)
		return
	}
	b.DigestBytes.Add(bytes)
}

// RecordBatch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatch(count, failed int, _ time.Duration) {
	b.BatchCount.Add(1)
	b.BatchItems.Add(int64(count))
	b.BatchFailed.Add(int64(failed))
}

// Throughput returns the average hashing throughput in bytes per second.
func (b *BasicMetricsCollector) Throughput() float64 {
	nanos := b.DigestTotalNanos.Load()
	if nanos == 0 {
		return 0
	}
	return float64(b.DigestBytes.Load()) / time.Duration(nanos).Seconds()
}
