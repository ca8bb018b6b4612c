package testutil

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/hupe1980/xxregion/internal/platform"
	"github.com/hupe1980/xxregion/offheap"
	"github.com/hupe1980/xxregion/region"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Fill fills dst with random bytes.
// Locks only once per call.
func (r *RNG) Fill(dst []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = r.rand.Read(dst)
}

// Bytes returns n random bytes.
func (r *RNG) Bytes(n int) []byte {
	b := make([]byte, n)
	r.Fill(b)
	return b
}

// Blobs returns num random blobs with lengths in [0, maxLen].
// Uses a single backing array for efficiency.
func (r *RNG) Blobs(num, maxLen int) [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	lens := make([]int, num)
	total := 0
	for i := range lens {
		lens[i] = r.rand.Intn(maxLen + 1)
		total += lens[i]
	}

	data := make([]byte, total)
	_, _ = r.rand.Read(data)

	blobs := make([][]byte, num)
	off := 0
	for i, n := range lens {
		blobs[i] = data[off : off+n : off+n]
		off += n
	}
	return blobs
}

// OffHeapRegion copies data into an anonymous mapping and returns a region
// over it. The mapping is released when the test ends.
func OffHeapRegion(tb testing.TB, data []byte) region.Region {
	tb.Helper()
	buf, err := offheap.FromBytes(data)
	if err != nil {
		tb.Fatalf("offheap.FromBytes: %v", err)
	}
	tb.Cleanup(func() { _ = buf.Close() })

	r, err := region.WrapOffHeap(buf)
	if err != nil {
		tb.Fatalf("region.WrapOffHeap: %v", err)
	}
	return r
}

// Regions returns a heap and an off-heap region over copies of data, keyed by
// backing kind.
func Regions(tb testing.TB, data []byte) map[string]region.Region {
	tb.Helper()
	heap := region.Wrap(append([]byte(nil), data...))
	return map[string]region.Region{
		heap.Kind().String():        heap,
		region.KindOffHeap.String(): OffHeapRegion(tb, data),
	}
}

// BreakLayout makes platform validation report an int64 stride mismatch until
// the test ends. Tests using it must not run in parallel.
func BreakLayout(tb testing.TB) {
	tb.Helper()
	platform.ResetForTesting(func() []platform.Stride {
		return []platform.Stride{{Kind: "int64", Want: 8, Got: 16}}
	})
	tb.Cleanup(func() { platform.ResetForTesting(nil) })
}
