package xxhash

import (
	"strconv"
	"sync"
	"testing"
	"testing/quick"

	cespare "github.com/cespare/xxhash/v2"
	"github.com/hupe1980/xxregion/internal/platform"
	"github.com/hupe1980/xxregion/region"
	"github.com/hupe1980/xxregion/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSeed = 0x9747b28c

func pattern(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i*7 + 3)
	}
	return b
}

var vectors = []struct {
	name        string
	input       []byte
	sum32       uint32
	sum32Seeded uint32
	sum64       uint64
	sum64Seeded uint64
}{
	{"empty", []byte{}, 0xbbc0e409, 0x462f89cc, 0xef46db3751d8e999, 0x495a197c8d074e3d},
	{"a", []byte("a"), 0x0e012f5a, 0x59c3aa60, 0xd24ec4f1a98c6e5b, 0x0c7350bffbfe1681},
	{"abc", []byte("abc"), 0x059d36a4, 0xeffb09ed, 0x44bc2cf5ad770999, 0x7d79a0222a9406c7},
	{"abcd", []byte("abcd"), 0xced05ca9, 0x7ecff245, 0xde0327b0d25d92cc, 0xcdb94fd287d80311},
	{"15 bytes", []byte("0123456789abcde"), 0x6be65424, 0x31d990fb, 0x4bb51a30968e6a4d, 0x7f77275cbfd4077a},
	{"16 bytes", []byte("0123456789abcdef"), 0x31ec8201, 0x6ee92f1a, 0x5c5b90c34e376d0b, 0x0ddb774a82d32a38},
	{"17 bytes", []byte("0123456789abcdefg"), 0x44252b3d, 0xa896a039, 0x8036ee70cd0a1505, 0xc3cbfa9a0898345b},
	{"pattern 31", pattern(31), 0x5f56b0b0, 0xc7215be8, 0xa2aa5f33cc4a6119, 0x5450d0521f8c59ac},
	{"pattern 32", pattern(32), 0xcbb91845, 0x458b6c2e, 0x23c3c17ef790fd97, 0x10546f6ab79e9525},
	{"pattern 33", pattern(33), 0xfd58660f, 0x348c57ad, 0x50a7cfc7ba588784, 0x5dddac6f63bf8252},
	{"pattern 64", pattern(64), 0x57cfbf01, 0xd87a309f, 0x0eb64b3ef6eeb01f, 0x81fdca302a643d15},
	{"pattern 100", pattern(100), 0x22f0df36, 0xeee48e05, 0xa61f8d4c170fe531, 0x4d3d8eef93c9705a},
	{"pattern 257", pattern(257), 0xf3f7e30f, 0x28c11348, 0xb7b604f7e4f822fa, 0x1604b491c57d0907},
}

func TestSum32_KnownStrings(t *testing.T) {
	tests := []struct {
		input string
		want  uint32
	}{
		{"http://host%s.foo.com", 0x5f627d81},
		{"http://stackoverflow.com/questions/%s/convert-from-byte-array-to-hex-string-in-java", 0xbd37dd97},
	}
	for _, tt := range tests {
		got, err := Sum32String(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%q", tt.input)
	}
}

func TestVectors(t *testing.T) {
	for _, v := range vectors {
		t.Run(v.name, func(t *testing.T) {
			for _, r := range []region.Region{region.Wrap(v.input), testutil.OffHeapRegion(t, v.input)} {
				got32, err := Sum32(r)
				require.NoError(t, err)
				assert.Equal(t, v.sum32, got32, "sum32 %s", r.Kind())

				got32, err = Hash32(testSeed, r, 0, r.Len())
				require.NoError(t, err)
				assert.Equal(t, v.sum32Seeded, got32, "seeded sum32 %s", r.Kind())

				got64, err := Sum64(r)
				require.NoError(t, err)
				assert.Equal(t, v.sum64, got64, "sum64 %s", r.Kind())

				got64, err = Hash64(testSeed, r, 0, r.Len())
				require.NoError(t, err)
				assert.Equal(t, v.sum64Seeded, got64, "seeded sum64 %s", r.Kind())
			}
		})
	}
}

func TestHash_Window(t *testing.T) {
	data := pattern(300)
	for _, r := range []region.Region{region.Wrap(data), testutil.OffHeapRegion(t, data)} {
		for _, w := range [][2]int{{0, 0}, {1, 15}, {7, 16}, {13, 33}, {100, 200}, {299, 1}} {
			off, n := w[0], w[1]
			want32, err := Hash32(42, region.Wrap(data[off:off+n]), 0, n)
			require.NoError(t, err)
			got32, err := Hash32(42, r, off, n)
			require.NoError(t, err)
			assert.Equal(t, want32, got32, "window %v %s", w, r.Kind())

			want64, err := Hash64(42, region.Wrap(data[off:off+n]), 0, n)
			require.NoError(t, err)
			got64, err := Hash64(42, r, off, n)
			require.NoError(t, err)
			assert.Equal(t, want64, got64, "window %v %s", w, r.Kind())
		}
	}
}

func TestHash_OutOfRange(t *testing.T) {
	r := region.Wrap(make([]byte, 64))
	windows := [][2]int{{-1, 4}, {0, 65}, {60, 5}, {65, 0}, {0, -1}}
	for _, w := range windows {
		_, err := Hash32(0, r, w[0], w[1])
		assert.ErrorIs(t, err, region.ErrIndexOutOfRange, "hash32 %v", w)
		_, err = Hash64(0, r, w[0], w[1])
		assert.ErrorIs(t, err, region.ErrIndexOutOfRange, "hash64 %v", w)
	}
}

func TestHash_Regions(t *testing.T) {
	data := testutil.NewRNG(3).Bytes(1000)
	want32, err := Sum32Bytes(data)
	require.NoError(t, err)
	want64, err := Sum64Bytes(data)
	require.NoError(t, err)

	for name, r := range testutil.Regions(t, data) {
		got32, err := Sum32(r)
		require.NoError(t, err)
		assert.Equal(t, want32, got32, name)

		got64, err := Sum64(r)
		require.NoError(t, err)
		assert.Equal(t, want64, got64, name)
	}
}

func TestHash_ConcurrentSharedRegion(t *testing.T) {
	data := testutil.NewRNG(5).Bytes(4099)
	r := testutil.OffHeapRegion(t, data)

	want32, err := Sum32Bytes(data)
	require.NoError(t, err)
	want64, err := Sum64Bytes(data)
	require.NoError(t, err)

	const goroutines, iterations = 16, 100
	var wg sync.WaitGroup
	errs := make(chan error, goroutines)
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range iterations {
				got32, err := Sum32(r)
				if err != nil {
					errs <- err
					return
				}
				got64, err := Sum64(r)
				if err != nil {
					errs <- err
					return
				}
				if got32 != want32 || got64 != want64 {
					errs <- assert.AnError
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestHash_LayoutViolation(t *testing.T) {
	data := []byte("http://host%s.foo.com")
	r := testutil.OffHeapRegion(t, data)
	testutil.BreakLayout(t)

	_, err := Hash32(0, r, 0, r.Len())
	assert.ErrorIs(t, err, platform.ErrAssumptionViolated)
	_, err = Hash64(0, r, 0, r.Len())
	assert.ErrorIs(t, err, platform.ErrAssumptionViolated)
	_, err = Sum32String("abc")
	assert.ErrorIs(t, err, platform.ErrAssumptionViolated)

	// Validation fails before the window is checked.
	_, err = Hash64(0, r, 0, r.Len()+1)
	assert.ErrorIs(t, err, platform.ErrAssumptionViolated)
}

func TestHash_BackingIndependence(t *testing.T) {
	f := func(data []byte, seed uint64) bool {
		heap := region.Wrap(data)
		direct := testutil.OffHeapRegion(t, data)

		h32, err1 := Hash32(uint32(seed), heap, 0, len(data))
		d32, err2 := Hash32(uint32(seed), direct, 0, len(data))
		h64, err3 := Hash64(seed, heap, 0, len(data))
		d64, err4 := Hash64(seed, direct, 0, len(data))
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			return false
		}
		return h32 == d32 && h64 == d64
	}
	require.NoError(t, quick.Check(f, &quick.Config{MaxCount: 500}))
}

func TestHash_Deterministic(t *testing.T) {
	data := pattern(1000)
	first32, err := Sum32Bytes(data)
	require.NoError(t, err)
	first64, err := Sum64Bytes(data)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		got32, _ := Sum32Bytes(data)
		got64, _ := Sum64Bytes(data)
		assert.Equal(t, first32, got32)
		assert.Equal(t, first64, got64)
	}
}

func TestSum64_MatchesCespare(t *testing.T) {
	rng := testutil.NewRNG(1)
	for n := 0; n < 600; n++ {
		data := rng.Bytes(n)

		got, err := Sum64Bytes(data)
		require.NoError(t, err)
		assert.Equal(t, cespare.Sum64(data), got, "len %d", n)

		seed := rng.Uint64()
		d := cespare.NewWithSeed(seed)
		_, _ = d.Write(data)
		got, err = Hash64(seed, region.Wrap(data), 0, n)
		require.NoError(t, err)
		assert.Equal(t, d.Sum64(), got, "seeded len %d", n)
	}
}

func TestSum64String(t *testing.T) {
	got, err := Sum64String("abc")
	require.NoError(t, err)
	assert.Equal(t, uint64(0x44bc2cf5ad770999), got)
	assert.Equal(t, cespare.Sum64String("abc"), got)
}

func BenchmarkSum32(b *testing.B) {
	for _, size := range []int{16, 1024, 64 * 1024} {
		data := pattern(size)
		heap := region.Wrap(data)
		direct := testutil.OffHeapRegion(b, data)
		for _, r := range []region.Region{heap, direct} {
			b.Run(r.Kind().String()+"/"+strconv.Itoa(size), func(b *testing.B) {
				b.SetBytes(int64(size))
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					_, _ = Sum32(r)
				}
			})
		}
	}
}

func BenchmarkSum64(b *testing.B) {
	for _, size := range []int{16, 1024, 64 * 1024} {
		data := pattern(size)
		heap := region.Wrap(data)
		direct := testutil.OffHeapRegion(b, data)
		for _, r := range []region.Region{heap, direct} {
			b.Run(r.Kind().String()+"/"+strconv.Itoa(size), func(b *testing.B) {
				b.SetBytes(int64(size))
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					_, _ = Sum64(r)
				}
			})
		}
	}
}
