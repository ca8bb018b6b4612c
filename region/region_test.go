package region

import (
	"errors"
	"testing"

	"github.com/hupe1980/xxregion/internal/platform"
	"github.com/hupe1980/xxregion/offheap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b}

func offHeap(t *testing.T, data []byte) Region {
	t.Helper()
	buf, err := offheap.FromBytes(data)
	require.NoError(t, err)
	t.Cleanup(func() { _ = buf.Close() })

	r, err := WrapOffHeap(buf)
	require.NoError(t, err)
	return r
}

func TestRegion_ReadsMatchAcrossKinds(t *testing.T) {
	heap := Wrap(sample)
	direct := offHeap(t, sample)

	assert.Equal(t, KindHeap, heap.Kind())
	assert.Equal(t, KindOffHeap, direct.Kind())
	assert.Equal(t, heap.Len(), direct.Len())

	for off := 0; off < len(sample); off++ {
		hv, herr := heap.Uint8(off)
		dv, derr := direct.Uint8(off)
		assert.Equal(t, herr, derr)
		assert.Equal(t, hv, dv)
	}
	for off := 0; off+2 <= len(sample); off++ {
		hv, _ := heap.Uint16(off)
		dv, _ := direct.Uint16(off)
		assert.Equal(t, hv, dv)
	}
	for off := 0; off+4 <= len(sample); off++ {
		hv, _ := heap.Uint32(off)
		dv, _ := direct.Uint32(off)
		assert.Equal(t, hv, dv)
	}
	for off := 0; off+8 <= len(sample); off++ {
		hv, _ := heap.Uint64(off)
		dv, _ := direct.Uint64(off)
		assert.Equal(t, hv, dv)
	}

	v, err := direct.Uint32(3)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x07060504), v)
}

func TestRegion_OutOfRange(t *testing.T) {
	for _, r := range []Region{Wrap(sample), offHeap(t, sample)} {
		t.Run(r.Kind().String(), func(t *testing.T) {
			_, err := r.Uint8(-1)
			assert.ErrorIs(t, err, ErrIndexOutOfRange)
			_, err = r.Uint8(len(sample))
			assert.ErrorIs(t, err, ErrIndexOutOfRange)
			_, err = r.Uint16(len(sample) - 1)
			assert.ErrorIs(t, err, ErrIndexOutOfRange)
			_, err = r.Uint32(len(sample) - 3)
			assert.ErrorIs(t, err, ErrIndexOutOfRange)
			_, err = r.Uint64(len(sample) - 7)
			assert.ErrorIs(t, err, ErrIndexOutOfRange)

			var re *RangeError
			require.True(t, errors.As(err, &re))
			assert.Equal(t, len(sample)-7, re.Offset)
			assert.Equal(t, 8, re.Length)
			assert.Equal(t, len(sample), re.Size)
		})
	}
}

func TestRegion_CheckWindow(t *testing.T) {
	r := Wrap(make([]byte, 10))

	tests := []struct {
		name           string
		offset, length int
		ok             bool
	}{
		{"whole", 0, 10, true},
		{"empty at end", 10, 0, true},
		{"inner", 3, 4, true},
		{"negative offset", -1, 2, false},
		{"negative length", 0, -1, false},
		{"past end", 5, 6, false},
		{"offset past end", 11, 0, false},
		{"overflow", 1, int(^uint(0) >> 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.CheckWindow(tt.offset, tt.length)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrIndexOutOfRange)
			}
		})
	}
}

func TestRegion_Slice(t *testing.T) {
	for _, r := range []Region{Wrap(sample), offHeap(t, sample)} {
		t.Run(r.Kind().String(), func(t *testing.T) {
			sub, err := r.Slice(2, 5)
			require.NoError(t, err)
			assert.Equal(t, 5, sub.Len())
			assert.Equal(t, r.Kind(), sub.Kind())
			assert.Equal(t, r.Owner(), sub.Owner())

			v, err := sub.Uint8(0)
			require.NoError(t, err)
			assert.Equal(t, uint8(0x03), v)

			_, err = sub.Uint8(5)
			assert.ErrorIs(t, err, ErrIndexOutOfRange)

			empty, err := r.Slice(len(sample), 0)
			require.NoError(t, err)
			assert.Equal(t, 0, empty.Len())

			_, err = r.Slice(4, len(sample))
			assert.ErrorIs(t, err, ErrIndexOutOfRange)
		})
	}
}

func TestWrapString(t *testing.T) {
	r := WrapString("héllo")
	assert.Equal(t, 6, r.Len())

	b, ok := r.Bytes()
	require.True(t, ok)
	assert.Equal(t, []byte("héllo"), b)
}

func TestWrapOffHeap_RejectsHeapHandle(t *testing.T) {
	_, err := WrapOffHeap(offheap.Heap(sample))
	assert.ErrorIs(t, err, platform.ErrInvalidArgument)

	var nilBuf *offheap.Buffer
	_, err = WrapOffHeap(nilBuf)
	assert.ErrorIs(t, err, platform.ErrInvalidArgument)
}

func TestWrapOffHeap_Empty(t *testing.T) {
	r := offHeap(t, nil)
	assert.Equal(t, 0, r.Len())
	assert.NoError(t, r.CheckWindow(0, 0))

	_, ok := r.Bytes()
	assert.False(t, ok)
}
