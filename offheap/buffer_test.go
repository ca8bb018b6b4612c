package offheap

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlloc(t *testing.T) {
	b, err := Alloc(128)
	require.NoError(t, err)
	defer b.Close()

	assert.True(t, b.Direct())
	assert.Equal(t, 128, b.Len())
	assert.NotNil(t, b.Pointer())
	assert.Len(t, b.Bytes(), 128)

	n, err := b.WriteAt([]byte("abc"), 10)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []byte("abc"), b.Bytes()[10:13])

	_, err = b.WriteAt([]byte("abc"), 127)
	assert.Error(t, err)
	_, err = b.WriteAt([]byte("abc"), -1)
	assert.Error(t, err)
}

func TestFromBytes(t *testing.T) {
	data := []byte("off-heap copy")
	b, err := FromBytes(data)
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, data, b.Bytes())
	data[0] = 'X'
	assert.Equal(t, byte('o'), b.Bytes()[0])
}

func TestFromBytes_Empty(t *testing.T) {
	b, err := FromBytes(nil)
	require.NoError(t, err)
	defer b.Close()

	assert.True(t, b.Direct())
	assert.Equal(t, 0, b.Len())
	assert.Nil(t, b.Pointer())
	assert.Nil(t, b.Bytes())
}

func TestMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.bin")
	require.NoError(t, os.WriteFile(path, []byte("mapped file"), 0o600))

	b, err := Map(path)
	require.NoError(t, err)
	defer b.Close()

	assert.True(t, b.Direct())
	assert.Equal(t, "mapped file", string(b.Bytes()))
	assert.NoError(t, b.Advise(AccessSequential))

	_, err = b.WriteAt([]byte("x"), 0)
	assert.Equal(t, ErrReadOnly, err)
}

func TestWrap(t *testing.T) {
	backing := []byte("foreign memory")
	b, err := Wrap(unsafe.Pointer(&backing[0]), len(backing), backing)
	require.NoError(t, err)

	assert.True(t, b.Direct())
	assert.Equal(t, "foreign memory", string(b.Bytes()))
	runtime.KeepAlive(backing)

	require.NoError(t, b.Close())
	assert.Nil(t, b.Pointer())

	_, err = Wrap(nil, 4, nil)
	assert.Error(t, err)
	_, err = Wrap(nil, -1, nil)
	assert.Error(t, err)
}

func TestHeap(t *testing.T) {
	b := Heap([]byte("heap"))
	assert.False(t, b.Direct())
	assert.Nil(t, b.Pointer())
	assert.Equal(t, 4, b.Len())
	assert.Equal(t, "heap", string(b.Bytes()))
	assert.NoError(t, b.Advise(AccessRandom))
}

func TestClose(t *testing.T) {
	b, err := Alloc(16)
	require.NoError(t, err)

	require.NoError(t, b.Close())
	require.NoError(t, b.Close())
	assert.Nil(t, b.Bytes())
	assert.Nil(t, b.Pointer())
	assert.Equal(t, ErrClosed, b.Advise(AccessDefault))

	_, err = b.WriteAt([]byte("x"), 0)
	assert.Equal(t, ErrClosed, err)
}
