package digest

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/hupe1980/xxregion"
	"github.com/hupe1980/xxregion/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_RecordVerify(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "a", []byte("alpha")))
	require.NoError(t, store.Put(ctx, "b", []byte("beta")))

	ledger, err := OpenFileLedger(filepath.Join(t.TempDir(), "SUMS"))
	require.NoError(t, err)

	svc := newTestService(t, store)
	results, err := svc.Record(ctx, ledger, []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, results, 2)

	checks, err := svc.Verify(ctx, ledger, []string{"a", "b"})
	require.NoError(t, err)
	for _, c := range checks {
		assert.True(t, c.OK(), c.Name)
		assert.Equal(t, c.Want, c.Got)
	}

	// Modify a blob and add an unrecorded one.
	require.NoError(t, store.Put(ctx, "b", []byte("beta!")))
	require.NoError(t, store.Put(ctx, "c", []byte("gamma")))

	checks, err = svc.Verify(ctx, ledger, []string{"a", "b", "c"})
	require.Error(t, err)
	require.Len(t, checks, 3)

	assert.True(t, checks[0].OK())

	var mismatch *MismatchError
	require.True(t, errors.As(checks[1].Err, &mismatch))
	assert.Equal(t, "b", mismatch.Name)
	assert.Equal(t, results[1].Hex, mismatch.Want)
	assert.NotEqual(t, mismatch.Want, mismatch.Got)

	assert.ErrorIs(t, checks[2].Err, ErrNoEntry)
	assert.ErrorIs(t, err, ErrNoEntry)
	assert.True(t, errors.As(err, &mismatch))
}

func TestService_Verify_AlgorithmMismatch(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "a", []byte("alpha")))

	ledger, err := OpenFileLedger(filepath.Join(t.TempDir(), "SUMS"))
	require.NoError(t, err)

	_, err = newTestService(t, store, WithHasher(xxregion.NewXxHash32(0))).Record(ctx, ledger, []string{"a"})
	require.NoError(t, err)

	checks, err := newTestService(t, store).Verify(ctx, ledger, []string{"a"})
	assert.ErrorIs(t, err, ErrAlgorithmMismatch)
	assert.False(t, checks[0].OK())
}

func TestService_Verify_MissingBlob(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	ledger, err := OpenFileLedger(filepath.Join(t.TempDir(), "SUMS"))
	require.NoError(t, err)
	require.NoError(t, ledger.Record(ctx, Entry{Name: "gone", Algorithm: "xxh64", Hex: "0000000000000000"}))

	checks, err := newTestService(t, store).Verify(ctx, ledger, []string{"gone"})
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
	assert.ErrorIs(t, checks[0].Err, blobstore.ErrNotFound)
}
