package platform

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	require.NoError(t, Validate())

	got, err := Layout()
	require.NoError(t, err)
	assert.Contains(t, []uintptr{4, 8}, got.PointerSize)
	assert.Len(t, got.Strides, 10)
	for _, s := range got.Strides {
		assert.Equal(t, s.Want, s.Got, s.Kind)
	}
}

func TestValidate_ConcurrentFirstUse(t *testing.T) {
	var wg sync.WaitGroup
	errs := make([]error, 32)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = Validate()
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
}

func TestCheck_Mismatch(t *testing.T) {
	strides := []Stride{
		{Kind: "uint8", Want: 1, Got: 1},
		{Kind: "int32", Want: 4, Got: 8},
		{Kind: "float64", Want: 8, Got: 16},
	}

	_, err := check(strides)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAssumptionViolated))

	var le *LayoutError
	require.True(t, errors.As(err, &le))
	assert.Len(t, le.Mismatches, 2)
	assert.Contains(t, err.Error(), "int32: want 4, got 8")
}

func TestCheck_AllMatch(t *testing.T) {
	out, err := check(observe())
	require.NoError(t, err)
	assert.Len(t, out.Strides, 10)
}

func mismatchedStrides() []Stride {
	return []Stride{
		{Kind: "uint8", Want: 1, Got: 1},
		{Kind: "int64", Want: 8, Got: 16},
	}
}

func TestValidate_FailureIsSticky(t *testing.T) {
	var calls atomic.Int32
	ResetForTesting(func() []Stride {
		calls.Add(1)
		return mismatchedStrides()
	})
	t.Cleanup(func() { ResetForTesting(nil) })

	var wg sync.WaitGroup
	errs := make([]error, 32)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = Validate()
		}(i)
	}
	wg.Wait()

	require.ErrorIs(t, errs[0], ErrAssumptionViolated)
	for _, err := range errs[1:] {
		assert.Same(t, errs[0], err)
	}
	assert.Same(t, errs[0], Validate())
	assert.Equal(t, int32(1), calls.Load())

	info, err := Layout()
	assert.ErrorIs(t, err, ErrAssumptionViolated)
	assert.False(t, native.Load())
	assert.Len(t, info.Strides, 2)
}

func TestResetForTesting_Restores(t *testing.T) {
	ResetForTesting(mismatchedStrides)
	require.Error(t, Validate())

	ResetForTesting(nil)
	require.NoError(t, Validate())
	info, err := Layout()
	require.NoError(t, err)
	assert.Equal(t, unalignedLoads && !info.BigEndian, info.NativeLoads)
	assert.Equal(t, info.NativeLoads, native.Load())
}
