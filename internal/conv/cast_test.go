package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInt64ToInt(t *testing.T) {
	t.Run("valid zero", func(t *testing.T) {
		got, err := Int64ToInt(0)
		assert.NoError(t, err)
		assert.Equal(t, 0, got)
	})

	t.Run("valid max int32", func(t *testing.T) {
		got, err := Int64ToInt(math.MaxInt32)
		assert.NoError(t, err)
		assert.Equal(t, math.MaxInt32, got)
	})

	t.Run("invalid negative", func(t *testing.T) {
		_, err := Int64ToInt(-1)
		assert.ErrorIs(t, err, ErrOverflow)
	})
}

func TestUint64ToUint32(t *testing.T) {
	t.Run("valid max", func(t *testing.T) {
		got, err := Uint64ToUint32(math.MaxUint32)
		assert.NoError(t, err)
		assert.Equal(t, uint32(math.MaxUint32), got)
	})

	t.Run("invalid too large", func(t *testing.T) {
		_, err := Uint64ToUint32(math.MaxUint32 + 1)
		assert.ErrorIs(t, err, ErrOverflow)
	})
}
