package digest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		line    string
		want    Entry
		wantErr bool
	}{
		{line: "0123456789abcdef  dist/app.tar", want: Entry{Name: "dist/app.tar", Algorithm: "xxh64", Hex: "0123456789abcdef"}},
		{line: "5F627D81 *a b.bin", want: Entry{Name: "a b.bin", Algorithm: "xxh32", Hex: "5f627d81"}},
		{line: "XXH64 (dist/app.tar) = 0123456789ABCDEF", want: Entry{Name: "dist/app.tar", Algorithm: "xxh64", Hex: "0123456789abcdef"}},
		{line: "XXH32 (x (1).bin) = 5f627d81", want: Entry{Name: "x (1).bin", Algorithm: "xxh32", Hex: "5f627d81"}},
		{line: "0123  short", wantErr: true},
		{line: "zzzzzzzz  bad", wantErr: true},
		{line: "5f627d81", wantErr: true},
		{line: "5f627d81 x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseLine(tt.line)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedLedger)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileLedger(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "SUMS")

	l, err := OpenFileLedger(path)
	require.NoError(t, err)
	_, ok, err := l.Lookup(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, l.Record(ctx,
		Entry{Name: "b", Algorithm: "xxh64", Hex: "00000000000000ff"},
		Entry{Name: "a", Algorithm: "xxh64", Hex: "0000000000000001"},
	))
	require.NoError(t, l.Record(ctx, Entry{Name: "b", Algorithm: "xxh64", Hex: "00000000000000fe"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "00000000000000fe  b\n0000000000000001  a\n", string(raw))

	reopened, err := OpenFileLedger(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, reopened.Names())

	e, ok, err := reopened.Lookup(ctx, "b")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Entry{Name: "b", Algorithm: "xxh64", Hex: "00000000000000fe"}, e)
}

func TestOpenFileLedger_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "SUMS")
	require.NoError(t, os.WriteFile(path, []byte("# comment\n\n0000000000000001  ok\nnonsense\n"), 0o600))

	_, err := OpenFileLedger(path)
	assert.ErrorIs(t, err, ErrMalformedLedger)
	assert.Contains(t, err.Error(), "line 4")
}
