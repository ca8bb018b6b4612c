package digest

import (
	"io"
	"path"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the container format of a blob.
type Compression uint8

const (
	// CompressionNone indicates a plain blob.
	CompressionNone Compression = iota
	// CompressionZSTD indicates a zstd frame stream (*.zst).
	CompressionZSTD
	// CompressionLZ4 indicates an lz4 frame stream (*.lz4).
	CompressionLZ4
)

// String returns the file extension used for c.
func (c Compression) String() string {
	switch c {
	case CompressionZSTD:
		return "zst"
	case CompressionLZ4:
		return "lz4"
	default:
		return "none"
	}
}

// DetectCompression infers the compression from the blob name's extension.
func DetectCompression(name string) Compression {
	switch strings.ToLower(path.Ext(name)) {
	case ".zst", ".zstd":
		return CompressionZSTD
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// ZSTD/LZ4 decoder pools for efficiency
var (
	zstdDecoderPool sync.Pool
	lz4ReaderPool   sync.Pool
)

func getZstdDecoder(r io.Reader) (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		dec := v.(*zstd.Decoder)
		if err := dec.Reset(r); err != nil {
			return nil, err
		}
		return dec, nil
	}
	// Synchronous decoding; concurrency comes from SumAll.
	return zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
}

func putZstdDecoder(dec *zstd.Decoder) {
	// Drop the reference to the source.
	_ = dec.Reset(nil)
	zstdDecoderPool.Put(dec)
}

func getLZ4Reader(r io.Reader) *lz4.Reader {
	if v := lz4ReaderPool.Get(); v != nil {
		zr := v.(*lz4.Reader)
		zr.Reset(r)
		return zr
	}
	return lz4.NewReader(r)
}

func putLZ4Reader(zr *lz4.Reader) {
	zr.Reset(nil)
	lz4ReaderPool.Put(zr)
}

// decompress wraps r according to c. The returned release func returns
// pooled decoders and must be called once reading is done.
func decompress(c Compression, r io.Reader) (io.Reader, func(), error) {
	switch c {
	case CompressionZSTD:
		dec, err := getZstdDecoder(r)
		if err != nil {
			return nil, nil, err
		}
		return dec, func() { putZstdDecoder(dec) }, nil
	case CompressionLZ4:
		zr := getLZ4Reader(r)
		return zr, func() { putLZ4Reader(zr) }, nil
	default:
		return r, func() {}, nil
	}
}
