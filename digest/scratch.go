package digest

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/xxregion/internal/conv"
	"github.com/hupe1980/xxregion/internal/resource"
	"github.com/hupe1980/xxregion/offheap"
	"github.com/hupe1980/xxregion/region"
)

const minScratch = 64 << 10

// scratch assembles a streamed blob in one contiguous buffer. Capacity is
// reserved against the resource controller before it is allocated.
type scratch struct {
	rc       *resource.Controller
	offHeap  bool
	buf      *offheap.Buffer
	n        int
	reserved int64
}

func newScratch(rc *resource.Controller, offHeap bool) *scratch {
	return &scratch{rc: rc, offHeap: offHeap}
}

func (s *scratch) capacity() int {
	if s.buf == nil {
		return 0
	}
	return s.buf.Len()
}

// reserve grows the buffer to exactly size bytes, preserving contents.
func (s *scratch) reserve(ctx context.Context, size int) error {
	if s.capacity() >= size {
		return nil
	}
	if limit := s.rc.Config().MemoryLimitBytes; limit > 0 && int64(size) > limit {
		return fmt.Errorf("%w: need %d bytes, limit %d", ErrMemoryLimitExceeded, size, limit)
	}

	delta := int64(size) - s.reserved
	if err := s.rc.AcquireMemory(ctx, delta); err != nil {
		return err
	}

	var (
		next *offheap.Buffer
		err  error
	)
	if s.offHeap {
		next, err = offheap.Alloc(size)
	} else {
		next = offheap.Heap(make([]byte, size))
	}
	if err != nil {
		s.rc.ReleaseMemory(delta)
		return err
	}

	if s.buf != nil {
		if _, err := next.WriteAt(s.buf.Bytes()[:s.n], 0); err != nil {
			_ = next.Close()
			s.rc.ReleaseMemory(delta)
			return err
		}
		_ = s.buf.Close()
	}
	s.buf = next
	s.reserved = int64(size)
	return nil
}

// fill reads exactly size bytes of b in chunk-sized ReadAt calls.
func (s *scratch) fill(ctx context.Context, b readerAt, size int64, chunk int) error {
	n, err := conv.Int64ToInt(size)
	if err != nil {
		return err
	}
	if err := s.reserve(ctx, n); err != nil {
		return err
	}
	dst := s.bytes(n)
	for s.n < n {
		end := min(s.n+chunk, n)
		if err := s.rc.AcquireIO(ctx, end-s.n); err != nil {
			return err
		}
		read, err := b.ReadAt(ctx, dst[s.n:end], int64(s.n))
		s.n += read
		switch {
		case err == nil:
		case errors.Is(err, io.EOF) && s.n == end:
		case errors.Is(err, io.EOF):
			return io.ErrUnexpectedEOF
		default:
			return err
		}
	}
	return nil
}

// readFrom drains r in reads of at most chunk bytes, doubling the buffer
// whenever it fills up.
func (s *scratch) readFrom(ctx context.Context, r io.Reader, chunk int) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.n == s.capacity() {
			want := max(minScratch, 2*s.capacity())
			if limit := s.rc.Config().MemoryLimitBytes; limit > 0 && int64(want) > limit {
				want = int(limit)
			}
			if want <= s.capacity() {
				return fmt.Errorf("%w: decompressed size exceeds %d bytes", ErrMemoryLimitExceeded, want)
			}
			if err := s.reserve(ctx, want); err != nil {
				return err
			}
		}
		dst := s.bytes(s.capacity())
		n, err := r.Read(dst[s.n:min(s.n+chunk, len(dst))])
		s.n += n
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (s *scratch) bytes(n int) []byte {
	if n == 0 || s.buf == nil {
		return nil
	}
	return s.buf.Bytes()[:n]
}

// region returns the filled prefix of the buffer.
func (s *scratch) region() (region.Region, error) {
	if s.n == 0 {
		return region.Wrap(nil), nil
	}
	if !s.buf.Direct() {
		return region.Wrap(s.buf.Bytes()[:s.n]), nil
	}
	r, err := region.WrapOffHeap(s.buf)
	if err != nil {
		return region.Region{}, err
	}
	return r.Slice(0, s.n)
}

func (s *scratch) Close() error {
	if s.buf == nil {
		return nil
	}
	err := s.buf.Close()
	s.rc.ReleaseMemory(s.reserved)
	s.buf = nil
	s.reserved = 0
	return err
}

type readerAt interface {
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)
}
