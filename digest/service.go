package digest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/xxregion"
	"github.com/hupe1980/xxregion/blobstore"
	"github.com/hupe1980/xxregion/internal/platform"
	"github.com/hupe1980/xxregion/internal/resource"
	"github.com/hupe1980/xxregion/offheap"
	"github.com/hupe1980/xxregion/region"
	"golang.org/x/sync/errgroup"
)

// ErrMemoryLimitExceeded is returned when a blob does not fit the configured
// memory limit.
var ErrMemoryLimitExceeded = resource.ErrMemoryLimitExceeded

// Result is the digest of one blob.
type Result struct {
	Name      string
	Algorithm string
	// Size is the number of bytes hashed, after decompression.
	Size   int64
	Digest uint64
	// Hex is Digest as fixed-width lowercase hex.
	Hex string
}

// Service digests blobs from a BlobStore.
type Service struct {
	store blobstore.BlobStore
	opts  options
	rc    *resource.Controller
}

// NewService creates a Service reading from store. It fails if the platform
// layout check fails.
func NewService(store blobstore.BlobStore, optFns ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: nil blob store", xxregion.ErrInvalidArgument)
	}
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.concurrency <= 0 {
		opts.concurrency = 1
	}
	if opts.chunkSize <= 0 {
		opts.chunkSize = DefaultChunkSize
	}

	if err := platform.Validate(); err != nil {
		opts.logger.LogPlatform(context.Background())
		return nil, err
	}

	return &Service{
		store: store,
		opts:  opts,
		rc: resource.NewController(resource.Config{
			MemoryLimitBytes:   opts.memoryLimit,
			MaxConcurrency:     int64(opts.concurrency),
			IOLimitBytesPerSec: opts.ioLimit,
		}),
	}, nil
}

// Hasher returns the configured hasher.
func (s *Service) Hasher() xxregion.RegionHasher {
	return s.opts.hasher
}

// Sum digests the blob called name.
func (s *Service) Sum(ctx context.Context, name string) (Result, error) {
	if err := s.rc.AcquireWorker(ctx); err != nil {
		return Result{}, err
	}
	defer s.rc.ReleaseWorker()

	start := time.Now()
	res, err := s.sum(ctx, name)
	s.opts.metrics.RecordDigest(res.Size, time.Since(start), err)
	s.opts.logger.LogDigest(ctx, name, res.Size, res.Hex, err)
	if err != nil {
		return Result{}, fmt.Errorf("digest %s: %w", name, err)
	}
	return res, nil
}

func (s *Service) sum(ctx context.Context, name string) (Result, error) {
	blob, err := s.store.Open(ctx, name)
	if err != nil {
		return Result{}, err
	}
	defer func() { _ = blob.Close() }()

	res := Result{Name: name, Algorithm: s.opts.hasher.Name()}

	compression := CompressionNone
	if s.opts.decompress {
		compression = DetectCompression(name)
	}

	if m, ok := blob.(blobstore.Mappable); ok && compression == CompressionNone {
		buf := m.Buffer()
		if err := s.rc.AcquireIO(ctx, buf.Len()); err != nil {
			return Result{}, err
		}
		_ = buf.Advise(offheap.AccessSequential)
		r, err := wrapBuffer(buf)
		if err != nil {
			return Result{}, err
		}
		return s.finish(res, r)
	}

	sc := newScratch(s.rc, s.opts.offHeapScratch)
	defer func() { _ = sc.Close() }()

	if compression == CompressionNone {
		err = sc.fill(ctx, blob, blob.Size(), s.opts.chunkSize)
	} else {
		err = s.inflate(ctx, sc, blob, compression)
	}
	if err != nil {
		return Result{}, err
	}

	r, err := sc.region()
	if err != nil {
		return Result{}, err
	}
	return s.finish(res, r)
}

func (s *Service) inflate(ctx context.Context, sc *scratch, blob blobstore.Blob, c Compression) error {
	src := resource.NewLimitedReader(ctx, blobstore.NewReader(ctx, blob), s.rc)
	r, release, err := decompress(c, src)
	if err != nil {
		return fmt.Errorf("%s: %w", c, err)
	}
	defer release()
	if err := sc.readFrom(ctx, r, s.opts.chunkSize); err != nil {
		if errors.Is(err, ErrMemoryLimitExceeded) || errors.Is(err, ctx.Err()) {
			return err
		}
		return fmt.Errorf("%s: %w", c, err)
	}
	return nil
}

// wrapBuffer views a mapped buffer as a region. Empty files map to an empty
// heap region.
func wrapBuffer(buf *offheap.Buffer) (region.Region, error) {
	if buf.Len() == 0 {
		return region.Wrap(nil), nil
	}
	return region.WrapOffHeap(buf)
}

func (s *Service) finish(res Result, r region.Region) (Result, error) {
	d, err := s.opts.hasher.HashRegion(r, 0, r.Len())
	if err != nil {
		return Result{}, err
	}
	res.Size = int64(r.Len())
	res.Digest = d
	res.Hex = xxregion.FormatDigest(s.opts.hasher, d)
	return res, nil
}

// SumAll digests names concurrently and returns results in input order.
// It stops at the first error.
func (s *Service) SumAll(ctx context.Context, names []string) ([]Result, error) {
	results := make([]Result, len(names))
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.concurrency)
	for i, name := range names {
		g.Go(func() error {
			res, err := s.Sum(gctx, name)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	err := g.Wait()

	failed := 0
	if err != nil {
		failed = 1
	}
	s.opts.metrics.RecordBatch(len(names), failed, time.Since(start))
	s.opts.logger.LogBatch(ctx, len(names), failed)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// SumEach digests every name concurrently and reports each outcome
// separately, so one failing blob does not stop the rest.
func (s *Service) SumEach(ctx context.Context, names []string) ([]Result, []error) {
	results := make([]Result, len(names))
	errs := make([]error, len(names))
	start := time.Now()

	var g errgroup.Group
	g.SetLimit(s.opts.concurrency)
	for i, name := range names {
		g.Go(func() error {
			results[i], errs[i] = s.Sum(ctx, name)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
		}
	}
	s.opts.metrics.RecordBatch(len(names), failed, time.Since(start))
	s.opts.logger.LogBatch(ctx, len(names), failed)
	return results, errs
}
