package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/hupe1980/xxregion"
	"github.com/hupe1980/xxregion/blobstore"
	"github.com/hupe1980/xxregion/blobstore/minio"
	"github.com/hupe1980/xxregion/blobstore/s3"
	"github.com/hupe1980/xxregion/digest"
	"github.com/hupe1980/xxregion/digest/ddb"
)

const (
	envAlgo = "XXSUM_ALGO"
	envSeed = "XXSUM_SEED"
)

type config struct {
	algo       string
	seed       uint64
	jobs       int
	decompress bool
	check      string
	write      string
	ddbTable   string
	root       string
	s3Bucket   string
	minioHost  string
	bucket     string
	prefix     string
	memLimit   int64
	ioLimit    int64
	verbose    bool
	logJSON    bool
	names      []string
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	cfg := &config{}

	defaultAlgo := xxregion.XXH64
	if v := os.Getenv(envAlgo); v != "" {
		defaultAlgo = v
	}
	var defaultSeed uint64
	if v := os.Getenv(envSeed); v != "" {
		s, err := strconv.ParseUint(v, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", envSeed, err)
		}
		defaultSeed = s
	}

	fs := flag.NewFlagSet("xxsum", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.algo, "a", defaultAlgo, "algorithm (xxh32, xxh64)")
	fs.Uint64Var(&cfg.seed, "seed", defaultSeed, "hash seed")
	fs.IntVar(&cfg.jobs, "j", 4, "number of blobs hashed concurrently")
	fs.BoolVar(&cfg.decompress, "z", false, "hash the decompressed contents of .zst and .lz4 blobs")
	fs.StringVar(&cfg.check, "c", "", "verify digests against `ledger`")
	fs.StringVar(&cfg.write, "w", "", "record digests into `ledger`")
	fs.StringVar(&cfg.ddbTable, "ddb", "", "keep the ledger in this DynamoDB `table`; -c/-w name the ledger")
	fs.StringVar(&cfg.root, "root", ".", "root directory for local files")
	fs.StringVar(&cfg.s3Bucket, "s3", "", "read blobs from this S3 `bucket`")
	fs.StringVar(&cfg.minioHost, "minio", "", "read blobs from this MinIO `endpoint` (needs -bucket)")
	fs.StringVar(&cfg.bucket, "bucket", "", "MinIO bucket")
	fs.StringVar(&cfg.prefix, "prefix", "", "key prefix for object stores")
	fs.Int64Var(&cfg.memLimit, "mem", 0, "scratch memory limit in bytes (0 = unlimited)")
	fs.Int64Var(&cfg.ioLimit, "io", 0, "read limit in bytes per second (0 = unlimited)")
	fs.BoolVar(&cfg.verbose, "v", false, "verbose logging")
	fs.BoolVar(&cfg.logJSON, "log-json", false, "write logs as JSON lines")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: xxsum [options] names...\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.names = fs.Args()

	switch {
	case cfg.check != "" && cfg.write != "":
		return nil, errors.New("-c and -w are mutually exclusive")
	case cfg.s3Bucket != "" && cfg.minioHost != "":
		return nil, errors.New("-s3 and -minio are mutually exclusive")
	case cfg.minioHost != "" && cfg.bucket == "":
		return nil, errors.New("-minio needs -bucket")
	case cfg.ddbTable != "" && cfg.check == "" && cfg.write == "":
		return nil, errors.New("-ddb needs -c or -w")
	case len(cfg.names) == 0 && (cfg.check == "" || cfg.ddbTable != ""):
		return nil, errors.New("no input names")
	}
	return cfg, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "xxsum: %v\n", err)
		return 2
	}

	if err := execute(ctx, cfg, stdout, stderr); err != nil {
		fmt.Fprintf(stderr, "xxsum: %v\n", err)
		return 1
	}
	return 0
}

func execute(ctx context.Context, cfg *config, stdout, stderr io.Writer) error {
	level := slog.LevelWarn
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := xxregion.NewTextLogger(stderr, level)
	if cfg.logJSON {
		logger = xxregion.NewJSONLogger(stderr, level)
	}
	logger.LogPlatform(ctx)

	hasher, err := xxregion.New(cfg.algo, cfg.seed)
	if err != nil {
		return err
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	svc, err := digest.NewService(store,
		digest.WithHasher(hasher),
		digest.WithLogger(logger.WithAlgorithm(hasher.Name())),
		digest.WithConcurrency(cfg.jobs),
		digest.WithDecompression(cfg.decompress),
		digest.WithMemoryLimit(cfg.memLimit),
		digest.WithIOLimit(cfg.ioLimit),
	)
	if err != nil {
		return err
	}

	switch {
	case cfg.check != "":
		return verify(ctx, cfg, svc, stdout, stderr)
	case cfg.write != "":
		ledger, err := openLedger(ctx, cfg, cfg.write)
		if err != nil {
			return err
		}
		results, err := svc.Record(ctx, ledger, storeNames(cfg))
		if err != nil {
			return err
		}
		printResults(stdout, cfg.names, results)
		return nil
	default:
		results, errs := svc.SumEach(ctx, storeNames(cfg))
		failed := 0
		for i, err := range errs {
			if err != nil {
				fmt.Fprintf(stderr, "xxsum: %v\n", err)
				failed++
				continue
			}
			fmt.Fprintf(stdout, "%s  %s\n", results[i].Hex, cfg.names[i])
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d inputs failed", failed, len(errs))
		}
		return nil
	}
}

func verify(ctx context.Context, cfg *config, svc *digest.Service, stdout, stderr io.Writer) error {
	ledger, err := openLedger(ctx, cfg, cfg.check)
	if err != nil {
		return err
	}

	names := storeNames(cfg)
	display := cfg.names
	if len(names) == 0 {
		if fl, ok := ledger.(*digest.FileLedger); ok {
			names = fl.Names()
			display = names
		}
	}

	checks, _ := svc.Verify(ctx, ledger, names)
	mismatched, unreadable := 0, 0
	for i, c := range checks {
		var mismatch *digest.MismatchError
		switch {
		case c.OK():
			fmt.Fprintf(stdout, "%s: OK\n", display[i])
		case errors.As(c.Err, &mismatch):
			mismatched++
			fmt.Fprintf(stdout, "%s: FAILED\n", display[i])
		default:
			unreadable++
			fmt.Fprintf(stdout, "%s: FAILED open or read\n", display[i])
			fmt.Fprintf(stderr, "xxsum: %v\n", c.Err)
		}
	}

	if unreadable > 0 {
		fmt.Fprintf(stderr, "xxsum: WARNING: %d listed files could not be read\n", unreadable)
	}
	if mismatched > 0 {
		fmt.Fprintf(stderr, "xxsum: WARNING: %d computed checksums did NOT match\n", mismatched)
	}
	if mismatched+unreadable > 0 {
		return fmt.Errorf("%d of %d checks failed", mismatched+unreadable, len(checks))
	}
	return nil
}

func openStore(ctx context.Context, cfg *config) (blobstore.BlobStore, error) {
	switch {
	case cfg.s3Bucket != "":
		return s3.New(ctx, cfg.s3Bucket, s3.WithPrefix(cfg.prefix))
	case cfg.minioHost != "":
		return minio.New(cfg.minioHost, cfg.bucket, minio.WithPrefix(cfg.prefix))
	default:
		return blobstore.NewLocalStore(cfg.root), nil
	}
}

func openLedger(ctx context.Context, cfg *config, name string) (digest.Ledger, error) {
	if cfg.ddbTable != "" {
		return ddb.New(ctx, cfg.ddbTable, name)
	}
	return digest.OpenFileLedger(name)
}

// storeNames maps command-line names to store names. Local paths are made
// relative to the root.
func storeNames(cfg *config) []string {
	if cfg.s3Bucket != "" || cfg.minioHost != "" {
		return cfg.names
	}
	root, err := filepath.Abs(cfg.root)
	if err != nil {
		return cfg.names
	}
	out := make([]string, len(cfg.names))
	for i, name := range cfg.names {
		out[i] = name
		if !filepath.IsAbs(name) {
			continue
		}
		if rel, err := filepath.Rel(root, name); err == nil {
			out[i] = filepath.ToSlash(rel)
		}
	}
	return out
}

func printResults(w io.Writer, display []string, results []digest.Result) {
	for i, r := range results {
		fmt.Fprintf(w, "%s  %s\n", r.Hex, display[i])
	}
}
