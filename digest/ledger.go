package digest

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hupe1980/xxregion"
)

// ErrMalformedLedger is returned for unparsable ledger lines.
var ErrMalformedLedger = errors.New("malformed ledger")

// Entry is a recorded digest.
type Entry struct {
	Name      string
	Algorithm string
	Hex       string
}

// EntryOf converts a Result into a ledger entry.
func EntryOf(r Result) Entry {
	return Entry{Name: r.Name, Algorithm: r.Algorithm, Hex: r.Hex}
}

// Ledger stores expected digests by blob name.
type Ledger interface {
	// Lookup returns the entry for name. ok is false if none is recorded.
	Lookup(ctx context.Context, name string) (e Entry, ok bool, err error)
	// Record stores entries, replacing existing ones with the same name.
	Record(ctx context.Context, entries ...Entry) error
}

// FileLedger is a Ledger backed by a checksum file in xxhsum format:
//
//	<hex>  <name>
//
// The algorithm follows from the digest width. BSD-style lines
// ("XXH64 (name) = hex") are accepted on read.
type FileLedger struct {
	path string

	mu      sync.RWMutex
	order   []string
	entries map[string]Entry
}

// OpenFileLedger loads the ledger at path. A missing file yields an empty
// ledger that is created on the first Record.
func OpenFileLedger(path string) (*FileLedger, error) {
	l := &FileLedger{path: path, entries: make(map[string]Entry)}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return l, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := l.load(f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

func (l *FileLedger) load(r io.Reader) error {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		e, err := ParseLine(text)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		l.put(e)
	}
	return sc.Err()
}

// ParseLine parses one ledger line in GNU or BSD format.
func ParseLine(line string) (Entry, error) {
	// BSD: ALGO (name) = hex
	if algo, rest, ok := strings.Cut(line, " ("); ok && !strings.Contains(algo, " ") {
		if i := strings.LastIndex(rest, ") = "); i >= 0 {
			e := Entry{Name: rest[:i], Algorithm: strings.ToLower(algo), Hex: strings.ToLower(rest[i+4:])}
			if err := checkHex(e.Hex); err != nil {
				return Entry{}, err
			}
			return e, nil
		}
	}

	// GNU: hex  name (binary mode marks the name with '*')
	hex, name, ok := strings.Cut(line, " ")
	if !ok || len(name) < 2 || (name[0] != ' ' && name[0] != '*') {
		return Entry{}, fmt.Errorf("%w: %q", ErrMalformedLedger, line)
	}
	if err := checkHex(hex); err != nil {
		return Entry{}, err
	}
	algo, err := algorithmForHex(hex)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Name: name[1:], Algorithm: algo, Hex: strings.ToLower(hex)}, nil
}

// FormatLine renders e in GNU format.
func FormatLine(e Entry) string {
	return e.Hex + "  " + e.Name
}

func checkHex(s string) error {
	if s == "" {
		return fmt.Errorf("%w: empty digest", ErrMalformedLedger)
	}
	for _, c := range s {
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return fmt.Errorf("%w: invalid digest %q", ErrMalformedLedger, s)
		}
	}
	return nil
}

func algorithmForHex(hex string) (string, error) {
	switch len(hex) {
	case 8:
		return xxregion.XXH32, nil
	case 16:
		return xxregion.XXH64, nil
	default:
		return "", fmt.Errorf("%w: digest %q has unsupported width", ErrMalformedLedger, hex)
	}
}

func (l *FileLedger) put(e Entry) {
	if _, ok := l.entries[e.Name]; !ok {
		l.order = append(l.order, e.Name)
	}
	l.entries[e.Name] = e
}

// Lookup implements Ledger.
func (l *FileLedger) Lookup(_ context.Context, name string) (Entry, bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.entries[name]
	return e, ok, nil
}

// Names returns the recorded names in file order.
func (l *FileLedger) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]string(nil), l.order...)
}

// Record implements Ledger. The file is rewritten atomically.
func (l *FileLedger) Record(ctx context.Context, entries ...Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, e := range entries {
		l.put(e)
	}
	return l.flush()
}

func (l *FileLedger) flush() error {
	dir := filepath.Dir(l.path)
	f, err := os.CreateTemp(dir, "."+filepath.Base(l.path)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	w := bufio.NewWriter(f)
	for _, name := range l.order {
		if _, err = fmt.Fprintln(w, FormatLine(l.entries[name])); err != nil {
			break
		}
	}
	if err == nil {
		err = w.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, l.path)
}
