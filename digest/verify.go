package digest

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoEntry is reported for blobs missing from the ledger.
	ErrNoEntry = errors.New("no ledger entry")
	// ErrAlgorithmMismatch is reported when a ledger entry was produced by a
	// different algorithm than the service uses.
	ErrAlgorithmMismatch = errors.New("algorithm mismatch")
)

// MismatchError reports a digest that differs from the ledger.
type MismatchError struct {
	Name string
	Want string
	Got  string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: digest mismatch: want %s, got %s", e.Name, e.Want, e.Got)
}

// Check is the verification outcome for one blob.
type Check struct {
	Name string
	Want string
	Got  string
	// Err is nil if the digest matched.
	Err error
}

// OK reports whether the blob matched its ledger entry.
func (c Check) OK() bool { return c.Err == nil }

// Verify digests names and compares them to ledger. Every name gets a Check.
// The returned error joins all failures.
func (s *Service) Verify(ctx context.Context, ledger Ledger, names []string) ([]Check, error) {
	checks := make([]Check, len(names))
	var pending []int

	for i, name := range names {
		checks[i].Name = name
		e, ok, err := ledger.Lookup(ctx, name)
		switch {
		case err != nil:
			checks[i].Err = fmt.Errorf("%s: %w", name, err)
		case !ok:
			checks[i].Err = fmt.Errorf("%s: %w", name, ErrNoEntry)
		case !strings.EqualFold(e.Algorithm, s.opts.hasher.Name()):
			checks[i].Want = e.Hex
			checks[i].Err = fmt.Errorf("%s: %w: recorded %s, using %s", name, ErrAlgorithmMismatch, e.Algorithm, s.opts.hasher.Name())
		default:
			checks[i].Want = strings.ToLower(e.Hex)
			pending = append(pending, i)
		}
	}

	toSum := make([]string, len(pending))
	for j, i := range pending {
		toSum[j] = names[i]
	}
	results, errs := s.SumEach(ctx, toSum)

	for j, i := range pending {
		c := &checks[i]
		if errs[j] != nil {
			c.Err = errs[j]
			continue
		}
		c.Got = results[j].Hex
		if c.Got != c.Want {
			c.Err = &MismatchError{Name: c.Name, Want: c.Want, Got: c.Got}
			s.opts.logger.LogMismatch(ctx, c.Name, c.Want, c.Got)
		}
	}

	var failed []error
	for _, c := range checks {
		if c.Err != nil {
			failed = append(failed, c.Err)
		}
	}
	return checks, errors.Join(failed...)
}

// Record digests names and stores the results in ledger.
func (s *Service) Record(ctx context.Context, ledger Ledger, names []string) ([]Result, error) {
	results, err := s.SumAll(ctx, names)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, len(results))
	for i, r := range results {
		entries[i] = EntryOf(r)
	}
	if err := ledger.Record(ctx, entries...); err != nil {
		return nil, fmt.Errorf("record ledger: %w", err)
	}
	return results, nil
}
