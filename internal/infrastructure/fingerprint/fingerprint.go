package fingerprint

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"

	"github.com/glaslos/tlsh"
	"golang.org/x/sync/semaphore"

	"mediavault/internal/domain/repository/fingerprint"
)

type Config struct {
	// Workers bounds how many digests may be computed at once. Hashing a
	// 100 MB buffer is CPU-bound; the bound keeps a burst of large uploads
	// from starving the request goroutines.
	Workers int64 `yaml:"workers"`
}

// Hasher computes exact and fuzzy digests on a bounded worker pool. The
// calling goroutine suspends until its job completes but never computes
// the digest itself.
type Hasher struct {
	sem *semaphore.Weighted
}

func New(cfg Config) *Hasher {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 2
	}

	return &Hasher{sem: semaphore.NewWeighted(workers)}
}

type result struct {
	digest fingerprint.Digest
	err    error
}

// Fingerprint computes the hex-encoded SHA-256 of the file at path and,
// when wantFuzzy is set, its TLSH digest. The fuzzy digest comes back
// empty when the payload is too small or too uniform for the algorithm;
// that is not an error.
func (h *Hasher) Fingerprint(ctx context.Context, path string, wantFuzzy bool) (fingerprint.Digest, error) {
	out := make(chan result, 1)

	go func() {
		if err := h.sem.Acquire(ctx, 1); err != nil {
			out <- result{err: err}

			return
		}
		defer h.sem.Release(1)

		out <- compute(path, wantFuzzy)
	}()

	select {
	case <-ctx.Done():
		return fingerprint.Digest{}, ctx.Err()
	case r := <-out:
		return r.digest, r.err
	}
}

func compute(path string, wantFuzzy bool) result {
	data, err := os.ReadFile(path)
	if err != nil {
		return result{err: err}
	}

	sum := sha256.Sum256(data)
	digest := fingerprint.Digest{SHA256: hex.EncodeToString(sum[:])}

	if wantFuzzy {
		if fuzzy, err := tlsh.HashBytes(data); err == nil {
			digest.TLSH = fuzzy.String()
		}
	}

	return result{digest: digest}
}
