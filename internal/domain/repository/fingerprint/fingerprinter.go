package fingerprint

import "context"

// Digest is the identity of one payload.
type Digest struct {
	// SHA256 is the hex-encoded exact digest.
	SHA256 string
	// TLSH is the hex-encoded fuzzy digest. Empty when not requested or
	// when the payload is too small or uniform for the algorithm.
	TLSH string
}

// Fingerprinter computes content digests off the request goroutine.
type Fingerprinter interface {
	Fingerprint(ctx context.Context, path string, wantFuzzy bool) (Digest, error)
}
