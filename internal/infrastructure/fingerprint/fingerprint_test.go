package fingerprint_test

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediavault/internal/infrastructure/fingerprint"
)

func writeFile(t *testing.T, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "payload")
	require.NoError(t, os.WriteFile(path, data, 0o640))

	return path
}

func TestFingerprintExact(t *testing.T) {
	hasher := fingerprint.New(fingerprint.Config{})

	data := []byte("hello, world")
	sum := sha256.Sum256(data)

	digest, err := hasher.Fingerprint(context.Background(), writeFile(t, data), false)
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(sum[:]), digest.SHA256)
	assert.Empty(t, digest.TLSH, "fuzzy digest must not be computed unless requested")
}

func TestFingerprintFuzzyOnSmallPayload(t *testing.T) {
	hasher := fingerprint.New(fingerprint.Config{Workers: 1})

	// Too small for a fuzzy digest; the exact digest must still come back.
	digest, err := hasher.Fingerprint(context.Background(), writeFile(t, []byte("tiny")), true)
	require.NoError(t, err)
	assert.NotEmpty(t, digest.SHA256)
}

func TestFingerprintFuzzyOnLargePayload(t *testing.T) {
	hasher := fingerprint.New(fingerprint.Config{Workers: 1})

	data := make([]byte, 4096)
	_, err := rand.Read(data)
	require.NoError(t, err)

	digest, err := hasher.Fingerprint(context.Background(), writeFile(t, data), true)
	require.NoError(t, err)
	assert.NotEmpty(t, digest.TLSH, "varied 4KB payload must produce a fuzzy digest")
}

func TestFingerprintMissingFile(t *testing.T) {
	hasher := fingerprint.New(fingerprint.Config{})

	_, err := hasher.Fingerprint(context.Background(), filepath.Join(t.TempDir(), "absent"), false)
	assert.Error(t, err)
}
