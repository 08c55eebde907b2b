package session

import (
	"context"
	"io"

	"mediavault/internal/domain/model"
)

// CompletedUpload is the assembled result of a chunked upload, staged as a
// temp file the ingestion pipeline takes ownership of.
type CompletedUpload struct {
	TempPath    string
	ContentType string
	SizeBytes   int64
}

// Store tracks in-flight chunked uploads. Chunk bytes are buffered on disk
// under a per-upload directory; sessions expire when left untouched past
// the staleness threshold.
type Store interface {
	// Init creates a session and its chunk directory, sweeping stale
	// sessions first, and returns the opaque upload id.
	Init(ctx context.Context, owner model.Principal, contentType string) (string, error)

	// PutChunk stores one chunk. Out-of-order and re-sent chunks are both
	// accepted; the recorded chunk count only ever advances. An unknown id
	// or an owner mismatch is reported as not found.
	PutChunk(ctx context.Context, uploadID string, index int, body io.Reader, owner model.Principal) (int64, error)

	// Complete consumes the session, concatenating chunks 0..chunk_count in
	// index order into a temp file. A missing chunk is a fatal assembly
	// error. The chunk directory is removed whether assembly succeeds or
	// fails.
	Complete(ctx context.Context, uploadID string, owner model.Principal) (*CompletedUpload, error)
}
