package abstraction

import (
	"context"
	"io"

	"mediavault/internal/domain/dto"
	"mediavault/internal/domain/model"
)

// UploadInput carries everything the request layer supplies for a
// single-shot upload.
type UploadInput struct {
	Title       string
	ContentType string
	Body        io.Reader
	// DeclaredSize is the request Content-Length, -1 when unknown.
	DeclaredSize int64
	Flags        model.Flags
	Uploader     model.Principal
}

type Uploader interface {
	Upload(ctx context.Context, in UploadInput) (*dto.UploadOutcome, error)
	InitUpload(ctx context.Context, contentType string, owner model.Principal) (*dto.InitUploadReceipt, error)
	PutChunk(ctx context.Context, uploadID string, index int, body io.Reader,
		owner model.Principal) (*dto.ChunkReceipt, error)
	CompleteUpload(ctx context.Context, uploadID, title string, flags model.Flags,
		owner model.Principal) (*dto.UploadOutcome, error)
}
