package catalog

import (
	"context"

	"mediavault/internal/domain/model"
)

// Commit outcomes.
const (
	CommittedNew     = "new"
	DuplicateExact   = "duplicate_exact"
	DuplicateSimilar = "duplicate_similar"
)

// Candidate is a fully fingerprinted upload awaiting the dedup decision.
// TempPath points at the assembled (and possibly transcoded) bytes; the
// catalog either adopts the file or deletes it.
type Candidate struct {
	TempPath    string
	Title       string
	ContentType string
	SizeBytes   int64
	SHA256      string
	TLSH        string
	Uploader    model.Principal
	Flags       model.Flags
}

// CommitResult describes which branch of the dedup decision tree a
// candidate took.
type CommitResult struct {
	Outcome string
	// Item is nil for DuplicateExact; no entry is created on that branch.
	Item *model.MediaItem
	// OriginalID is the already committed item the candidate duplicated.
	OriginalID string
}

// ResolvedFile is a media file location for the byte-range responder,
// with the one-hop reference already followed.
type ResolvedFile struct {
	Path        string
	ContentType string
	IsVideo     bool
}

// Catalog is the concurrent, filesystem-persisted map of committed media
// items together with its deduplication indices. All file and index
// mutations for committed content go through it.
type Catalog interface {
	Commit(ctx context.Context, cand Candidate) (CommitResult, error)
	Get(id string) (*model.MediaItem, error)
	List(mimePrefix string) []*model.MediaItem
	Delete(ctx context.Context, id string) (*model.MediaItem, error)
	UpdateFlags(ctx context.Context, id string, flags model.Flags) (*model.MediaItem, error)
	ResolveFile(id string) (ResolvedFile, error)
}

// CommentStore keeps per-item comment threads in sidecar files that live
// next to the item metadata.
type CommentStore interface {
	AddComment(mediaID string, c model.Comment) error
	ListComments(mediaID string) ([]model.Comment, error)
	DeleteComment(mediaID, commentID string, requester model.Principal, isAdmin bool) error
}
