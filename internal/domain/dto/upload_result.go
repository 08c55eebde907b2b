package dto

import "mediavault/internal/domain/model"

// Upload outcome kinds. Duplicate detection is a successful, branching
// outcome of the pipeline, not an error.
const (
	OutcomeNew              = "new"
	OutcomeDuplicateExact   = "duplicate_exact"
	OutcomeDuplicateSimilar = "duplicate_similar"
)

// UploadOutcome is the pipeline's answer to a single-shot or completed
// chunked upload.
type UploadOutcome struct {
	Outcome string `json:"outcome"`
	// Item is the committed entry. Nil for the exact-duplicate outcome,
	// where no new entry is created.
	Item *model.MediaItem `json:"item,omitempty"`
	// OriginalID names the already-committed item the upload duplicated,
	// for both the exact and the similar outcome.
	OriginalID string `json:"original_id,omitempty"`
}

// InitUploadReceipt acknowledges a new chunked upload session.
type InitUploadReceipt struct {
	UploadID string `json:"upload_id"`
}

// ChunkReceipt acknowledges a single stored chunk.
type ChunkReceipt struct {
	UploadID string `json:"upload_id"`
	Index    int    `json:"index"`
	Received int64  `json:"received"`
}
