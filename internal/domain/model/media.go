package model

import "time"

// Principal identifies an authenticated uploader. Authentication itself
// happens upstream; the pipeline only ever sees the resolved identity.
type Principal struct {
	Provider string `json:"provider"`
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
}

// Flags are the visibility switches of a media item.
type Flags struct {
	NSFW             bool `json:"nsfw"`
	Unlisted         bool `json:"unlisted"`
	CommentsDisabled bool `json:"comments_disabled"`
}

// MediaItem is one committed unit of content.
//
// Exactly one of the following holds: the item owns its backing file
// (ReferencesID empty), or it shares the bytes of another, non-referencing
// item (ReferencesID set). References are never chained; Filename and
// ContentType of a referencing item resolve through exactly one hop.
type MediaItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`

	SHA256 string `json:"sha256"`
	// TLSH is empty for non-video content and for payloads too small or
	// uniform for the algorithm to produce a digest.
	TLSH string `json:"tlsh_hash,omitempty"`

	UploadedByProvider string    `json:"uploaded_by_provider"`
	UploadedByID       uint64    `json:"uploaded_by_id"`
	UploadedByName     string    `json:"uploaded_by_name"`
	UploadedAt         time.Time `json:"uploaded_at"`

	NSFW             bool `json:"nsfw"`
	Unlisted         bool `json:"unlisted"`
	CommentsDisabled bool `json:"comments_disabled"`

	ReferencesID string `json:"references_id,omitempty"`
}

// IsOwner reports whether p uploaded the item.
func (m *MediaItem) IsOwner(p Principal) bool {
	return m.UploadedByID == p.ID && m.UploadedByProvider == p.Provider
}

// Owns reports whether the item owns an independent file on disk.
func (m *MediaItem) Owns() bool {
	return m.ReferencesID == ""
}
