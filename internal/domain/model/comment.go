package model

import "time"

// Comment is one user comment on a media item, persisted in the item's
// comments sidecar file.
type Comment struct {
	ID             string    `json:"id"`
	MediaID        string    `json:"media_id"`
	AuthorProvider string    `json:"author_provider"`
	AuthorID       uint64    `json:"author_id"`
	AuthorName     string    `json:"author_name"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"created_at"`
}
