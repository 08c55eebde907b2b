package model

import "time"

// UploadSession is the bookkeeping for a chunked upload in progress.
// It is owned exclusively by the principal that created it; every chunk
// write and the final completion are authenticated against that principal.
type UploadSession struct {
	Provider    string
	UserID      uint64
	ContentType string
	CreatedAt   time.Time
	// ChunkCount is the highest chunk index received plus one. It only
	// ever advances; re-sent chunks overwrite their slot on disk.
	ChunkCount int
}

// OwnedBy reports whether p created the session.
func (s *UploadSession) OwnedBy(p Principal) bool {
	return s.UserID == p.ID && s.Provider == p.Provider
}
