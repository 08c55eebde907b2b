package usecase

import (
	"context"
	"fmt"

	"mediavault/internal/domain/apperr"
	"mediavault/internal/domain/repository/catalog"
	"mediavault/internal/domain/repository/transcode"
)

// Resolver serves the byte-range responder and the clip extractor.
type Resolver struct {
	catalog    catalog.Catalog
	transcoder transcode.Transcoder
}

// NewResolver creates a new Resolver usecase.
func NewResolver(cat catalog.Catalog, transcoder transcode.Transcoder) *Resolver {
	return &Resolver{catalog: cat, transcoder: transcoder}
}

// ResolveFile locates an item's backing file, following a reference link
// one hop.
func (r *Resolver) ResolveFile(_ context.Context, id string) (catalog.ResolvedFile, error) {
	return r.catalog.ResolveFile(id)
}

// ExtractSegment re-encodes the [startMS, endMS) range of a committed
// video into a streamable buffer. endMS <= 0 means "to the end".
func (r *Resolver) ExtractSegment(ctx context.Context, id string, startMS, endMS int64) ([]byte, error) {
	if startMS < 0 || (endMS > 0 && endMS <= startMS) {
		return nil, fmt.Errorf("%w: end must be greater than start", apperr.ErrInvalidInput)
	}

	resolved, err := r.catalog.ResolveFile(id)
	if err != nil {
		return nil, err
	}
	if !resolved.IsVideo {
		return nil, fmt.Errorf("%w: segment extraction is limited to video", apperr.ErrInvalidInput)
	}

	return r.transcoder.ExtractSegment(ctx, resolved.Path, startMS, endMS)
}
