package abstraction

import (
	"context"

	"mediavault/internal/domain/repository/catalog"
)

type Resolver interface {
	// ResolveFile locates an item's backing file for the byte-range
	// responder.
	ResolveFile(ctx context.Context, id string) (catalog.ResolvedFile, error)

	// ExtractSegment cuts a clip out of a committed video.
	ExtractSegment(ctx context.Context, id string, startMS, endMS int64) ([]byte, error)
}
