package abstraction

import (
	"context"

	"mediavault/internal/domain/model"
)

type FlagUpdater interface {
	UpdateFlags(ctx context.Context, id string, flags model.Flags,
		requester model.Principal) (*model.MediaItem, error)
}
