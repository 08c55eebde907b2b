package abstraction

import (
	"context"

	"mediavault/internal/domain/model"
)

type Lister interface {
	ListItems(ctx context.Context, mediaClass string) ([]*model.MediaItem, error)
}
