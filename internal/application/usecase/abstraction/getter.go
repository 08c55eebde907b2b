package abstraction

import (
	"context"

	"mediavault/internal/domain/model"
)

type Getter interface {
	GetItem(ctx context.Context, id string) (*model.MediaItem, error)
}
