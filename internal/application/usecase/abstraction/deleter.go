package abstraction

import (
	"context"

	"mediavault/internal/domain/model"
)

type Deleter interface {
	DeleteItem(ctx context.Context, id string, requester model.Principal) (*model.MediaItem, error)
}
