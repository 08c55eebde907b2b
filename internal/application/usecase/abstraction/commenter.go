package abstraction

import (
	"context"

	"mediavault/internal/domain/model"
)

type Commenter interface {
	AddComment(ctx context.Context, mediaID, text string, author model.Principal) (*model.Comment, error)
	ListComments(ctx context.Context, mediaID string) ([]model.Comment, error)
	DeleteComment(ctx context.Context, mediaID, commentID string, requester model.Principal) error
}
