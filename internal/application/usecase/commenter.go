package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"mediavault/internal/domain/apperr"
	"mediavault/internal/domain/model"
	"mediavault/internal/domain/repository/catalog"
)

const maxCommentLen = 2000

// Commenter implements the comment thread operations on top of the
// catalog's sidecar store.
type Commenter struct {
	catalog  catalog.Catalog
	comments catalog.CommentStore
	admins   AdminRoster
}

// NewCommenter creates a new Commenter usecase.
func NewCommenter(cat catalog.Catalog, comments catalog.CommentStore, admins AdminRoster) *Commenter {
	return &Commenter{catalog: cat, comments: comments, admins: admins}
}

func (c *Commenter) AddComment(_ context.Context, mediaID, text string,
	author model.Principal,
) (*model.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" || len(text) > maxCommentLen {
		return nil, fmt.Errorf("%w: comment must be 1-%d characters", apperr.ErrInvalidInput, maxCommentLen)
	}

	item, err := c.catalog.Get(mediaID)
	if err != nil {
		return nil, err
	}
	if item.CommentsDisabled {
		return nil, apperr.ErrForbidden
	}

	comment := model.Comment{
		ID:             uuid.New().String(),
		MediaID:        mediaID,
		AuthorProvider: author.Provider,
		AuthorID:       author.ID,
		AuthorName:     author.Name,
		Text:           text,
		CreatedAt:      time.Now().UTC(),
	}

	if err := c.comments.AddComment(mediaID, comment); err != nil {
		return nil, err
	}

	return &comment, nil
}

func (c *Commenter) ListComments(_ context.Context, mediaID string) ([]model.Comment, error) {
	return c.comments.ListComments(mediaID)
}

func (c *Commenter) DeleteComment(_ context.Context, mediaID, commentID string,
	requester model.Principal,
) error {
	return c.comments.DeleteComment(mediaID, commentID, requester, c.admins.IsAdmin(requester))
}
