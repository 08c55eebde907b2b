package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"mediavault/internal/domain/apperr"
	"mediavault/internal/domain/model"
	"mediavault/pkg/logger"
)

// AddComment appends a comment to the item's thread and persists the
// sidecar file. The comments-disabled gate is enforced by the caller.
func (c *Catalog) AddComment(mediaID string, comment model.Comment) error {
	unlock := c.lock(mediaID)
	defer unlock()

	if _, ok := c.items.Load(mediaID); !ok {
		return apperr.ErrNotFound
	}

	thread, _ := c.comments.Load(mediaID)
	thread = append(slices.Clone(thread), comment)

	if err := c.persistComments(mediaID, thread); err != nil {
		return err
	}
	c.comments.Store(mediaID, thread)

	return nil
}

func (c *Catalog) ListComments(mediaID string) ([]model.Comment, error) {
	if _, ok := c.items.Load(mediaID); !ok {
		return nil, apperr.ErrNotFound
	}

	thread, _ := c.comments.Load(mediaID)

	return thread, nil
}

// DeleteComment removes one comment. Only its author or an admin may
// delete it.
func (c *Catalog) DeleteComment(mediaID, commentID string, requester model.Principal, isAdmin bool) error {
	unlock := c.lock(mediaID)
	defer unlock()

	if _, ok := c.items.Load(mediaID); !ok {
		return apperr.ErrNotFound
	}

	thread, _ := c.comments.Load(mediaID)
	idx := slices.IndexFunc(thread, func(cm model.Comment) bool { return cm.ID == commentID })
	if idx < 0 {
		return apperr.ErrNotFound
	}

	own := thread[idx].AuthorID == requester.ID && thread[idx].AuthorProvider == requester.Provider
	if !own && !isAdmin {
		return apperr.ErrForbidden
	}

	thread = slices.Delete(slices.Clone(thread), idx, idx+1)

	if err := c.persistComments(mediaID, thread); err != nil {
		return err
	}
	c.comments.Store(mediaID, thread)

	return nil
}

func (c *Catalog) persistComments(mediaID string, thread []model.Comment) error {
	data, err := json.MarshalIndent(thread, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize comments for %s: %w", mediaID, err)
	}

	path := c.commentsPath(mediaID)
	if err := os.WriteFile(path, data, 0o640); err != nil {
		return fmt.Errorf("write comments %s: %w", path, err)
	}

	return nil
}

func (c *Catalog) deleteComments(mediaID string) {
	c.comments.Delete(mediaID)
	if err := os.Remove(c.commentsPath(mediaID)); err != nil && !os.IsNotExist(err) {
		logger.Warn("could not delete comments file", "media_id", mediaID, "err", err)
	}
}

func (c *Catalog) commentsPath(mediaID string) string {
	return filepath.Join(c.uploadDir, mediaID+".comments.json")
}
