package catalog

import (
	"context"
	"path/filepath"
	"strings"

	"mediavault/internal/domain/apperr"
	"mediavault/internal/domain/model"
	"mediavault/internal/domain/repository/catalog"
)

// Delete removes the catalog entry and its metadata file. The backing
// media file and the index entries are garbage-collected only when no
// other item still references the deleted one.
func (c *Catalog) Delete(_ context.Context, id string) (*model.MediaItem, error) {
	unlock := c.lock(id)
	defer unlock()

	item, ok := c.items.LoadAndDelete(id)
	if !ok {
		return nil, apperr.ErrNotFound
	}

	c.deleteItemMeta(id)
	c.deleteComments(id)

	if item.Owns() {
		hasReferences := false
		c.items.Range(func(_ string, other *model.MediaItem) bool {
			if other.ReferencesID == id {
				hasReferences = true

				return false
			}

			return true
		})

		if !hasReferences {
			c.exact.Delete(item.SHA256)
			c.fuzzy.Delete(id)
			removeQuietly(filepath.Join(c.uploadDir, item.Filename))
		}
	}

	return item, nil
}

// UpdateFlags replaces the item's visibility flags and persists the
// record before the new entry becomes visible.
func (c *Catalog) UpdateFlags(_ context.Context, id string, flags model.Flags) (*model.MediaItem, error) {
	unlock := c.lock(id)
	defer unlock()

	item, ok := c.items.Load(id)
	if !ok {
		return nil, apperr.ErrNotFound
	}

	updated := *item
	updated.NSFW = flags.NSFW
	updated.Unlisted = flags.Unlisted
	updated.CommentsDisabled = flags.CommentsDisabled

	if err := c.persistItem(&updated); err != nil {
		return nil, err
	}
	c.items.Store(id, &updated)

	return &updated, nil
}

// ResolveFile locates the backing file for an item, following a reference
// link through exactly one hop. Referenced items are never themselves
// references, so one hop always lands on an owner.
func (c *Catalog) ResolveFile(id string) (catalog.ResolvedFile, error) {
	item, ok := c.items.Load(id)
	if !ok {
		return catalog.ResolvedFile{}, apperr.ErrNotFound
	}

	owner := item
	if item.ReferencesID != "" {
		if ref, ok := c.items.Load(item.ReferencesID); ok {
			owner = ref
		}
	}

	return catalog.ResolvedFile{
		Path:        filepath.Join(c.uploadDir, owner.Filename),
		ContentType: owner.ContentType,
		IsVideo:     strings.HasPrefix(owner.ContentType, "video/"),
	}, nil
}
