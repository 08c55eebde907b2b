package usecase

import (
	"context"

	"mediavault/internal/domain/apperr"
	"mediavault/internal/domain/model"
	"mediavault/internal/domain/repository/catalog"
)

// FlagUpdater implements moderation and visibility flag changes.
type FlagUpdater struct {
	catalog catalog.Catalog
	admins  AdminRoster
}

// NewFlagUpdater creates a new FlagUpdater usecase.
func NewFlagUpdater(cat catalog.Catalog, admins AdminRoster) *FlagUpdater {
	return &FlagUpdater{catalog: cat, admins: admins}
}

// UpdateFlags replaces an item's visibility flags. The uploader may
// change their own item; only a moderator may change the adult-content
// flag.
func (f *FlagUpdater) UpdateFlags(ctx context.Context, id string, flags model.Flags,
	requester model.Principal,
) (*model.MediaItem, error) {
	item, err := f.catalog.Get(id)
	if err != nil {
		return nil, err
	}

	isAdmin := f.admins.IsAdmin(requester)
	if !item.IsOwner(requester) && !isAdmin {
		return nil, apperr.ErrForbidden
	}
	if flags.NSFW != item.NSFW && !isAdmin {
		return nil, apperr.ErrForbidden
	}

	return f.catalog.UpdateFlags(ctx, id, flags)
}
