package usecase

import (
	"context"

	"mediavault/internal/domain/apperr"
	"mediavault/internal/domain/model"
	"mediavault/internal/domain/repository/catalog"
)

// Deleter implements the Deleter abstraction. Only the uploader or a
// moderator may remove an item.
type Deleter struct {
	catalog catalog.Catalog
	admins  AdminRoster
}

// NewDeleter creates a new Deleter usecase.
func NewDeleter(cat catalog.Catalog, admins AdminRoster) *Deleter {
	return &Deleter{catalog: cat, admins: admins}
}

// DeleteItem removes an item; the catalog decides whether the backing
// file and index entries go with it.
func (d *Deleter) DeleteItem(ctx context.Context, id string, requester model.Principal) (*model.MediaItem, error) {
	item, err := d.catalog.Get(id)
	if err != nil {
		return nil, err
	}

	if !item.IsOwner(requester) && !d.admins.IsAdmin(requester) {
		return nil, apperr.ErrForbidden
	}

	return d.catalog.Delete(ctx, id)
}
