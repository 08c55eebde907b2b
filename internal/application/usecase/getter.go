package usecase

import (
	"context"

	"mediavault/internal/domain/model"
	"mediavault/internal/domain/repository/catalog"
)

// Getter implements the Getter abstraction for retrieving media items.
type Getter struct {
	catalog catalog.Catalog
}

// NewGetter creates a new Getter usecase.
func NewGetter(cat catalog.Catalog) *Getter {
	return &Getter{catalog: cat}
}

// GetItem retrieves a committed media item by id.
func (g *Getter) GetItem(_ context.Context, id string) (*model.MediaItem, error) {
	return g.catalog.Get(id)
}
