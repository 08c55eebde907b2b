package usecase

import (
	"context"
	"fmt"

	"mediavault/internal/domain/apperr"
	"mediavault/internal/domain/model"
	"mediavault/internal/domain/repository/catalog"
)

var classPrefixes = map[string]string{
	"video": "video/",
	"audio": "audio/",
	"image": "image/",
	"text":  "text/",
}

// Lister implements the Lister abstraction for browsing the catalog.
type Lister struct {
	catalog catalog.Catalog
}

// NewLister creates a new Lister usecase.
func NewLister(cat catalog.Catalog) *Lister {
	return &Lister{catalog: cat}
}

// ListItems returns the listed items of one media class, newest first.
func (l *Lister) ListItems(_ context.Context, mediaClass string) ([]*model.MediaItem, error) {
	prefix, ok := classPrefixes[mediaClass]
	if !ok {
		return nil, fmt.Errorf("%w: unknown media class %q", apperr.ErrInvalidInput, mediaClass)
	}

	return l.catalog.List(prefix), nil
}
