// Package catalog implements the concurrent, filesystem-persisted media
// catalog together with its exact-hash and fuzzy-hash deduplication
// indices. Items are immutable once published to the map; every mutation
// replaces the entry wholesale under a per-id lock.
package catalog

import (
	"sort"
	"strings"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"

	"mediavault/internal/domain/apperr"
	"mediavault/internal/domain/model"
)

type Config struct {
	// SimilarityThreshold is the TLSH distance below which two video
	// payloads are considered the same content.
	SimilarityThreshold int `yaml:"similarity_threshold"`
}

type Catalog struct {
	uploadDir string
	threshold int

	items *xsync.MapOf[string, *model.MediaItem]
	// exact maps sha256 -> id of the owning (non-referencing) item.
	exact *xsync.MapOf[string, string]
	// fuzzy maps owning item id -> TLSH digest.
	fuzzy    *xsync.MapOf[string, string]
	comments *xsync.MapOf[string, []model.Comment]

	locks *xsync.MapOf[string, *sync.Mutex]
}

// New builds a catalog over uploadDir, recovering all items, indices and
// comment threads from the metadata files found there.
func New(uploadDir string, cfg Config) (*Catalog, error) {
	threshold := cfg.SimilarityThreshold
	if threshold <= 0 {
		threshold = 100
	}

	c := &Catalog{
		uploadDir: uploadDir,
		threshold: threshold,
		items:     xsync.NewMapOf[string, *model.MediaItem](),
		exact:     xsync.NewMapOf[string, string](),
		fuzzy:     xsync.NewMapOf[string, string](),
		comments:  xsync.NewMapOf[string, []model.Comment](),
		locks:     xsync.NewMapOf[string, *sync.Mutex](),
	}

	if err := c.recover(); err != nil {
		return nil, err
	}

	return c, nil
}

// lock serializes operations that touch the same id. Operations against
// different ids never block each other.
func (c *Catalog) lock(id string) func() {
	mu, _ := c.locks.LoadOrStore(id, &sync.Mutex{})
	mu.Lock()

	return mu.Unlock
}

func (c *Catalog) Get(id string) (*model.MediaItem, error) {
	item, ok := c.items.Load(id)
	if !ok {
		return nil, apperr.ErrNotFound
	}

	return item, nil
}

// List returns the listed (non-unlisted) items of one media class,
// newest first.
func (c *Catalog) List(mimePrefix string) []*model.MediaItem {
	var out []*model.MediaItem
	c.items.Range(func(_ string, item *model.MediaItem) bool {
		if !item.Unlisted && strings.HasPrefix(item.ContentType, mimePrefix) {
			out = append(out, item)
		}

		return true
	})

	sort.Slice(out, func(i, j int) bool {
		return out[i].UploadedAt.After(out[j].UploadedAt)
	})

	return out
}

// Size reports how many items are committed.
func (c *Catalog) Size() int {
	return c.items.Size()
}
