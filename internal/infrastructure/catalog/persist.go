package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mediavault/internal/domain/model"
	"mediavault/pkg/logger"
)

// persistItem writes the item's metadata record. It is the durability
// boundary: no commit or flag mutation returns success before this does.
func (c *Catalog) persistItem(item *model.MediaItem) error {
	data, err := json.MarshalIndent(item, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize metadata for %s: %w", item.ID, err)
	}

	path := filepath.Join(c.uploadDir, item.ID+".meta.json")
	if err := os.WriteFile(path, data, 0o640); err != nil {
		return fmt.Errorf("write metadata %s: %w", path, err)
	}

	return nil
}

func (c *Catalog) deleteItemMeta(id string) {
	path := filepath.Join(c.uploadDir, id+".meta.json")
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warn("could not delete metadata file", "path", path, "err", err)
	}
}

// recover rebuilds the catalog, both indices and the comment threads by
// scanning the upload directory for persisted records.
func (c *Catalog) recover() error {
	if err := os.MkdirAll(c.uploadDir, 0o750); err != nil {
		return fmt.Errorf("create upload directory: %w", err)
	}

	entries, err := os.ReadDir(c.uploadDir)
	if err != nil {
		return fmt.Errorf("scan upload directory: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()

		switch {
		case strings.HasSuffix(name, ".meta.json"):
			c.recoverItem(filepath.Join(c.uploadDir, name))
		case strings.HasSuffix(name, ".comments.json"):
			mediaID := strings.TrimSuffix(name, ".comments.json")
			c.recoverComments(mediaID, filepath.Join(c.uploadDir, name))
		}
	}

	logger.Info("catalog recovered", "items", c.items.Size())

	return nil
}

func (c *Catalog) recoverItem(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("could not read metadata file", "path", path, "err", err)

		return
	}

	item := &model.MediaItem{}
	if err := json.Unmarshal(data, item); err != nil {
		logger.Warn("could not parse metadata file", "path", path, "err", err)

		return
	}

	if item.Owns() {
		c.exact.Store(item.SHA256, item.ID)
		if item.TLSH != "" {
			c.fuzzy.Store(item.ID, item.TLSH)
		}
	}
	c.items.Store(item.ID, item)
}

func (c *Catalog) recoverComments(mediaID, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("could not read comments file", "path", path, "err", err)

		return
	}

	var comments []model.Comment
	if err := json.Unmarshal(data, &comments); err != nil {
		logger.Warn("could not parse comments file", "path", path, "err", err)

		return
	}

	c.comments.Store(mediaID, comments)
}
