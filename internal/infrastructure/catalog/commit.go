package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glaslos/tlsh"
	"github.com/google/uuid"

	"mediavault/internal/domain/model"
	"mediavault/internal/domain/repository/catalog"
	"mediavault/pkg/logger"
	"mediavault/pkg/utils"
)

// Commit runs the dedup decision tree for a fingerprinted candidate and,
// on the non-duplicate branches, makes the new entry durable before
// returning.
//
// The exact-hash check and the claim of the digest are a single
// LoadOrStore so that two concurrent uploads of identical bytes can never
// both commit an owning file: the loser observes the winner's claim and
// takes the duplicate branch.
func (c *Catalog) Commit(_ context.Context, cand catalog.Candidate) (catalog.CommitResult, error) {
	newID := uuid.New().String()

	if existingID, loaded := c.exact.LoadOrStore(cand.SHA256, newID); loaded {
		removeQuietly(cand.TempPath)

		return catalog.CommitResult{
			Outcome:    catalog.DuplicateExact,
			OriginalID: existingID,
		}, nil
	}

	if originalID, ok := c.findSimilar(cand.TLSH); ok {
		// Not an owner: release the digest claim taken above.
		c.exact.Delete(cand.SHA256)

		return c.commitReference(newID, originalID, cand)
	}

	return c.commitOwner(newID, cand)
}

// commitReference records a new catalog entry that shares the original's
// backing file. The uploaded bytes are discarded; only metadata is kept.
func (c *Catalog) commitReference(newID, originalID string, cand catalog.Candidate) (catalog.CommitResult, error) {
	original, ok := c.items.Load(originalID)
	if !ok || !original.Owns() {
		// The fuzzy index only holds owning items; a referencing original
		// would break the one-hop rule.
		removeQuietly(cand.TempPath)

		return catalog.CommitResult{}, fmt.Errorf("similar item %s is not an owning item", originalID)
	}

	removeQuietly(cand.TempPath)

	item := c.newItem(newID, cand)
	item.Filename = original.Filename
	item.ReferencesID = originalID

	if err := c.persistItem(item); err != nil {
		return catalog.CommitResult{}, err
	}
	c.items.Store(newID, item)

	return catalog.CommitResult{
		Outcome:    catalog.DuplicateSimilar,
		Item:       item,
		OriginalID: originalID,
	}, nil
}

// commitOwner adopts the candidate's file as a genuinely new payload and
// registers it in both indices.
func (c *Catalog) commitOwner(newID string, cand catalog.Candidate) (catalog.CommitResult, error) {
	ext := utils.GetExtensionFromMimeType(cand.ContentType)
	finalFilename := newID + ext
	finalPath := filepath.Join(c.uploadDir, finalFilename)

	if err := os.Rename(cand.TempPath, finalPath); err != nil {
		c.exact.Delete(cand.SHA256)
		removeQuietly(cand.TempPath)

		return catalog.CommitResult{}, fmt.Errorf("adopt upload file: %w", err)
	}

	item := c.newItem(newID, cand)
	item.Filename = finalFilename

	if err := c.persistItem(item); err != nil {
		c.exact.Delete(cand.SHA256)
		removeQuietly(finalPath)

		return catalog.CommitResult{}, err
	}

	if cand.TLSH != "" {
		c.fuzzy.Store(newID, cand.TLSH)
	}
	c.items.Store(newID, item)

	return catalog.CommitResult{
		Outcome: catalog.CommittedNew,
		Item:    item,
	}, nil
}

func (c *Catalog) newItem(id string, cand catalog.Candidate) *model.MediaItem {
	return &model.MediaItem{
		ID:                 id,
		Title:              cand.Title,
		ContentType:        cand.ContentType,
		SizeBytes:          cand.SizeBytes,
		SHA256:             cand.SHA256,
		TLSH:               cand.TLSH,
		UploadedByProvider: cand.Uploader.Provider,
		UploadedByID:       cand.Uploader.ID,
		UploadedByName:     cand.Uploader.Name,
		UploadedAt:         time.Now().UTC(),
		NSFW:               cand.Flags.NSFW,
		Unlisted:           cand.Flags.Unlisted,
		CommentsDisabled:   cand.Flags.CommentsDisabled,
	}
}

// findSimilar scans the fuzzy index for an owning item within the
// similarity threshold of digest.
func (c *Catalog) findSimilar(digest string) (string, bool) {
	if digest == "" {
		return "", false
	}

	candidate, err := tlsh.ParseStringToTlsh(digest)
	if err != nil {
		return "", false
	}

	var matchID string
	c.fuzzy.Range(func(id, existing string) bool {
		parsed, err := tlsh.ParseStringToTlsh(existing)
		if err != nil {
			return true
		}
		if parsed.Diff(candidate) < c.threshold {
			matchID = id

			return false
		}

		return true
	})

	return matchID, matchID != ""
}

func removeQuietly(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warn("could not remove file", "path", path, "err", err)
	}
}
