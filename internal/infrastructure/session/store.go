// Package session implements the chunked-upload session store. Chunk
// payloads are buffered on disk under one directory per upload; session
// bookkeeping lives in a concurrent map and is swept by traffic, not by a
// timer.
package session

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"

	"mediavault/internal/domain/apperr"
	"mediavault/internal/domain/model"
	"mediavault/internal/domain/repository/session"
	"mediavault/pkg/logger"
	"mediavault/pkg/utils"
)

// staleness is how long an untouched session survives. Expired sessions
// are evicted on the next Init call.
const staleness = time.Hour

type Config struct {
	MaxChunkSizeMB int64 `yaml:"max_chunk_size_in_mb"`
	MaxFileSizeMB  int64 `yaml:"max_file_size_in_mb"`
}

type Store struct {
	uploadDir    string
	maxChunkSize int64
	maxFileSize  int64
	sessions     *xsync.MapOf[string, model.UploadSession]
}

func New(uploadDir string, cfg Config) *Store {
	maxChunk := cfg.MaxChunkSizeMB
	if maxChunk <= 0 {
		maxChunk = 6
	}
	maxFile := cfg.MaxFileSizeMB
	if maxFile <= 0 {
		maxFile = 100
	}

	return &Store{
		uploadDir:    uploadDir,
		maxChunkSize: maxChunk << 20,
		maxFileSize:  maxFile << 20,
		sessions:     xsync.NewMapOf[string, model.UploadSession](),
	}
}

func (s *Store) Init(_ context.Context, owner model.Principal, contentType string) (string, error) {
	s.sweepStale()

	uploadID := uuid.New().String()
	if err := os.MkdirAll(s.chunkDir(uploadID), 0o750); err != nil {
		return "", fmt.Errorf("create chunk directory: %w", err)
	}

	s.sessions.Store(uploadID, model.UploadSession{
		Provider:    owner.Provider,
		UserID:      owner.ID,
		ContentType: contentType,
		CreatedAt:   time.Now().UTC(),
	})

	return uploadID, nil
}

func (s *Store) PutChunk(_ context.Context, uploadID string, index int, body io.Reader,
	owner model.Principal,
) (int64, error) {
	if index < 0 {
		return 0, fmt.Errorf("%w: negative chunk index", apperr.ErrInvalidInput)
	}

	sess, ok := s.sessions.Load(uploadID)
	if !ok || !sess.OwnedBy(owner) {
		return 0, apperr.ErrNotFound
	}

	chunkPath := filepath.Join(s.chunkDir(uploadID), strconv.Itoa(index))
	written, err := writeCapped(chunkPath, body, s.maxChunkSize)
	if err != nil {
		removeQuietly(chunkPath)

		return 0, err
	}

	s.sessions.Compute(uploadID, func(old model.UploadSession, loaded bool) (model.UploadSession, bool) {
		if !loaded {
			return old, true
		}
		if index >= old.ChunkCount {
			old.ChunkCount = index + 1
		}

		return old, false
	})

	return written, nil
}

func (s *Store) Complete(_ context.Context, uploadID string, owner model.Principal) (*session.CompletedUpload, error) {
	// Verify ownership before consuming: a foreign principal must not be
	// able to destroy someone else's in-progress session.
	sess, ok := s.sessions.Load(uploadID)
	if !ok || !sess.OwnedBy(owner) {
		return nil, apperr.ErrNotFound
	}

	sess, ok = s.sessions.LoadAndDelete(uploadID)
	if !ok {
		return nil, apperr.ErrNotFound
	}

	chunkDir := s.chunkDir(uploadID)
	defer removeDirQuietly(chunkDir)

	ext := utils.GetExtensionFromMimeType(sess.ContentType)
	tempPath := filepath.Join(s.uploadDir, fmt.Sprintf("tmp_%s%s", uuid.New().String(), ext))

	total, err := s.assemble(chunkDir, tempPath, sess.ChunkCount)
	if err != nil {
		removeQuietly(tempPath)

		return nil, err
	}

	return &session.CompletedUpload{
		TempPath:    tempPath,
		ContentType: sess.ContentType,
		SizeBytes:   total,
	}, nil
}

// assemble concatenates chunks 0..count in index order into tempPath.
// Any missing index is fatal; the caller must restart the upload.
func (s *Store) assemble(chunkDir, tempPath string, count int) (int64, error) {
	out, err := os.Create(tempPath)
	if err != nil {
		return 0, fmt.Errorf("create assembly file: %w", err)
	}
	defer out.Close()

	var total int64
	for i := 0; i < count; i++ {
		chunkPath := filepath.Join(chunkDir, strconv.Itoa(i))

		info, err := os.Stat(chunkPath)
		if err != nil {
			return 0, fmt.Errorf("missing chunk %d", i)
		}

		total += info.Size()
		if total > s.maxFileSize {
			return 0, apperr.ErrPayloadTooLarge
		}

		chunk, err := os.Open(chunkPath)
		if err != nil {
			return 0, fmt.Errorf("read chunk %d: %w", i, err)
		}
		_, err = io.Copy(out, chunk)
		chunk.Close()
		if err != nil {
			return 0, fmt.Errorf("append chunk %d: %w", i, err)
		}
	}

	if err := out.Sync(); err != nil {
		return 0, fmt.Errorf("flush assembly file: %w", err)
	}

	return total, nil
}

func (s *Store) sweepStale() {
	cutoff := time.Now().UTC().Add(-staleness)

	var stale []string
	s.sessions.Range(func(id string, sess model.UploadSession) bool {
		if sess.CreatedAt.Before(cutoff) {
			stale = append(stale, id)
		}

		return true
	})

	for _, id := range stale {
		s.sessions.Delete(id)
		removeDirQuietly(s.chunkDir(id))
		logger.Info("evicted stale upload session", "upload_id", id)
	}
}

func (s *Store) chunkDir(uploadID string) string {
	return filepath.Join(s.uploadDir, "tmp_chunks_"+uploadID)
}

// writeCapped copies body into a new file at path, failing once more than
// cap bytes arrive.
func writeCapped(path string, body io.Reader, capBytes int64) (int64, error) {
	out, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create chunk file: %w", err)
	}
	defer out.Close()

	written, err := io.Copy(out, io.LimitReader(body, capBytes+1))
	if err != nil {
		return 0, fmt.Errorf("write chunk: %w", err)
	}
	if written > capBytes {
		return 0, apperr.ErrPayloadTooLarge
	}

	return written, nil
}

func removeQuietly(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warn("could not remove file", "path", path, "err", err)
	}
}

func removeDirQuietly(path string) {
	if err := os.RemoveAll(path); err != nil {
		logger.Warn("could not remove directory", "path", path, "err", err)
	}
}
