package usecase

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"mediavault/internal/application/usecase/abstraction"
	"mediavault/internal/domain/apperr"
	"mediavault/internal/domain/dto"
	"mediavault/internal/domain/model"
	"mediavault/internal/domain/repository/broker"
	"mediavault/internal/domain/repository/catalog"
	"mediavault/internal/domain/repository/fingerprint"
	"mediavault/internal/domain/repository/session"
	"mediavault/internal/domain/repository/transcode"
	"mediavault/pkg/logger"
	"mediavault/pkg/magic"
	"mediavault/pkg/utils"
)

const maxTitleLen = 200

// Uploader drives an upload through the ingestion pipeline: stage bytes,
// size-check, validate the declared type against the content, normalize
// video, fingerprint off the request goroutine, then hand the candidate
// to the catalog's dedup commit. Chunked uploads join the same pipeline
// once the session store has assembled them.
type Uploader struct {
	catalog       catalog.Catalog
	sessions      session.Store
	transcoder    transcode.Transcoder
	fingerprinter fingerprint.Fingerprinter
	// publisher announces new owning commits; nil disables events.
	publisher   broker.Publisher
	uploadDir   string
	maxFileSize int64
}

func NewUploader(cat catalog.Catalog, sessions session.Store, transcoder transcode.Transcoder,
	fingerprinter fingerprint.Fingerprinter, publisher broker.Publisher,
	uploadDir string, maxFileSizeMB int64,
) *Uploader {
	if maxFileSizeMB <= 0 {
		maxFileSizeMB = 100
	}

	return &Uploader{
		catalog:       cat,
		sessions:      sessions,
		transcoder:    transcoder,
		fingerprinter: fingerprinter,
		publisher:     publisher,
		uploadDir:     uploadDir,
		maxFileSize:   maxFileSizeMB << 20,
	}
}

func (u *Uploader) Upload(ctx context.Context, in abstraction.UploadInput) (*dto.UploadOutcome, error) {
	title, err := validateTitle(in.Title)
	if err != nil {
		return nil, err
	}

	if in.DeclaredSize > u.maxFileSize {
		return nil, apperr.ErrPayloadTooLarge
	}

	mime := baseMime(in.ContentType)
	tempPath, err := u.stageBody(in.Body, in.DeclaredSize, mime)
	if err != nil {
		return nil, err
	}

	if mime == "" || mime == "application/octet-stream" {
		sniffed, err := sniffMime(tempPath)
		if err != nil {
			removeQuietly(tempPath)

			return nil, err
		}
		mime = baseMime(sniffed)
	}

	if !isAllowedMime(mime) {
		removeQuietly(tempPath)

		return nil, fmt.Errorf("%w: content type %s is not accepted", apperr.ErrInvalidInput, mime)
	}

	return u.process(ctx, tempPath, mime, title, in.Flags, in.Uploader)
}

func (u *Uploader) InitUpload(ctx context.Context, contentType string,
	owner model.Principal,
) (*dto.InitUploadReceipt, error) {
	mime := baseMime(contentType)
	if !isAllowedMime(mime) {
		return nil, fmt.Errorf("%w: content type %s is not accepted", apperr.ErrInvalidInput, mime)
	}

	uploadID, err := u.sessions.Init(ctx, owner, mime)
	if err != nil {
		return nil, err
	}

	return &dto.InitUploadReceipt{UploadID: uploadID}, nil
}

func (u *Uploader) PutChunk(ctx context.Context, uploadID string, index int, body io.Reader,
	owner model.Principal,
) (*dto.ChunkReceipt, error) {
	received, err := u.sessions.PutChunk(ctx, uploadID, index, body, owner)
	if err != nil {
		return nil, err
	}

	return &dto.ChunkReceipt{UploadID: uploadID, Index: index, Received: received}, nil
}

func (u *Uploader) CompleteUpload(ctx context.Context, uploadID, title string, flags model.Flags,
	owner model.Principal,
) (*dto.UploadOutcome, error) {
	cleanTitle, err := validateTitle(title)
	if err != nil {
		return nil, err
	}

	completed, err := u.sessions.Complete(ctx, uploadID, owner)
	if err != nil {
		return nil, err
	}

	return u.process(ctx, completed.TempPath, completed.ContentType, cleanTitle, flags, owner)
}

// process runs the staged file through validation, normalization,
// fingerprinting and the dedup commit. It owns the temp file: every exit
// path either hands it to the catalog or deletes it.
func (u *Uploader) process(ctx context.Context, tempPath, mime, title string, flags model.Flags,
	uploader model.Principal,
) (*dto.UploadOutcome, error) {
	if err := u.validateContent(tempPath, mime); err != nil {
		removeQuietly(tempPath)

		return nil, err
	}

	if isVideoMime(mime) && mime != canonicalMime {
		normalized, err := u.transcoder.Normalize(ctx, tempPath)
		if err != nil {
			// The transcoder already cleaned up its input and output.
			return nil, err
		}
		tempPath = normalized
		mime = canonicalMime
	}

	info, err := os.Stat(tempPath)
	if err != nil {
		removeQuietly(tempPath)

		return nil, fmt.Errorf("stat staged upload: %w", err)
	}

	digest, err := u.fingerprinter.Fingerprint(ctx, tempPath, isVideoMime(mime))
	if err != nil {
		removeQuietly(tempPath)

		return nil, fmt.Errorf("fingerprint upload: %w", err)
	}

	result, err := u.catalog.Commit(ctx, catalog.Candidate{
		TempPath:    tempPath,
		Title:       title,
		ContentType: mime,
		SizeBytes:   info.Size(),
		SHA256:      digest.SHA256,
		TLSH:        digest.TLSH,
		Uploader:    uploader,
		Flags:       flags,
	})
	if err != nil {
		return nil, err
	}

	if result.Outcome == catalog.CommittedNew && u.publisher != nil {
		if err := u.publisher.Publish(ctx, result.Item.ID); err != nil {
			// Events are advisory; a durable commit is never rolled back
			// over a broker hiccup.
			logger.Error("failed to publish commit event", "id", result.Item.ID, "err", err)
		}
	}

	return &dto.UploadOutcome{
		Outcome:    result.Outcome,
		Item:       result.Item,
		OriginalID: result.OriginalID,
	}, nil
}

// stageBody streams the request body to a temp file under the upload
// directory, enforcing the whole-file cap and detecting truncated bodies.
func (u *Uploader) stageBody(body io.Reader, declaredSize int64, mime string) (string, error) {
	ext := utils.GetExtensionFromMimeType(mime)
	tempPath := filepath.Join(u.uploadDir, fmt.Sprintf("tmp_%s%s", uuid.New().String(), ext))

	out, err := os.Create(tempPath)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	written, err := io.Copy(out, io.LimitReader(body, u.maxFileSize+1))
	closeErr := out.Close()

	switch {
	case err != nil:
		removeQuietly(tempPath)

		return "", fmt.Errorf("read upload body: %w", err)
	case closeErr != nil:
		removeQuietly(tempPath)

		return "", fmt.Errorf("flush temp file: %w", closeErr)
	case written > u.maxFileSize:
		removeQuietly(tempPath)

		return "", apperr.ErrPayloadTooLarge
	case declaredSize >= 0 && written != declaredSize:
		// A dropped connection shows up as a short body.
		removeQuietly(tempPath)

		return "", fmt.Errorf("%w: received %d of %d declared bytes", apperr.ErrPayloadTooLarge, written, declaredSize)
	}

	return tempPath, nil
}

// validateContent runs the magic-byte gate and, for plain text, the
// full-buffer UTF-8 check.
func (u *Uploader) validateContent(tempPath, mime string) error {
	prefix, err := readPrefix(tempPath, magic.PrefixLen)
	if err != nil {
		return fmt.Errorf("read magic bytes: %w", err)
	}

	if !magic.Verify(prefix, mime) {
		return fmt.Errorf("%w: magic bytes do not match %s", apperr.ErrContentMismatch, mime)
	}

	if isTextMime(mime) {
		data, err := os.ReadFile(tempPath)
		if err != nil {
			return fmt.Errorf("read text upload: %w", err)
		}
		if !utf8.Valid(data) {
			return fmt.Errorf("%w: text upload is not valid UTF-8", apperr.ErrContentMismatch)
		}
	}

	return nil
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" || len(title) > maxTitleLen {
		return "", fmt.Errorf("%w: title must be 1-%d characters", apperr.ErrInvalidInput, maxTitleLen)
	}

	return title, nil
}

func sniffMime(path string) (string, error) {
	prefix, err := readPrefix(path, 3072)
	if err != nil {
		return "", fmt.Errorf("sniff content type: %w", err)
	}

	return mimetype.Detect(prefix).String(), nil
}

func readPrefix(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, n)
	read, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}

	return buf[:read], nil
}

func removeQuietly(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warn("could not remove file", "path", path, "err", err)
	}
}
