// Package ffmpeg shells out to an external encoder to normalize uploaded
// video into the canonical mp4 container and to cut ad-hoc clips.
package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"mediavault/internal/domain/apperr"
	"mediavault/pkg/logger"
)

type Config struct {
	// Binary is the encoder executable, "ffmpeg" when empty.
	Binary string `yaml:"binary"`
}

type Transcoder struct {
	binary string
}

func New(cfg Config) *Transcoder {
	binary := cfg.Binary
	if binary == "" {
		binary = "ffmpeg"
	}

	return &Transcoder{binary: binary}
}

// Normalize re-encodes the video at inputPath into an mp4 sibling file and
// deletes the input. The caller continues with the returned path.
func (t *Transcoder) Normalize(ctx context.Context, inputPath string) (string, error) {
	outputPath := strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".mp4"

	cmd := exec.CommandContext(ctx, t.binary,
		"-y",
		"-i", inputPath,
		"-c:v", "libx264",
		"-preset", "slow",
		"-crf", "17",
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-b:a", "192k",
		"-movflags", "+faststart",
		outputPath,
	)
	cmd.Stdout = nil
	cmd.Stderr = nil

	if err := cmd.Run(); err != nil {
		removeQuietly(inputPath)
		removeQuietly(outputPath)

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("%w: encoder exited with %d", apperr.ErrTranscodeFailed, exitErr.ExitCode())
		}

		return "", fmt.Errorf("encoder launch failed: %w", err)
	}

	info, err := os.Stat(outputPath)
	if err != nil || info.Size() == 0 {
		removeQuietly(inputPath)
		removeQuietly(outputPath)

		return "", fmt.Errorf("%w: encoder produced no output", apperr.ErrTranscodeFailed)
	}

	removeQuietly(inputPath)

	return outputPath, nil
}

// ExtractSegment re-encodes a sub-range of the video at path into a
// fragmented mp4 buffer suitable for streaming from memory.
func (t *Transcoder) ExtractSegment(ctx context.Context, path string, startMS, endMS int64) ([]byte, error) {
	var args []string

	if startMS > 0 {
		args = append(args, "-ss", formatMillis(startMS))
	}

	args = append(args, "-i", path)

	if endMS > 0 {
		duration := endMS - startMS
		if duration < 0 {
			duration = 0
		}
		args = append(args, "-t", formatMillis(duration))
	}

	args = append(args,
		"-c:v", "libx264",
		"-preset", "ultrafast",
		"-crf", "18",
		"-c:a", "aac",
		"-f", "mp4",
		"-movflags", "frag_keyframe+empty_moov",
		"pipe:1",
	)

	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, t.binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = nil

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: segment may be out of range", apperr.ErrTranscodeFailed)
		}

		return nil, fmt.Errorf("encoder launch failed: %w", err)
	}

	if stdout.Len() == 0 {
		return nil, fmt.Errorf("%w: segment may be out of range", apperr.ErrTranscodeFailed)
	}

	return stdout.Bytes(), nil
}

// formatMillis renders a millisecond offset as ffmpeg's seconds.millis form.
func formatMillis(ms int64) string {
	return fmt.Sprintf("%d.%03d", ms/1000, ms%1000)
}

func removeQuietly(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warn("could not remove transcode artifact", "path", path, "err", err)
	}
}
