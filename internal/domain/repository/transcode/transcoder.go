package transcode

import "context"

// Transcoder drives the external video encoder.
type Transcoder interface {
	// Normalize re-encodes the video at inputPath into the canonical
	// container and returns the path of the produced file. The input file
	// is consumed on success; on failure both input and partial output are
	// deleted before the error propagates.
	Normalize(ctx context.Context, inputPath string) (string, error)

	// ExtractSegment re-encodes the [startMS, endMS) sub-range of the video
	// at path into a streamable buffer. endMS <= 0 means "to the end".
	ExtractSegment(ctx context.Context, path string, startMS, endMS int64) ([]byte, error)
}
