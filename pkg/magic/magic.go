// Package magic validates file content against a declared MIME type by
// inspecting container signatures in the leading bytes. It is the
// authoritative gate against clients lying in the upload Content-Type
// header; the declared type is only trusted after Verify accepts it.
package magic

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// PrefixLen is the number of leading bytes Verify expects to inspect.
// Shorter inputs are fine for formats whose signature fits.
const PrefixLen = 256

// Verify reports whether prefix is structurally consistent with the
// container signature of the declared MIME type. Unknown MIME types are
// rejected. Verify never touches the filesystem; deleting an already
// written temp file on rejection is the caller's responsibility.
func Verify(prefix []byte, mime string) bool {
	if len(prefix) < 4 {
		return false
	}

	switch mime {
	case "video/mp4", "video/quicktime":
		return len(prefix) >= 8 && bytes.Equal(prefix[4:8], []byte("ftyp"))
	case "video/webm", "video/x-matroska", "audio/webm":
		return bytes.Equal(prefix[:4], []byte{0x1A, 0x45, 0xDF, 0xA3})
	case "video/ogg", "audio/ogg":
		return bytes.Equal(prefix[:4], []byte("OggS"))
	case "video/x-msvideo":
		return len(prefix) >= 12 && bytes.Equal(prefix[:4], []byte("RIFF")) &&
			bytes.Equal(prefix[8:12], []byte("AVI "))

	case "audio/mpeg":
		return (prefix[0] == 0xFF && prefix[1]&0xE0 == 0xE0) ||
			bytes.Equal(prefix[:3], []byte("ID3"))
	case "audio/wav":
		return len(prefix) >= 12 && bytes.Equal(prefix[:4], []byte("RIFF")) &&
			bytes.Equal(prefix[8:12], []byte("WAVE"))
	case "audio/flac":
		return bytes.Equal(prefix[:4], []byte("fLaC"))
	case "audio/aac":
		return prefix[0] == 0xFF && prefix[1]&0xF0 == 0xF0

	case "image/png":
		return bytes.Equal(prefix[:4], []byte{0x89, 0x50, 0x4E, 0x47})
	case "image/jpeg":
		return bytes.Equal(prefix[:3], []byte{0xFF, 0xD8, 0xFF})
	case "image/gif":
		return len(prefix) >= 6 &&
			(bytes.Equal(prefix[:6], []byte("GIF87a")) || bytes.Equal(prefix[:6], []byte("GIF89a")))
	case "image/webp":
		return len(prefix) >= 12 && bytes.Equal(prefix[:4], []byte("RIFF")) &&
			bytes.Equal(prefix[8:12], []byte("WEBP"))
	case "image/svg+xml":
		head := prefix
		if len(head) > PrefixLen {
			head = head[:PrefixLen]
		}
		if !utf8.Valid(head) {
			return false
		}
		trimmed := strings.TrimLeft(string(head), " \t\r\n")
		return strings.HasPrefix(trimmed, "<svg") || strings.HasPrefix(trimmed, "<?xml")
	case "image/avif":
		return len(prefix) >= 12 && bytes.Equal(prefix[4:8], []byte("ftyp"))

	case "text/plain":
		return utf8.Valid(prefix)
	}

	return false
}
