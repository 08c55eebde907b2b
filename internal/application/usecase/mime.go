package usecase

import "strings"

// Allow-lists per media class. The magic-byte check still runs after
// this gate; the list only bounds what the service is willing to store.
var (
	AllowedVideoTypes = []string{
		"video/mp4", "video/webm", "video/ogg",
		"video/quicktime", "video/x-matroska", "video/x-msvideo",
	}
	AllowedAudioTypes = []string{
		"audio/mpeg", "audio/ogg", "audio/wav",
		"audio/flac", "audio/aac", "audio/webm",
	}
	AllowedImageTypes = []string{
		"image/png", "image/jpeg", "image/gif",
		"image/webp", "image/svg+xml", "image/avif",
	}
	AllowedTextTypes = []string{"text/plain"}
)

// canonicalMime is the container every video is normalized into.
const canonicalMime = "video/mp4"

func isAllowedMime(mime string) bool {
	for _, list := range [][]string{AllowedVideoTypes, AllowedAudioTypes, AllowedImageTypes, AllowedTextTypes} {
		for _, allowed := range list {
			if mime == allowed {
				return true
			}
		}
	}

	return false
}

func isVideoMime(mime string) bool {
	return strings.HasPrefix(mime, "video/")
}

func isTextMime(mime string) bool {
	return mime == "text/plain"
}

// baseMime strips MIME parameters: "text/plain; charset=utf-8" → "text/plain".
func baseMime(mime string) string {
	return strings.TrimSpace(strings.Split(mime, ";")[0])
}
