package magic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mediavault/pkg/magic"
)

func mp4Prefix() []byte {
	return []byte{0x00, 0x00, 0x00, 0x20, 'f', 't', 'y', 'p', 'i', 's', 'o', 'm'}
}

func pngPrefix() []byte {
	return []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name   string
		prefix []byte
		mime   string
		want   bool
	}{
		{"mp4 ftyp", mp4Prefix(), "video/mp4", true},
		{"mov shares ftyp", mp4Prefix(), "video/quicktime", true},
		{"avif shares ftyp", mp4Prefix(), "image/avif", true},
		{"webm ebml", []byte{0x1A, 0x45, 0xDF, 0xA3, 0x01}, "video/webm", true},
		{"matroska accepts ebml too", []byte{0x1A, 0x45, 0xDF, 0xA3, 0x01}, "video/x-matroska", true},
		{"ogg", []byte("OggS\x00\x02"), "audio/ogg", true},
		{"avi riff", append([]byte("RIFF\x24\x00\x00\x00"), []byte("AVI ")...), "video/x-msvideo", true},
		{"wav riff", append([]byte("RIFF\x24\x00\x00\x00"), []byte("WAVE")...), "audio/wav", true},
		{"webp riff", append([]byte("RIFF\x24\x00\x00\x00"), []byte("WEBP")...), "image/webp", true},
		{"wav magic declared as webp", append([]byte("RIFF\x24\x00\x00\x00"), []byte("WAVE")...), "image/webp", false},
		{"mp3 frame sync", []byte{0xFF, 0xFB, 0x90, 0x00}, "audio/mpeg", true},
		{"mp3 id3", []byte("ID3\x04\x00"), "audio/mpeg", true},
		{"flac", []byte("fLaC\x00\x00"), "audio/flac", true},
		{"aac adts", []byte{0xFF, 0xF1, 0x50, 0x80}, "audio/aac", true},
		{"png", pngPrefix(), "image/png", true},
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0}, "image/jpeg", true},
		{"gif89a", []byte("GIF89a\x01"), "image/gif", true},
		{"gif87a", []byte("GIF87a\x01"), "image/gif", true},
		{"svg bare", []byte("  <svg xmlns=\"http://www.w3.org/2000/svg\">"), "image/svg+xml", true},
		{"svg xml decl", []byte("<?xml version=\"1.0\"?><svg>"), "image/svg+xml", true},
		{"plain utf8", []byte("hello, world"), "text/plain", true},
		{"plain invalid utf8", []byte{0xC0, 0xAF, 0xFE, 0xFF}, "text/plain", false},
		{"png payload declared as mp4", pngPrefix(), "video/mp4", false},
		{"mp4 payload declared as png", mp4Prefix(), "image/png", false},
		{"unknown mime rejected", mp4Prefix(), "application/pdf", false},
		{"too short", []byte{0x89}, "image/png", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, magic.Verify(tt.prefix, tt.mime))
		})
	}
}
