package internal

import (
	"net/url"
	"path"
	"strings"
)

// Version is the application version shown in the window title and --version
const Version = "0.3.0"

// DefaultAudioFilename is used when no blog URL hints at a better name
const DefaultAudioFilename = "speech.mp3"

// SuggestAudioFilename derives an MP3 file name from a blog URL.
// Format: last path segment (or host) sanitized, with an .mp3 extension
func SuggestAudioFilename(blogURL string) string {
	u, err := url.Parse(strings.TrimSpace(blogURL))
	if err != nil || u.Host == "" {
		return DefaultAudioFilename
	}

	base := strings.TrimSuffix(path.Base(strings.TrimRight(u.Path, "/")), path.Ext(u.Path))
	if base == "" || base == "." || base == "/" {
		base = u.Host
	}

	name := strings.Trim(SanitizeFilename(base), "_")
	if name == "" {
		return DefaultAudioFilename
	}
	return name + ".mp3"
}

// SanitizeFilename creates a safe filename from a string
func SanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range s {
		if isAlphaNumeric(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// isAlphaNumeric checks if a rune is an ASCII letter or digit
func isAlphaNumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
