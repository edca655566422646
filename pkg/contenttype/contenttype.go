// Package contenttype decides whether a captured payload can be kept as text.
package contenttype

import (
	"mime"
	"strings"
	"unicode/utf8"
)

var (
	textMarkers   = []string{"json", "xml", "javascript", "html", "css", "yaml", "form-urlencoded"}
	binaryPrefix  = []string{"image/", "audio/", "video/", "font/"}
	binaryMarkers = []string{"octet-stream", "gzip", "zip", "pdf", "protobuf", "msgpack"}
)

// Essence returns the lowercase type/subtype of a Content-Type value with
// parameters such as charset removed. Malformed values are trimmed and lowercased.
func Essence(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
		if i := strings.IndexByte(mediaType, ';'); i >= 0 {
			mediaType = strings.TrimSpace(mediaType[:i])
		}
	}
	return mediaType
}

// IsBinary reports whether a payload of the given content type cannot be
// rendered as a text example. Unknown or empty types fall back to UTF-8
// validation of data.
func IsBinary(contentType string, data []byte) bool {
	ct := Essence(contentType)

	if strings.HasPrefix(ct, "text/") || containsAny(ct, textMarkers) {
		return false
	}
	for _, p := range binaryPrefix {
		if strings.HasPrefix(ct, p) {
			return true
		}
	}
	if containsAny(ct, binaryMarkers) {
		return true
	}
	return !utf8.Valid(data)
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
