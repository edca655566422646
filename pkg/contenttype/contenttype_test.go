package contenttype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEssence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"application/json", "application/json"},
		{"Application/JSON; charset=UTF-8", "application/json"},
		{"  text/plain  ", "text/plain"},
		{"text/html; charset", "text/html"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Essence(tt.in))
		})
	}
}

func TestIsBinary(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		data        []byte
		want        bool
	}{
		{"json", "application/json; charset=utf-8", nil, false},
		{"vendor json", "application/vnd.api+json", nil, false},
		{"xml", "application/xml", nil, false},
		{"javascript", "application/javascript", nil, false},
		{"form", "application/x-www-form-urlencoded", nil, false},
		{"plain text", "text/plain", []byte{0xff}, false},
		{"image", "image/png", []byte("ascii"), true},
		{"font", "font/woff2", nil, true},
		{"octet-stream", "application/octet-stream", nil, true},
		{"protobuf", "application/x-protobuf", nil, true},
		{"pdf", "application/pdf", nil, true},
		{"empty with text", "", []byte("hello world"), false},
		{"empty with binary", "", []byte{0xff, 0xfe, 0x00, 0x01}, true},
		{"unknown with text", "application/unknown", []byte("valid"), false},
		{"unknown with binary", "application/unknown", []byte{0x80, 0x81}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsBinary(tt.contentType, tt.data))
		})
	}
}
