package mediatype_test

import (
	"testing"

	"catalog-recovery/core/mediatype"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{"Jpeg", "photo.jpg", "image/jpeg"},
		{"JpegLong", "photo.jpeg", "image/jpeg"},
		{"UppercaseExt", "SCAN.PNG", "image/png"},
		{"Gif", "anim.gif", "image/gif"},
		{"Webp", "2024/07/abc.webp", "image/webp"},
		{"Avif", "modern.avif", "image/avif"},
		{"Bmp", "legacy.bmp", "image/bmp"},
		{"Svg", "logo.svg", "image/svg+xml"},
		{"Text", "notes.txt", mediatype.Octet},
		{"NoExtension", "README", mediatype.Octet},
		{"Video", "clip.mp4", mediatype.Octet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mediatype.Classify(tt.key))
		})
	}
}

func TestIsImage(t *testing.T) {
	assert.True(t, mediatype.IsImage("image/png"))
	assert.True(t, mediatype.IsImage("image/svg+xml"))
	assert.False(t, mediatype.IsImage("application/octet-stream"))
	assert.False(t, mediatype.IsImage(""))
}
