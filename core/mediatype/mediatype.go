package mediatype

import (
	"mime"
	"path"
	"strings"
)

// Octet is the fallback type for anything the registry cannot resolve.
const Octet = "application/octet-stream"

// fallbackTypes covers the formats the uploader is known to write. The
// platform registry usually resolves these too, but minimal containers often
// ship without /etc/mime.types.
var fallbackTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".avif": "image/avif",
	".bmp":  "image/bmp",
	".svg":  "image/svg+xml",
}

// Classify returns the MIME type for the given file name or key.
// The registry answer wins when it is an image type; otherwise the fallback
// table is consulted, and anything still unknown maps to Octet.
func Classify(name string) string {
	ext := strings.ToLower(path.Ext(name))

	if mt := mime.TypeByExtension(ext); mt != "" && IsImage(mt) {
		// Registry entries may carry parameters (e.g. "; charset=utf-8").
		if i := strings.IndexByte(mt, ';'); i >= 0 {
			mt = strings.TrimSpace(mt[:i])
		}
		return mt
	}

	if mt, ok := fallbackTypes[ext]; ok {
		return mt
	}
	return Octet
}

// IsImage reports whether the MIME type denotes an image format.
func IsImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}
