package recovery

import (
	"path"
	"regexp"
	"strings"

	"catalog-recovery/core/mediatype"
)

// allowedExtensions mirrors the uploader's accept list. Detection by
// extension keeps oddly named but well known image files eligible even
// when the platform MIME registry is sparse.
var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
	".avif": {},
	".bmp":  {},
	".svg":  {},
}

var (
	yearSegment  = regexp.MustCompile(`^\d{4}$`)
	monthSegment = regexp.MustCompile(`^\d{1,2}$`)
)

// IsEligibleImage reports whether a key should enter the catalog. A key
// qualifies through the extension allow-list or through an image MIME
// classification, so covered raster formats missing from the list still
// make it in.
func IsEligibleImage(key string) bool {
	ext := strings.ToLower(path.Ext(key))
	if _, ok := allowedExtensions[ext]; ok {
		return true
	}
	return mediatype.IsImage(mediatype.Classify(key))
}

// LooksShardedKey recognizes the uploader's date-sharded layout: at least
// three slash segments where the first is a four digit year and the second
// a one or two digit month, as in 2024/07/abc.jpg.
func LooksShardedKey(key string) bool {
	segments := strings.Split(key, "/")
	if len(segments) < 3 {
		return false
	}
	return yearSegment.MatchString(segments[0]) && monthSegment.MatchString(segments[1])
}

// DecideAlbumPath maps a key to its album path under the given mode. An
// empty result means the file stays unattached. Top-level keys are always
// unattached regardless of mode.
func DecideAlbumPath(key string, mode AlbumMode) string {
	parent := path.Dir(key)
	if parent == "." || parent == "/" {
		return ""
	}
	switch mode {
	case ModeByDir:
		return "/" + parent
	case ModeAuto:
		if LooksShardedKey(key) {
			return ""
		}
		return "/" + parent
	default:
		return ""
	}
}
