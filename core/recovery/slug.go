package recovery

import (
	"crypto/sha1"
	"fmt"
	"regexp"
	"strings"
)

// nonSlugRunes matches every run of characters that cannot appear in a
// slug. Letters and digits from any script survive, so CJK and accented
// album names keep readable slugs.
var nonSlugRunes = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// Slugify derives a URL slug from an album name. Empty or fully
// non-alphanumeric names collapse to "album" so the unique suffixing in
// EnsureUniqueSlug always has a base to work from.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonSlugRunes.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-_")
	if s == "" {
		return "album"
	}
	return s
}

// SlugLookup reports whether a slug is already taken in the store.
type SlugLookup func(slug string) (bool, error)

// EnsureUniqueSlug returns a slug that collides with nothing in the store
// or in the run's own cache, and registers the winner in the cache. A
// cache collision first tries a short digest of the album path, which
// keeps sibling albums that share a name stable across runs; whatever is
// still taken falls back to numeric suffixes.
func EnsureUniqueSlug(base, albumPath string, taken SlugLookup, cache map[string]struct{}) (string, error) {
	slug := base
	if _, ok := cache[slug]; ok {
		sum := sha1.Sum([]byte(albumPath))
		slug = fmt.Sprintf("%s-%x", base, sum[:3])
	}
	for n := 1; ; n++ {
		inStore, err := taken(slug)
		if err != nil {
			return "", fmt.Errorf("probe slug %q: %w", slug, err)
		}
		_, inCache := cache[slug]
		if !inStore && !inCache {
			cache[slug] = struct{}{}
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, n+1)
	}
}
