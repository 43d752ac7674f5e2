package recovery

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"catalog-recovery/core/catalog"
)

// splitPath breaks an album path into its segments, dropping empty ones
// left by doubled or trailing slashes.
func splitPath(albumPath string) []string {
	var segments []string
	for _, seg := range strings.Split(albumPath, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

// EnsureAlbumChain materializes every album along a path and returns the
// id of the leaf. Already existing prefixes are reused from the cache,
// missing suffixes are created segment by segment so parent ids are in
// hand when each child row is written. A nil return means the file stays
// unattached.
func (s *RunState) EnsureAlbumChain(ctx context.Context, albumPath string) (*string, error) {
	if albumPath == "" || albumPath == "/" {
		return nil, nil
	}
	normalized := "/" + strings.Join(splitPath(albumPath), "/")
	if id, ok := s.albumPaths[normalized]; ok {
		pid := id
		return &pid, nil
	}

	var parentID *string
	partial := ""
	for _, segment := range splitPath(normalized) {
		partial += "/" + segment
		if id, ok := s.albumPaths[partial]; ok {
			pid := id
			parentID = &pid
			continue
		}

		slug, err := EnsureUniqueSlug(Slugify(segment), partial, s.slugTaken(ctx), s.slugs)
		if err != nil {
			return nil, err
		}
		now := catalog.Now()
		album := catalog.Album{
			ID:        uuid.NewString(),
			Name:      segment,
			Slug:      slug,
			ParentID:  parentID,
			IsPublic:  s.publicAlbums,
			Path:      partial,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if !s.preview {
			if err := s.db.WithContext(ctx).Create(&album).Error; err != nil {
				return nil, fmt.Errorf("create album %q: %w", partial, err)
			}
		}
		s.albumPaths[partial] = album.ID
		s.albumIDs[album.ID] = struct{}{}
		s.createdAlbums++
		pid := album.ID
		parentID = &pid
	}

	id := s.albumPaths[normalized]
	return &id, nil
}
