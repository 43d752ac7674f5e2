package recovery

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// FileSnapshot is the slice of a file row the repair pass compares
// against. Columns outside this set are never touched by recovery.
type FileSnapshot struct {
	ID           string
	AlbumID      *string
	OriginalName string
	Size         int64
	MimeType     string
}

// RunState is the working set for one recovery run. It is loaded once up
// front and mutated as the walk progresses, so every album and slug
// decision sees both what the store held and what the run has already
// created.
type RunState struct {
	db           *gorm.DB
	preview      bool
	publicAlbums bool

	albumPaths    map[string]string       // normalized path -> album id
	slugs         map[string]struct{}     // every slug seen or allocated
	albumIDs      map[string]struct{}     // every album id known valid
	files         map[string]FileSnapshot // object key -> existing row
	createdAlbums int
}

// LoadState snapshots the albums and files tables into memory.
func LoadState(ctx context.Context, db *gorm.DB, opts Options) (*RunState, error) {
	state := &RunState{
		db:           db,
		preview:      opts.Preview,
		publicAlbums: opts.PublicAlbums,
		albumPaths:   make(map[string]string),
		slugs:        make(map[string]struct{}),
		albumIDs:     make(map[string]struct{}),
		files:        make(map[string]FileSnapshot),
	}

	var albums []struct {
		ID   string
		Path string
		Slug string
	}
	if err := db.WithContext(ctx).Table("albums").Select("id", "path", "slug").Find(&albums).Error; err != nil {
		return nil, fmt.Errorf("load albums: %w", err)
	}
	for _, a := range albums {
		if a.Path != "" {
			state.albumPaths[a.Path] = a.ID
		}
		state.slugs[a.Slug] = struct{}{}
		state.albumIDs[a.ID] = struct{}{}
	}

	var files []struct {
		ID           string
		Key          string
		AlbumID      *string
		OriginalName string
		Size         int64
		MimeType     string
	}
	if err := db.WithContext(ctx).Table("files").
		Select("id", "key", "album_id", "original_name", "size", "mime_type").
		Find(&files).Error; err != nil {
		return nil, fmt.Errorf("load files: %w", err)
	}
	for _, f := range files {
		state.files[f.Key] = FileSnapshot{
			ID:           f.ID,
			AlbumID:      f.AlbumID,
			OriginalName: f.OriginalName,
			Size:         f.Size,
			MimeType:     f.MimeType,
		}
	}

	return state, nil
}

// Snapshot returns the known row for a key, if any.
func (s *RunState) Snapshot(key string) (FileSnapshot, bool) {
	snap, ok := s.files[key]
	return snap, ok
}

// knownAlbum reports whether an album id referenced by a file row still
// exists. Dangling references make a row eligible for repair.
func (s *RunState) knownAlbum(id *string) bool {
	if id == nil {
		return true
	}
	_, ok := s.albumIDs[*id]
	return ok
}

// slugTaken probes the store for a slug. The in-memory cache is checked
// separately by the allocator; previews rely on this staying read-only.
func (s *RunState) slugTaken(ctx context.Context) SlugLookup {
	return func(slug string) (bool, error) {
		var count int64
		err := s.db.WithContext(ctx).Table("albums").Where("slug = ?", slug).Count(&count).Error
		if err != nil {
			return false, err
		}
		return count > 0, nil
	}
}
