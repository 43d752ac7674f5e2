package recovery

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"catalog-recovery/core/catalog"
	"catalog-recovery/core/mediatype"
	"catalog-recovery/core/storage"
)

// InsertFile creates a catalog row for a previously unknown key. Columns
// outside the recoverable set stay NULL so later annotation passes start
// from a clean slate.
func (s *RunState) InsertFile(ctx context.Context, entry storage.Entry, albumID *string) error {
	size, err := entry.Size()
	if err != nil {
		return fmt.Errorf("stat %q: %w", entry.Key(), err)
	}
	now := catalog.Now()
	file := catalog.File{
		ID:           uuid.NewString(),
		Key:          entry.Key(),
		OriginalName: entry.Name(),
		Size:         size,
		MimeType:     mediatype.Classify(entry.Key()),
		Tags:         catalog.EmptyList,
		Aliases:      catalog.EmptyList,
		AlbumID:      albumID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if !s.preview {
		if err := s.db.WithContext(ctx).Create(&file).Error; err != nil {
			return fmt.Errorf("insert %q: %w", entry.Key(), err)
		}
	}
	s.files[file.Key] = FileSnapshot{
		ID:           file.ID,
		AlbumID:      albumID,
		OriginalName: file.OriginalName,
		Size:         file.Size,
		MimeType:     file.MimeType,
	}
	return nil
}

// RepairFile rewrites the recoverable columns of an existing row when they
// drifted from what the stored object says. It reports whether a rewrite
// happened (or would have, in preview). A nil target album means no
// placement decision was made for this key, so the row keeps its current
// album rather than being detached.
func (s *RunState) RepairFile(ctx context.Context, snap FileSnapshot, entry storage.Entry, targetAlbumID *string) (bool, error) {
	if targetAlbumID == nil {
		targetAlbumID = snap.AlbumID
	}
	size, err := entry.Size()
	if err != nil {
		return false, fmt.Errorf("stat %q: %w", entry.Key(), err)
	}
	expected := mediatype.Classify(entry.Key())

	needsUpdate := !equalID(snap.AlbumID, targetAlbumID) ||
		snap.Size != size ||
		snap.OriginalName != entry.Name() ||
		!mediatype.IsImage(snap.MimeType) ||
		snap.MimeType != expected ||
		!s.knownAlbum(snap.AlbumID)
	if !needsUpdate {
		return false, nil
	}

	now := catalog.Now()
	if !s.preview {
		err := s.db.WithContext(ctx).Table("files").Where("id = ?", snap.ID).Updates(map[string]any{
			"album_id":      targetAlbumID,
			"original_name": entry.Name(),
			"size":          size,
			"mime_type":     expected,
			"updated_at":    now,
		}).Error
		if err != nil {
			return false, fmt.Errorf("repair %q: %w", entry.Key(), err)
		}
	}
	s.files[entry.Key()] = FileSnapshot{
		ID:           snap.ID,
		AlbumID:      targetAlbumID,
		OriginalName: entry.Name(),
		Size:         size,
		MimeType:     expected,
	}
	return true, nil
}

func equalID(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
