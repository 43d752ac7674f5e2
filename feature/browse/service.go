package browse

import (
	"context"
	"fmt"
	"io"

	"catalog-recovery/core/catalog"
	"catalog-recovery/core/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles read-only catalog queries for the browse surface.
type Service struct {
	src    storage.Source
	logger *zap.Logger
	db     *gorm.DB
}

// NewService creates a new browse service.
func NewService(src storage.Source, logger *zap.Logger, db *gorm.DB) *Service {
	return &Service{
		src:    src,
		logger: logger,
		db:     db,
	}
}

// AlbumSummary is one row of the flat album listing.
type AlbumSummary struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	ParentID  *string `json:"parent_id"`
	Path      string  `json:"path"`
	IsPublic  bool    `json:"is_public"`
	FileCount int64   `json:"file_count"`
}

// AlbumDetail is one album with its direct children and files.
type AlbumDetail struct {
	Album    catalog.Album   `json:"album"`
	Children []catalog.Album `json:"children"`
	Files    []catalog.File  `json:"files"`
}

// ListAlbums returns every album with its file count, ordered by path.
func (s *Service) ListAlbums(ctx context.Context) ([]AlbumSummary, error) {
	albums := make([]AlbumSummary, 0)
	err := s.db.WithContext(ctx).Table("albums").
		Select("albums.id, albums.name, albums.slug, albums.parent_id, albums.path, albums.is_public, COUNT(files.id) AS file_count").
		Joins("LEFT JOIN files ON files.album_id = albums.id").
		Group("albums.id").
		Order("albums.path").
		Scan(&albums).Error
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	return albums, nil
}

// GetAlbum returns the album with the given slug, its child albums and its
// files. Returns gorm.ErrRecordNotFound when the slug is unknown.
func (s *Service) GetAlbum(ctx context.Context, slug string) (*AlbumDetail, error) {
	var album catalog.Album
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&album).Error; err != nil {
		return nil, err
	}

	detail := &AlbumDetail{Album: album, Children: make([]catalog.Album, 0), Files: make([]catalog.File, 0)}
	if err := s.db.WithContext(ctx).Where("parent_id = ?", album.ID).Order("name").Find(&detail.Children).Error; err != nil {
		return nil, fmt.Errorf("load children of %s: %w", slug, err)
	}
	if err := s.db.WithContext(ctx).Where("album_id = ?", album.ID).Order("original_name").Find(&detail.Files).Error; err != nil {
		return nil, fmt.Errorf("load files of %s: %w", slug, err)
	}
	return detail, nil
}

// GetFile returns one file row by id. Returns gorm.ErrRecordNotFound when
// the id is unknown.
func (s *Service) GetFile(ctx context.Context, id string) (*catalog.File, error) {
	var file catalog.File
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&file).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

// OpenFileContent streams the stored bytes for a file row. The caller owns
// the reader. The second return is the stored MIME type.
func (s *Service) OpenFileContent(ctx context.Context, id string) (io.ReadCloser, string, error) {
	file, err := s.GetFile(ctx, id)
	if err != nil {
		return nil, "", err
	}
	rc, err := s.src.Open(ctx, file.Key)
	if err != nil {
		return nil, "", fmt.Errorf("open %q: %w", file.Key, err)
	}
	return rc, file.MimeType, nil
}
