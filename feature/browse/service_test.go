package browse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"catalog-recovery/core/catalog"
	"catalog-recovery/core/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// seedCatalog creates an in-memory catalog with a small album tree:
// /vacations (beach.jpg), /vacations/2021 (summer.jpg) and one unattached
// file.
func seedCatalog(t *testing.T, dbName string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", dbName)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	require.NoError(t, catalog.EnsureSchema(db))

	now := catalog.Now()
	vacations := catalog.Album{
		ID: "alb-vac", Name: "vacations", Slug: "vacations",
		Path: "/vacations", CreatedAt: now, UpdatedAt: now,
	}
	year := catalog.Album{
		ID: "alb-2021", Name: "2021", Slug: "2021",
		ParentID: &vacations.ID, Path: "/vacations/2021",
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, db.Create(&vacations).Error)
	require.NoError(t, db.Create(&year).Error)

	files := []catalog.File{
		{
			ID: "file-beach", Key: "vacations/beach.jpg", OriginalName: "beach.jpg",
			Size: 5, MimeType: "image/jpeg", Tags: catalog.EmptyList,
			Aliases: catalog.EmptyList, AlbumID: &vacations.ID,
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "file-summer", Key: "vacations/2021/summer.jpg", OriginalName: "summer.jpg",
			Size: 6, MimeType: "image/jpeg", Tags: catalog.EmptyList,
			Aliases: catalog.EmptyList, AlbumID: &year.ID,
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "file-loose", Key: "2024/07/a.jpg", OriginalName: "a.jpg",
			Size: 4, MimeType: "image/jpeg", Tags: catalog.EmptyList,
			Aliases: catalog.EmptyList,
			CreatedAt: now, UpdatedAt: now,
		},
	}
	for i := range files {
		require.NoError(t, db.Create(&files[i]).Error)
	}
	return db
}

// TestListAlbums tests the flat listing with file counts.
func TestListAlbums(t *testing.T) {
	db := seedCatalog(t, "browse_list")
	svc := NewService(new(mocks.Source), zap.NewNop(), db)

	albums, err := svc.ListAlbums(context.Background())
	require.NoError(t, err)
	require.Len(t, albums, 2)

	// Ordered by path; unattached files count nowhere.
	assert.Equal(t, "/vacations", albums[0].Path)
	assert.Equal(t, int64(1), albums[0].FileCount)
	assert.Equal(t, "/vacations/2021", albums[1].Path)
	assert.Equal(t, int64(1), albums[1].FileCount)
	require.NotNil(t, albums[1].ParentID)
	assert.Equal(t, "alb-vac", *albums[1].ParentID)
}

// TestGetAlbum tests the detail view with children and files.
func TestGetAlbum(t *testing.T) {
	db := seedCatalog(t, "browse_get_album")
	svc := NewService(new(mocks.Source), zap.NewNop(), db)

	detail, err := svc.GetAlbum(context.Background(), "vacations")
	require.NoError(t, err)
	assert.Equal(t, "vacations", detail.Album.Name)
	require.Len(t, detail.Children, 1)
	assert.Equal(t, "2021", detail.Children[0].Name)
	require.Len(t, detail.Files, 1)
	assert.Equal(t, "vacations/beach.jpg", detail.Files[0].Key)

	_, err = svc.GetAlbum(context.Background(), "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// TestGetFile tests the single row lookup.
func TestGetFile(t *testing.T) {
	db := seedCatalog(t, "browse_get_file")
	svc := NewService(new(mocks.Source), zap.NewNop(), db)

	file, err := svc.GetFile(context.Background(), "file-loose")
	require.NoError(t, err)
	assert.Equal(t, "2024/07/a.jpg", file.Key)
	assert.Nil(t, file.AlbumID)

	_, err = svc.GetFile(context.Background(), "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// TestOpenFileContent tests streaming through the storage source.
func TestOpenFileContent(t *testing.T) {
	db := seedCatalog(t, "browse_content")
	src := new(mocks.Source)
	src.On("Open", mock.Anything, "vacations/beach.jpg").
		Return(io.NopCloser(strings.NewReader("beach")), nil)
	svc := NewService(src, zap.NewNop(), db)

	rc, mimeType, err := svc.OpenFileContent(context.Background(), "file-beach")
	require.NoError(t, err)
	defer rc.Close()

	assert.Equal(t, "image/jpeg", mimeType)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "beach", string(body))
	src.AssertExpectations(t)
}

// TestOpenFileContent_StorageError tests that source failures surface.
func TestOpenFileContent_StorageError(t *testing.T) {
	db := seedCatalog(t, "browse_content_err")
	src := new(mocks.Source)
	src.On("Open", mock.Anything, "vacations/beach.jpg").
		Return(nil, errors.New("connection refused"))
	svc := NewService(src, zap.NewNop(), db)

	_, _, err := svc.OpenFileContent(context.Background(), "file-beach")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
