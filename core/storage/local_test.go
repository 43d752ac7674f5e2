package storage_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"catalog-recovery/core/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile creates a file (and its parents) below root.
func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// uploadsTree builds a representative uploads directory with reserved and
// hidden entries mixed in.
func uploadsTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "2024/07/a.jpg", "aaaa")
	writeFile(t, root, "2024/07/b.png", "bb")
	writeFile(t, root, "vacations/beach.jpg", "beach")
	writeFile(t, root, "notes.txt", "n")
	writeFile(t, root, ".hiddenfile.jpg", "h")
	writeFile(t, root, ".hidden-dir/secret.jpg", "s")
	writeFile(t, root, ".cache/thumb.jpg", "t")
	writeFile(t, root, ".trash/old.jpg", "o")
	writeFile(t, root, "config/settings.json", "{}")
	writeFile(t, root, "logs/app.log", "log")
	return root
}

func walkKeys(t *testing.T, src storage.Source, opts storage.WalkOptions) []string {
	t.Helper()
	var keys []string
	err := src.Walk(context.Background(), opts, func(e storage.Entry) error {
		keys = append(keys, e.Key())
		return nil
	})
	require.NoError(t, err)
	return keys
}

func TestLocalSource_Walk(t *testing.T) {
	src := storage.NewLocalSource(uploadsTree(t))

	keys := walkKeys(t, src, storage.WalkOptions{})

	// Lexical walk order; reserved and hidden entries are gone.
	assert.Equal(t, []string{
		"2024/07/a.jpg",
		"2024/07/b.png",
		"notes.txt",
		"vacations/beach.jpg",
	}, keys)
}

func TestLocalSource_WalkIncludeHidden(t *testing.T) {
	src := storage.NewLocalSource(uploadsTree(t))

	keys := walkKeys(t, src, storage.WalkOptions{IncludeHidden: true})

	// Hidden entries come back; reserved directories stay pruned even when
	// they are dot-prefixed.
	assert.Equal(t, []string{
		".hidden-dir/secret.jpg",
		".hiddenfile.jpg",
		"2024/07/a.jpg",
		"2024/07/b.png",
		"notes.txt",
		"vacations/beach.jpg",
	}, keys)
}

func TestLocalSource_WalkSubdir(t *testing.T) {
	src := storage.NewLocalSource(uploadsTree(t))

	keys := walkKeys(t, src, storage.WalkOptions{Subdir: "vacations"})

	// Keys stay relative to the root, not the subdir.
	assert.Equal(t, []string{"vacations/beach.jpg"}, keys)
}

func TestLocalSource_WalkEntry(t *testing.T) {
	src := storage.NewLocalSource(uploadsTree(t))

	err := src.Walk(context.Background(), storage.WalkOptions{Subdir: "2024"}, func(e storage.Entry) error {
		if e.Key() != "2024/07/a.jpg" {
			return nil
		}
		assert.Equal(t, "a.jpg", e.Name())
		size, err := e.Size()
		assert.NoError(t, err)
		assert.Equal(t, int64(4), size)
		return nil
	})
	assert.NoError(t, err)
}

func TestLocalSource_Preflight(t *testing.T) {
	root := uploadsTree(t)
	src := storage.NewLocalSource(root)
	ctx := context.Background()

	assert.NoError(t, src.Preflight(ctx, storage.WalkOptions{}))
	assert.NoError(t, src.Preflight(ctx, storage.WalkOptions{Subdir: "2024/07"}))

	t.Run("Missing Root", func(t *testing.T) {
		missing := storage.NewLocalSource(filepath.Join(root, "nope"))
		assert.Error(t, missing.Preflight(ctx, storage.WalkOptions{}))
	})

	t.Run("Subdir Escape", func(t *testing.T) {
		assert.Error(t, src.Preflight(ctx, storage.WalkOptions{Subdir: "../outside"}))
	})

	t.Run("Missing Subdir", func(t *testing.T) {
		assert.Error(t, src.Preflight(ctx, storage.WalkOptions{Subdir: "2025"}))
	})

	t.Run("Subdir Is File", func(t *testing.T) {
		assert.Error(t, src.Preflight(ctx, storage.WalkOptions{Subdir: "notes.txt"}))
	})
}

func TestLocalSource_Open(t *testing.T) {
	src := storage.NewLocalSource(uploadsTree(t))
	ctx := context.Background()

	rc, err := src.Open(ctx, "vacations/beach.jpg")
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	assert.NoError(t, err)
	assert.Equal(t, "beach", string(data))

	_, err = src.Open(ctx, "../escape.jpg")
	assert.Error(t, err)

	_, err = src.Open(ctx, "")
	assert.Error(t, err)
}
