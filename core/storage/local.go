package storage

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalSource walks an uploads directory on the local filesystem.
type LocalSource struct {
	root string
}

// NewLocalSource creates a Source over the given uploads directory.
func NewLocalSource(root string) *LocalSource {
	return &LocalSource{root: root}
}

// Root returns the uploads directory path.
func (s *LocalSource) Root() string { return s.root }

// Preflight verifies the uploads directory and the optional subdir exist and
// that the subdir does not escape the root.
func (s *LocalSource) Preflight(ctx context.Context, opts WalkOptions) error {
	info, err := os.Stat(s.root)
	if err != nil {
		return fmt.Errorf("uploads directory not found: %s", s.root)
	}
	if !info.IsDir() {
		return fmt.Errorf("uploads path is not a directory: %s", s.root)
	}

	if opts.Subdir == "" {
		return nil
	}
	scanRoot, err := s.scanRoot(opts.Subdir)
	if err != nil {
		return err
	}
	info, err = os.Stat(scanRoot)
	if err != nil {
		return fmt.Errorf("scan directory not found: %s", scanRoot)
	}
	if !info.IsDir() {
		return fmt.Errorf("scan path is not a directory: %s", scanRoot)
	}
	return nil
}

// scanRoot resolves the subdir inside the root, rejecting path escapes.
func (s *LocalSource) scanRoot(subdir string) (string, error) {
	if subdir == "" {
		return s.root, nil
	}
	joined := filepath.Join(s.root, filepath.FromSlash(subdir))
	if !contains(s.root, joined) {
		return "", fmt.Errorf("subdir escapes the uploads directory: %s", subdir)
	}
	return joined, nil
}

// contains reports whether child is base itself or located beneath it.
func contains(base, child string) bool {
	rel, err := filepath.Rel(base, child)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Walk traverses the scan root in lexical order. Reserved directories are
// pruned at any depth, hidden entries are skipped unless IncludeHidden is
// set, and unreadable subtrees are skipped rather than failing the walk.
// Keys stay relative to the root even when a subdir is configured.
func (s *LocalSource) Walk(ctx context.Context, opts WalkOptions, fn WalkFunc) error {
	scanRoot, err := s.scanRoot(opts.Subdir)
	if err != nil {
		return err
	}

	return filepath.WalkDir(scanRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == scanRoot {
				return walkErr
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			// The scan root is walked even when its own name would
			// normally be filtered; it was requested explicitly.
			if path == scanRoot {
				return nil
			}
			name := d.Name()
			if isReservedDir(name) || (!opts.IncludeHidden && isHidden(name)) {
				return filepath.SkipDir
			}
			return nil
		}

		if !opts.IncludeHidden && isHidden(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		return fn(&localEntry{path: path, key: filepath.ToSlash(rel)})
	})
}

// Open streams the file stored under key, rejecting keys that escape the
// root.
func (s *LocalSource) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if key == "" {
		return nil, fmt.Errorf("empty storage key")
	}
	path := filepath.Join(s.root, filepath.FromSlash(key))
	if !contains(s.root, path) || path == filepath.Clean(s.root) {
		return nil, fmt.Errorf("key escapes the uploads directory: %s", key)
	}
	return os.Open(path)
}

type localEntry struct {
	path string
	key  string
}

func (e *localEntry) Key() string  { return e.key }
func (e *localEntry) Name() string { return filepath.Base(e.path) }

// Size stats on demand, following symlinks the same way the catalog's
// uploader does.
func (e *localEntry) Size() (int64, error) {
	info, err := os.Stat(e.path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
