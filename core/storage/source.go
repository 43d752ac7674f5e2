package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// reservedDirNames are directory names the uploader maintains for its own
// bookkeeping. Their contents are never catalog material.
var reservedDirNames = map[string]struct{}{
	".cache": {},
	".trash": {},
	"config": {},
	"logs":   {},
}

func isReservedDir(name string) bool {
	_, ok := reservedDirNames[name]
	return ok
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// Entry is a single stored object encountered during a walk.
type Entry interface {
	// Key is the storage-relative key with forward slashes.
	Key() string
	// Name is the base name of the entry.
	Name() string
	// Size returns the entry size in bytes. For local sources this stats
	// on demand and may fail per entry.
	Size() (int64, error)
}

// WalkOptions scopes a walk over a source.
type WalkOptions struct {
	// Subdir restricts the walk to this sub-path of the root. Keys remain
	// relative to the root, so the subdir stays part of every key.
	Subdir string
	// IncludeHidden disables the skipping of dot-prefixed entries.
	IncludeHidden bool
}

// WalkFunc is invoked once per surviving entry. Returning an error aborts
// the walk.
type WalkFunc func(e Entry) error

// Source is a walkable uploads store. Implementations skip reserved
// directories at any depth and, unless requested otherwise, hidden entries.
type Source interface {
	// Root describes the storage root for logs and reports.
	Root() string
	// Preflight verifies the source (and the subdir, when set) is usable
	// before any catalog state is touched.
	Preflight(ctx context.Context, opts WalkOptions) error
	// Walk visits every entry under the root (or subdir) in a stable
	// order.
	Walk(ctx context.Context, opts WalkOptions, fn WalkFunc) error
	// Open streams the object stored under key.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// NewSource builds the Source for the configured backend.
func NewSource(cfg Config) (Source, error) {
	switch cfg.Backend {
	case "", BackendLocal:
		return NewLocalSource(cfg.RootDir), nil
	case BackendS3:
		client, err := NewClient(cfg)
		if err != nil {
			return nil, err
		}
		return NewObjectSource(client, cfg.Bucket, cfg.Prefix), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend: %q", cfg.Backend)
	}
}
