package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
)

// ObjectSource walks an uploads bucket on S3-compatible storage. Keys are
// relative to the configured prefix, so catalogs recovered from a bucket and
// from a local mirror of it end up identical.
type ObjectSource struct {
	client Client
	bucket string
	prefix string
}

// NewObjectSource creates a Source over bucket, scoped to prefix when one is
// configured.
func NewObjectSource(client Client, bucket, prefix string) *ObjectSource {
	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return &ObjectSource{client: client, bucket: bucket, prefix: prefix}
}

// Root describes the bucket location for logs and reports.
func (s *ObjectSource) Root() string {
	if s.prefix == "" {
		return "s3://" + s.bucket
	}
	return "s3://" + s.bucket + "/" + s.prefix
}

// Preflight validates the subdir key shape and verifies the bucket is
// reachable.
func (s *ObjectSource) Preflight(ctx context.Context, opts WalkOptions) error {
	if err := validateSubdirKey(opts.Subdir); err != nil {
		return err
	}
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to reach bucket %s: %w", s.bucket, err)
	}
	if !exists {
		return fmt.Errorf("bucket not found: %s", s.bucket)
	}
	return nil
}

// validateSubdirKey rejects subdirs that cannot name a location inside the
// prefix. Object keys have no real path semantics, so dot segments are
// refused outright.
func validateSubdirKey(subdir string) error {
	if subdir == "" {
		return nil
	}
	for _, seg := range strings.Split(strings.Trim(subdir, "/"), "/") {
		if seg == "" || seg == "." || seg == ".." {
			return fmt.Errorf("subdir escapes the uploads prefix: %s", subdir)
		}
	}
	return nil
}

// Walk lists the bucket recursively. Listing order is the provider's lexical
// key order, which keeps runs deterministic.
func (s *ObjectSource) Walk(ctx context.Context, opts WalkOptions, fn WalkFunc) error {
	if err := validateSubdirKey(opts.Subdir); err != nil {
		return err
	}

	listPrefix := s.prefix
	if opts.Subdir != "" {
		listPrefix += strings.Trim(opts.Subdir, "/") + "/"
	}

	listOpts := minio.ListObjectsOptions{
		Prefix:    listPrefix,
		Recursive: true,
	}

	for obj := range s.client.ListObjects(ctx, s.bucket, listOpts) {
		if obj.Err != nil {
			return fmt.Errorf("failed to list bucket %s: %w", s.bucket, obj.Err)
		}

		key := strings.TrimPrefix(obj.Key, s.prefix)
		if key == "" || strings.HasSuffix(key, "/") {
			// Directory markers carry no content.
			continue
		}
		if skipObjectKey(key, opts) {
			continue
		}
		if err := fn(&objectEntry{key: key, size: obj.Size}); err != nil {
			return err
		}
	}

	return ctx.Err()
}

// skipObjectKey applies the directory filtering rules to a key. Segments
// belonging to the requested subdir are exempt; it was asked for explicitly.
func skipObjectKey(key string, opts WalkOptions) bool {
	rest := key
	if opts.Subdir != "" {
		rest = strings.TrimPrefix(key, strings.Trim(opts.Subdir, "/")+"/")
	}

	segments := strings.Split(rest, "/")
	for i, seg := range segments {
		isFile := i == len(segments)-1
		if !isFile && isReservedDir(seg) {
			return true
		}
		if !opts.IncludeHidden && isHidden(seg) {
			return true
		}
	}
	return false
}

// Open streams the object stored under key.
func (s *ObjectSource) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if key == "" {
		return nil, fmt.Errorf("empty storage key")
	}
	return s.client.GetObject(ctx, s.bucket, s.prefix+key, minio.GetObjectOptions{})
}

type objectEntry struct {
	key  string
	size int64
}

func (e *objectEntry) Key() string          { return e.key }
func (e *objectEntry) Name() string         { return path.Base(e.key) }
func (e *objectEntry) Size() (int64, error) { return e.size, nil }
