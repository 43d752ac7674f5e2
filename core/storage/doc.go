// Package storage provides the uploads-side abstraction for recovery.
//
// The catalog's media files live either in a local uploads directory or in
// an S3-compatible bucket. The Source interface hides that difference: both
// backends produce the same storage-relative keys, apply the same reserved
// directory and hidden-entry rules, and walk in a stable order, so a
// recovery run behaves identically against either.
//
// # Source Interface
//
//   - Preflight: verifies the root (and optional subdir) is usable before
//     the catalog is touched.
//   - Walk: visits every surviving entry; reserved directories (.cache,
//     .trash, config, logs) are pruned at any depth and dot-prefixed entries
//     are skipped unless requested.
//   - Open: streams a stored object by key (used by the browse surface).
//
// # Client Interface
//
// The S3 backend wraps the MinIO Go client behind the read-only Client
// interface, making storage interactions easy to mock for unit testing (see
// core/storage/mocks).
//
// # Usage
//
//	src, err := storage.NewSource(cfg.Storage)
//	err = src.Preflight(ctx, storage.WalkOptions{Subdir: "2024"})
//	err = src.Walk(ctx, storage.WalkOptions{}, func(e storage.Entry) error {
//	    ...
//	})
package storage
