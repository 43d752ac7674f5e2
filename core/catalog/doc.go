// Package catalog defines the persisted catalog model and its schema.
//
// The catalog is the relational side of the system: albums form a tree keyed
// by a normalized path, files reference their containing album and carry the
// metadata the main application maintains (dimensions, thumbhash, captions,
// EXIF). Recovery only ever writes the subset of columns it can derive from
// storage; everything else is treated as pass-through and preserved.
//
// # Schema Management
//
// EnsureSchema creates the albums, files, tags and settings tables when they
// are absent and upgrades older catalogs by adding annotation columns that
// later application versions introduced. It is idempotent and safe to run
// before every recovery.
//
// Timestamps are persisted as RFC 3339 UTC text, matching the text affinity
// the store has always used for its timestamp columns.
package catalog
