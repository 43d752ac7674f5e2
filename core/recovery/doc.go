// Package recovery rebuilds catalog metadata from the uploads store.
//
// A run walks every object under the storage root, decides which album path
// each image belongs to, materializes missing album chains, and inserts or
// repairs file rows. Runs are idempotent: the same tree against the same
// catalog yields no new writes, so the tool can be re-run safely after a
// partial disaster or an interrupted restore.
//
// # Architecture
//
// The run is built from four pieces:
//
//  1. Classifier: pure functions that decide eligibility (image filter),
//     recognize the uploader's sharded YYYY/MM key layout, and map a key to
//     its album path under the configured mode.
//
//  2. RunState: the in-memory working set loaded once per run. It carries
//     the album path and slug caches, the id set, and key-indexed snapshots
//     of existing file rows. All mutations go through it, so the caches
//     always reflect what the store will contain when the run commits.
//
//  3. Slug allocator: collision-safe slug derivation. In-memory collisions
//     get a digest of the album path appended; anything still taken falls
//     back to numeric probing against the store and the cache together.
//
//  4. Runner: drives the walk, keeps the counters, and owns the
//     transaction. Live runs mutate inside a single transaction; previews
//     execute the identical pipeline with writes skipped, which keeps their
//     counters and chain resolution truthful.
//
// # Failure Model
//
// Per-file problems (stat failures, insert conflicts) are logged, counted
// in Failed, and never abort the run. Album chain failures do abort: a
// half-created hierarchy would poison every later decision in the walk.
//
// # Usage Example
//
//	opts := recovery.Options{Mode: recovery.ModeAuto, Repair: true}
//	stats, err := recovery.Run(ctx, db, src, opts, log)
package recovery
