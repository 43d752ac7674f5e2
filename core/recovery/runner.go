package recovery

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"catalog-recovery/core/catalog"
	"catalog-recovery/core/storage"
)

// Run executes one recovery pass: ensure the schema, snapshot the catalog,
// walk the store and reconcile every object against it. Live runs mutate
// inside a single transaction so an aborted run leaves the catalog
// untouched. Previews execute the same pipeline with writes skipped.
func Run(ctx context.Context, db *gorm.DB, src storage.Source, opts Options, log *zap.Logger) (*RunStats, error) {
	if err := catalog.EnsureSchema(db); err != nil {
		return nil, err
	}
	state, err := LoadState(ctx, db, opts)
	if err != nil {
		return nil, err
	}

	log.Info("recovery started",
		zap.String("root", src.Root()),
		zap.String("subdir", opts.Subdir),
		zap.String("album_mode", string(opts.Mode)),
		zap.Bool("repair", opts.Repair),
		zap.Bool("preview", opts.Preview),
		zap.Int("known_files", len(state.files)),
		zap.Int("known_albums", len(state.albumIDs)),
	)

	stats := &RunStats{}
	if opts.Preview {
		err = runWalk(ctx, state, src, opts, stats, log)
	} else {
		err = db.Transaction(func(tx *gorm.DB) error {
			state.db = tx
			return runWalk(ctx, state, src, opts, stats, log)
		})
	}
	if err != nil {
		return nil, err
	}
	stats.CreatedAlbums = state.createdAlbums

	log.Info("recovery finished",
		zap.Int("scanned", stats.Scanned),
		zap.Int("inserted", stats.Inserted),
		zap.Int("repaired", stats.Repaired),
		zap.Int("created_albums", stats.CreatedAlbums),
		zap.Int("skipped_non_image", stats.SkippedNonImage),
		zap.Int("skipped_existing", stats.SkippedExisting),
		zap.Int("failed", stats.Failed),
	)
	return stats, nil
}

// runWalk drives the per-object pipeline. Chain creation happens before
// the existing-key check so directory albums materialize even when every
// file in them is already cataloged.
func runWalk(ctx context.Context, state *RunState, src storage.Source, opts Options, stats *RunStats, log *zap.Logger) error {
	walkOpts := storage.WalkOptions{Subdir: opts.Subdir, IncludeHidden: opts.IncludeHidden}
	return src.Walk(ctx, walkOpts, func(e storage.Entry) error {
		stats.Scanned++
		key := e.Key()
		if !IsEligibleImage(key) {
			stats.SkippedNonImage++
			return nil
		}
		albumID, err := state.EnsureAlbumChain(ctx, DecideAlbumPath(key, opts.Mode))
		if err != nil {
			return fmt.Errorf("album chain for %q: %w", key, err)
		}
		if snap, ok := state.Snapshot(key); ok {
			stats.SkippedExisting++
			if opts.Repair {
				repaired, err := state.RepairFile(ctx, snap, e, albumID)
				if err != nil {
					stats.Failed++
					log.Warn("repair failed", zap.String("key", key), zap.Error(err))
					return nil
				}
				if repaired {
					stats.Repaired++
				}
			}
			return nil
		}
		if err := state.InsertFile(ctx, e, albumID); err != nil {
			stats.Failed++
			log.Warn("insert failed", zap.String("key", key), zap.Error(err))
			return nil
		}
		stats.Inserted++
		return nil
	})
}
