package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"catalog-recovery/core/config"
	"catalog-recovery/core/recovery"
	"catalog-recovery/core/storage"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	// A path argument overrides the configured store.
	if len(os.Args) > 1 {
		cfg.Storage.Backend = storage.BackendLocal
		cfg.Storage.RootDir = os.Args[1]
	}

	src, err := storage.NewSource(cfg.Storage)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	if err := src.Preflight(ctx, storage.WalkOptions{}); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("=== Classifying %s ===\n", src.Root())

	var eligible, skipped int
	err = src.Walk(ctx, storage.WalkOptions{}, func(e storage.Entry) error {
		key := e.Key()
		if !recovery.IsEligibleImage(key) {
			skipped++
			fmt.Printf("%s\n  -> skipped: not an image\n", key)
			return nil
		}
		eligible++

		autoPath := recovery.DecideAlbumPath(key, recovery.ModeAuto)
		if autoPath == "" {
			autoPath = "(unattached)"
		}
		byDirPath := recovery.DecideAlbumPath(key, recovery.ModeByDir)
		if byDirPath == "" {
			byDirPath = "(unattached)"
		}

		fmt.Printf("%s\n  -> sharded: %v, auto: %s, by-dir: %s\n",
			key, recovery.LooksShardedKey(key), autoPath, byDirPath)
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("\nTotal: %d eligible, %d skipped\n", eligible, skipped)
}
