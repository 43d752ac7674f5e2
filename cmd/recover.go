package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"catalog-recovery/core/config"
	"catalog-recovery/core/database"
	"catalog-recovery/core/logger"
	"catalog-recovery/core/recovery"
	"catalog-recovery/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the recover command
	recoverUploads       string
	recoverDB            string
	recoverSubdir        string
	recoverAlbumMode     string
	recoverPublicAlbums  bool
	recoverIncludeHidden bool
	recoverRepair        bool
	recoverDryRun        bool
)

// recoverCmd rebuilds the catalog from the uploads store.
var recoverCmd = &cobra.Command{
	Use:   "recover",
	Short: "Rebuild the catalog from the uploads store",
	Long: `Rebuild the CloudImgs catalog from the objects in the uploads store.

Walks every stored object, inserts missing file rows, creates album chains
and optionally repairs metadata that drifted from the bytes in the store.
Safe to re-run; existing rows are never duplicated.

Examples:
  # Preview what a full recovery would do
  catalog-recovery recover --dry-run

  # Rebuild, filing directory uploads into albums
  catalog-recovery recover

  # Rebuild one subtree and repair drifted rows
  catalog-recovery recover --subdir vacations --repair-existing

  # Treat every directory as an album, including date shards
  catalog-recovery recover --album-mode by-dir`,
	RunE: runRecover,
}

func init() {
	recoverCmd.Flags().StringVar(&recoverUploads, "uploads", "", "Local uploads root (default: config, then ./uploads or ./packages/server/uploads)")
	recoverCmd.Flags().StringVar(&recoverDB, "db", "", "SQLite database path (default: config, then ./data/cloudimgs.db or ./packages/server/data/cloudimgs.db)")
	recoverCmd.Flags().StringVar(&recoverSubdir, "subdir", "", "Restrict the scan to one directory under the uploads root")
	recoverCmd.Flags().StringVar(&recoverAlbumMode, "album-mode", "auto", "Album placement: auto, by-dir or none")
	recoverCmd.Flags().BoolVar(&recoverPublicAlbums, "public-albums", false, "Mark albums created by this run as public")
	recoverCmd.Flags().BoolVar(&recoverIncludeHidden, "include-hidden", false, "Scan hidden files and directories")
	recoverCmd.Flags().BoolVar(&recoverRepair, "repair-existing", false, "Repair drifted metadata on rows whose key already exists")
	recoverCmd.Flags().BoolVar(&recoverDryRun, "dry-run", false, "Walk and report without writing to the catalog")

	RootCmd.AddCommand(recoverCmd)
}

func runRecover(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	mode, err := recovery.ParseAlbumMode(recoverAlbumMode)
	if err != nil {
		l.Error("Invalid flags", zap.Error(err))
		os.Exit(2)
	}

	// A path flag pins the corresponding backend; otherwise config decides
	// and conventional checkout layouts are detected.
	if recoverUploads != "" {
		cfg.Storage.Backend = storage.BackendLocal
		cfg.Storage.RootDir = recoverUploads
	}
	if (cfg.Storage.Backend == "" || cfg.Storage.Backend == storage.BackendLocal) && cfg.Storage.RootDir == "" {
		cfg.Storage.RootDir = detectUploadsDir()
	}
	if recoverDB != "" {
		cfg.Database.Driver = database.DriverSQLite
		cfg.Database.Path = recoverDB
	}
	if (cfg.Database.Driver == "" || cfg.Database.Driver == database.DriverSQLite) && cfg.Database.Path == "" {
		cfg.Database.Path = detectDatabasePath()
	}

	// Connect to storage
	src, err := storage.NewSource(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to create storage source: %w", err)
	}

	// Verify the store before touching any catalog state
	walkOpts := storage.WalkOptions{Subdir: recoverSubdir, IncludeHidden: recoverIncludeHidden}
	if err := src.Preflight(ctx, walkOpts); err != nil {
		l.Error("Preflight failed", zap.String("root", src.Root()), zap.Error(err))
		os.Exit(2)
	}

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	opts := recovery.Options{
		Subdir:        recoverSubdir,
		Mode:          mode,
		PublicAlbums:  recoverPublicAlbums,
		IncludeHidden: recoverIncludeHidden,
		Repair:        recoverRepair,
		Preview:       recoverDryRun,
	}

	if _, err := recovery.Run(ctx, db, src, opts, l); err != nil {
		return fmt.Errorf("recovery failed: %w", err)
	}

	if recoverDryRun {
		l.Info("Dry-run mode: No changes were made.")
	}
	return nil
}

// detectUploadsDir picks the conventional uploads root for the current
// working directory layout.
func detectUploadsDir() string {
	for _, cand := range []string{"uploads", filepath.Join("packages", "server", "uploads")} {
		if info, err := os.Stat(cand); err == nil && info.IsDir() {
			return cand
		}
	}
	return "uploads"
}

// detectDatabasePath picks the conventional catalog database location.
func detectDatabasePath() string {
	for _, cand := range []string{
		filepath.Join("data", "cloudimgs.db"),
		filepath.Join("packages", "server", "data", "cloudimgs.db"),
	} {
		if info, err := os.Stat(cand); err == nil && !info.IsDir() {
			return cand
		}
	}
	return filepath.Join("data", "cloudimgs.db")
}
