package cmd

import (
	"encoding/json"
	"fmt"

	"catalog-recovery/core/catalog"
	"catalog-recovery/core/config"
	"catalog-recovery/core/database"
	"catalog-recovery/core/logger"
	"catalog-recovery/core/utils"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// inspectReport is the machine-readable shape of the catalog audit.
type inspectReport struct {
	Driver             string   `json:"driver"`
	MissingTables      []string `json:"missing_tables"`
	MissingFileColumns []string `json:"missing_file_columns"`
	Albums             int64    `json:"albums"`
	Files              int64    `json:"files"`
	Tags               int64    `json:"tags"`
	TotalBytes         int64    `json:"total_bytes"`
	UnattachedFiles    int64    `json:"unattached_files"`
	DanglingAlbumRefs  int64    `json:"dangling_album_refs"`
}

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Audit the catalog schema and contents",
	Long: `Inspects the catalog without modifying it: verifies the expected tables
and files columns exist, and tallies rows, bytes, unattached files and
dangling album references. Useful before and after a recovery run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}

		if (cfg.Database.Driver == "" || cfg.Database.Driver == database.DriverSQLite) && cfg.Database.Path == "" {
			cfg.Database.Path = detectDatabasePath()
		}
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("database connection required: %w", err)
		}

		report, err := buildInspectReport(db)
		if err != nil {
			return err
		}

		if jsonOutput {
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Println("\n=== Catalog Inspection ===")
		fmt.Printf("Driver: %s\n", report.Driver)
		if len(report.MissingTables) > 0 {
			fmt.Printf("Missing Tables: %v\n", report.MissingTables)
		}
		if len(report.MissingFileColumns) > 0 {
			fmt.Printf("Missing File Columns: %v\n", report.MissingFileColumns)
		}
		fmt.Printf("Albums: %d\n", report.Albums)
		fmt.Printf("Files: %d (%s)\n", report.Files, utils.HumanBytes(report.TotalBytes))
		fmt.Printf("Tags: %d\n", report.Tags)
		fmt.Printf("Unattached Files: %d\n", report.UnattachedFiles)
		fmt.Printf("Dangling Album Refs: %d\n", report.DanglingAlbumRefs)

		if len(report.MissingTables) > 0 {
			logg.Warn("Catalog schema incomplete; run recover to create it")
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().Bool("json", false, "Output the report as JSON")
	RootCmd.AddCommand(inspectCmd)
}

// buildInspectReport collects the audit. Row tallies are skipped when core
// tables are missing, so inspect works against a blank database too.
func buildInspectReport(db *gorm.DB) (*inspectReport, error) {
	report := &inspectReport{
		Driver:             db.Dialector.Name(),
		MissingTables:      make([]string, 0),
		MissingFileColumns: make([]string, 0),
	}

	present := map[string]bool{}
	for _, table := range catalog.Tables {
		columns, err := database.GetTableColumns(db, table)
		if err != nil {
			return nil, fmt.Errorf("failed to inspect table %s: %w", table, err)
		}
		present[table] = len(columns) > 0
		if !present[table] {
			report.MissingTables = append(report.MissingTables, table)
		}
	}

	if present["files"] {
		columns, err := database.GetTableColumns(db, "files")
		if err != nil {
			return nil, fmt.Errorf("failed to inspect files table: %w", err)
		}
		for _, col := range catalog.FileColumns {
			if !database.HasColumn(columns, col) {
				report.MissingFileColumns = append(report.MissingFileColumns, col)
			}
		}
	}

	if present["albums"] {
		if err := db.Table("albums").Count(&report.Albums).Error; err != nil {
			return nil, fmt.Errorf("failed to count albums: %w", err)
		}
	}
	if present["tags"] {
		if err := db.Table("tags").Count(&report.Tags).Error; err != nil {
			return nil, fmt.Errorf("failed to count tags: %w", err)
		}
	}
	if present["files"] {
		if err := db.Table("files").Count(&report.Files).Error; err != nil {
			return nil, fmt.Errorf("failed to count files: %w", err)
		}
		row := db.Table("files").Select("COALESCE(SUM(size), 0)").Row()
		if err := row.Scan(&report.TotalBytes); err != nil {
			return nil, fmt.Errorf("failed to sum file sizes: %w", err)
		}
		if err := db.Table("files").Where("album_id IS NULL").Count(&report.UnattachedFiles).Error; err != nil {
			return nil, fmt.Errorf("failed to count unattached files: %w", err)
		}
	}
	if present["files"] && present["albums"] {
		err := db.Table("files").
			Joins("LEFT JOIN albums ON albums.id = files.album_id").
			Where("files.album_id IS NOT NULL AND albums.id IS NULL").
			Count(&report.DanglingAlbumRefs).Error
		if err != nil {
			return nil, fmt.Errorf("failed to count dangling references: %w", err)
		}
	}

	return report, nil
}
