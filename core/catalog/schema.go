package catalog

import (
	"fmt"

	"catalog-recovery/core/database"

	"gorm.io/gorm"
)

// sqliteSchema is the store's native DDL. It must stay byte-compatible with
// what the main application creates, so a recovered database is
// indistinguishable from an organically grown one.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS albums (
    id text PRIMARY KEY NOT NULL,
    name text NOT NULL,
    slug text NOT NULL,
    parent_id text,
    password text,
    is_public integer DEFAULT false,
    cover_file_id text,
    path text DEFAULT '/' NOT NULL,
    created_at text DEFAULT CURRENT_TIMESTAMP NOT NULL,
    updated_at text DEFAULT CURRENT_TIMESTAMP NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS files (
    id text PRIMARY KEY NOT NULL,
    key text NOT NULL,
    original_name text NOT NULL,
    size integer NOT NULL,
    mime_type text NOT NULL,
    width integer,
    height integer,
    thumbhash text,
    tags text DEFAULT '[]',
    caption text,
    semantic_description text,
    aliases text DEFAULT '[]',
    annotation_updated_at text,
    exif_data text,
    album_id text,
    created_at text DEFAULT CURRENT_TIMESTAMP NOT NULL,
    updated_at text DEFAULT CURRENT_TIMESTAMP NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS tags (
    id text PRIMARY KEY NOT NULL,
    name text NOT NULL,
    slug text NOT NULL,
    color text DEFAULT '#6366f1',
    created_at text DEFAULT CURRENT_TIMESTAMP NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS settings (
    key text PRIMARY KEY NOT NULL,
    value text
)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS files_key_unique ON files (key)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS albums_slug_unique ON albums (slug)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS tags_name_unique ON tags (name)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS tags_slug_unique ON tags (slug)`,
}

// mysqlSchema mirrors the native schema for catalogs hosted on MySQL.
// Unique keys are declared inline because MySQL lacks CREATE INDEX IF NOT
// EXISTS, and key columns use VARCHAR(191) to fit the utf8mb4 index limit.
var mysqlSchema = []string{
	"CREATE TABLE IF NOT EXISTS albums (" +
		"id VARCHAR(191) NOT NULL PRIMARY KEY, " +
		"name TEXT NOT NULL, " +
		"slug VARCHAR(191) NOT NULL, " +
		"parent_id VARCHAR(191), " +
		"password TEXT, " +
		"is_public TINYINT(1) DEFAULT 0, " +
		"cover_file_id VARCHAR(191), " +
		"path TEXT NOT NULL, " +
		"created_at VARCHAR(64) NOT NULL, " +
		"updated_at VARCHAR(64) NOT NULL, " +
		"UNIQUE KEY albums_slug_unique (slug)" +
		") CHARACTER SET utf8mb4",
	"CREATE TABLE IF NOT EXISTS files (" +
		"id VARCHAR(191) NOT NULL PRIMARY KEY, " +
		"`key` VARCHAR(191) NOT NULL, " +
		"original_name TEXT NOT NULL, " +
		"size BIGINT NOT NULL, " +
		"mime_type VARCHAR(255) NOT NULL, " +
		"width INT, " +
		"height INT, " +
		"thumbhash TEXT, " +
		"tags TEXT, " +
		"caption TEXT, " +
		"semantic_description TEXT, " +
		"aliases TEXT, " +
		"annotation_updated_at VARCHAR(64), " +
		"exif_data MEDIUMTEXT, " +
		"album_id VARCHAR(191), " +
		"created_at VARCHAR(64) NOT NULL, " +
		"updated_at VARCHAR(64) NOT NULL, " +
		"UNIQUE KEY files_key_unique (`key`)" +
		") CHARACTER SET utf8mb4",
	"CREATE TABLE IF NOT EXISTS tags (" +
		"id VARCHAR(191) NOT NULL PRIMARY KEY, " +
		"name VARCHAR(191) NOT NULL, " +
		"slug VARCHAR(191) NOT NULL, " +
		"color VARCHAR(32) DEFAULT '#6366f1', " +
		"created_at VARCHAR(64) NOT NULL, " +
		"UNIQUE KEY tags_name_unique (name), " +
		"UNIQUE KEY tags_slug_unique (slug)" +
		") CHARACTER SET utf8mb4",
	"CREATE TABLE IF NOT EXISTS settings (" +
		"`key` VARCHAR(191) NOT NULL PRIMARY KEY, " +
		"value TEXT" +
		") CHARACTER SET utf8mb4",
}

// Tables lists every table the catalog schema owns.
var Tables = []string{"albums", "files", "tags", "settings"}

// FileColumns is the full expected column set of the files table, in schema
// order. Schema audits compare a live table against it.
var FileColumns = []string{
	"id", "key", "original_name", "size", "mime_type", "width", "height",
	"thumbhash", "tags", "caption", "semantic_description", "aliases",
	"annotation_updated_at", "exif_data", "album_id", "created_at",
	"updated_at",
}

// fileUpgrade describes an annotation column a later application version
// added to the files table.
type fileUpgrade struct {
	column string
	sqlite string
	mysql  string
}

var fileUpgrades = []fileUpgrade{
	{"tags", "ALTER TABLE files ADD COLUMN tags text DEFAULT '[]'", "ALTER TABLE files ADD COLUMN tags TEXT"},
	{"caption", "ALTER TABLE files ADD COLUMN caption text", "ALTER TABLE files ADD COLUMN caption TEXT"},
	{"semantic_description", "ALTER TABLE files ADD COLUMN semantic_description text", "ALTER TABLE files ADD COLUMN semantic_description TEXT"},
	{"aliases", "ALTER TABLE files ADD COLUMN aliases text DEFAULT '[]'", "ALTER TABLE files ADD COLUMN aliases TEXT"},
	{"annotation_updated_at", "ALTER TABLE files ADD COLUMN annotation_updated_at text", "ALTER TABLE files ADD COLUMN annotation_updated_at VARCHAR(64)"},
}

// EnsureSchema creates missing catalog tables and applies column upgrades to
// older catalogs. It is idempotent.
func EnsureSchema(db *gorm.DB) error {
	isSQLite := db.Dialector.Name() == "sqlite"

	statements := mysqlSchema
	if isSQLite {
		statements = sqliteSchema
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	columns, err := database.GetTableColumns(db, "files")
	if err != nil {
		return fmt.Errorf("failed to inspect files table: %w", err)
	}

	for _, up := range fileUpgrades {
		if database.HasColumn(columns, up.column) {
			continue
		}
		stmt := up.mysql
		if isSQLite {
			stmt = up.sqlite
		}
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to add column %s: %w", up.column, err)
		}
		// SQLite applies the column default to existing rows; MySQL TEXT
		// columns cannot carry one, so list columns are backfilled here.
		if !isSQLite && (up.column == "tags" || up.column == "aliases") {
			backfill := fmt.Sprintf("UPDATE files SET %s = '[]' WHERE %s IS NULL", up.column, up.column)
			if err := db.Exec(backfill).Error; err != nil {
				return fmt.Errorf("failed to backfill column %s: %w", up.column, err)
			}
		}
	}

	return nil
}
