// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) that
// configures SQLite or MySQL connections based on the application's
// configuration. SQLite is the catalog's native store; MySQL support exists
// for installations that migrated the catalog onto a shared server.
//
// # Connect
//
// The generic Connect function establishes a connection for the configured
// driver. It is agnostic to the catalog schema; schema creation and upgrades
// live in core/catalog.
//
// # Schema Inspection
//
// The package includes tools to inspect the live schema, which the schema
// manager uses to detect missing columns on older catalogs and the inspect
// command uses for its column audit.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "files")
package database
