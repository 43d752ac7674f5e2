package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnect(t *testing.T) {
	t.Run("SQLite In Memory", func(t *testing.T) {
		db, err := Connect(Config{Driver: DriverSQLite, Path: ":memory:"})
		assert.NoError(t, err)
		assert.NotNil(t, db)
	})

	t.Run("SQLite Creates Parent Directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data", "catalog.db")
		db, err := Connect(Config{Driver: DriverSQLite, Path: path})
		assert.NoError(t, err)
		assert.NotNil(t, db)

		// The file itself appears lazily, but a statement forces creation.
		assert.NoError(t, db.Exec("CREATE TABLE probe (id INTEGER)").Error)
		assert.FileExists(t, path)
	})

	t.Run("SQLite Missing Path", func(t *testing.T) {
		db, err := Connect(Config{Driver: DriverSQLite})
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("Unsupported Driver", func(t *testing.T) {
		db, err := Connect(Config{Driver: "postgres"})
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("MySQL Invalid Connection", func(t *testing.T) {
		cfg := Config{
			Driver:         DriverMySQL,
			Host:           "localhost",
			Port:           9999, // Unused port
			User:           "root",
			Password:       "wrongpassword",
			Name:           "cloudimgs",
			TimeoutSeconds: 1,
		}

		// Connect should fail (timeout or refused); we only assert the
		// error path since no real server is available in tests.
		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})
}
