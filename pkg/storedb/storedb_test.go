package storedb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_items",
			SQL:     `CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT NOT NULL);`,
		},
		{
			Version: 2,
			Name:    "add_items_size",
			SQL:     `ALTER TABLE items ADD COLUMN size INTEGER NOT NULL DEFAULT 0;`,
		},
	}
}

func TestOpenAppliesMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "test.db")

	db, err := Open(OpenOptions{Path: path, Module: "test", Migrations: testMigrations()})
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`INSERT INTO items (name, size) VALUES (?, ?)`, "a", 42)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM schema_migrations WHERE module = ?`, "test").Scan(&n))
	assert.Equal(t, 2, n)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(OpenOptions{Path: path, Module: "test", Migrations: testMigrations()})
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO items (name) VALUES (?)`, "kept")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(OpenOptions{Path: path, Module: "test", Migrations: testMigrations()})
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM items`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestOpenSortsMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	reversed := []Migration{testMigrations()[1], testMigrations()[0]}

	db, err := Open(OpenOptions{Path: path, Module: "test", Migrations: reversed})
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`INSERT INTO items (name, size) VALUES (?, ?)`, "a", 1)
	assert.NoError(t, err)
}

func TestOpenRejectsBrokenMigration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	bad := []Migration{{Version: 1, Name: "broken", SQL: `CREATE BOGUS`}}

	_, err := Open(OpenOptions{Path: path, Module: "test", Migrations: bad})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMigrate)
}

func TestModulesAreIndependent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(OpenOptions{Path: path, Module: "first", Migrations: testMigrations()[:1]})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	other := []Migration{{
		Version: 1,
		Name:    "create_labels",
		SQL:     `CREATE TABLE labels (id INTEGER PRIMARY KEY, label TEXT NOT NULL);`,
	}}
	db, err = Open(OpenOptions{Path: path, Module: "second", Migrations: other})
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`INSERT INTO labels (label) VALUES (?)`, "x")
	assert.NoError(t, err)
}
