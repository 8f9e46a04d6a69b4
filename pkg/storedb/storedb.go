// Package storedb opens per-module sqlite databases and applies
// versioned schema migrations on open.
package storedb

import (
	"database/sql"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/ssantosv/wslkit/internal/errx"
	_ "modernc.org/sqlite"
)

// Migration is a single schema step. Versions are applied in ascending
// order and recorded per module, so re-opening a database is a no-op
// for steps already applied.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

type OpenOptions struct {
	Path       string
	Module     string
	Migrations []Migration
}

const migrationsSchema = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  module TEXT NOT NULL,
  version INTEGER NOT NULL,
  name TEXT NOT NULL,
  applied_at TEXT NOT NULL,
  PRIMARY KEY (module, version)
);
`

// Open opens (creating if needed) the sqlite database at opts.Path and
// brings opts.Module's schema up to date.
func Open(opts OpenOptions) (*sql.DB, error) {
	if dir := filepath.Dir(opts.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errx.Wrap(ErrCreateDir, err)
		}
	}

	db, err := sql.Open("sqlite", opts.Path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, errx.Wrap(ErrOpenDB, err)
	}
	// sqlite serializes writers; a single connection avoids SQLITE_BUSY
	// churn under concurrent use.
	db.SetMaxOpenConns(1)

	if err := migrate(db, opts.Module, opts.Migrations); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func migrate(db *sql.DB, module string, migrations []Migration) error {
	if _, err := db.Exec(migrationsSchema); err != nil {
		return errx.Wrap(ErrMigrate, err)
	}

	sorted := make([]Migration, len(migrations))
	copy(sorted, migrations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Version < sorted[j].Version })

	for _, m := range sorted {
		applied, err := migrationApplied(db, module, m.Version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}
		if err := applyMigration(db, module, m); err != nil {
			return errx.With(err, ": %s version %d (%s)", module, m.Version, m.Name)
		}
	}
	return nil
}

func migrationApplied(db *sql.DB, module string, version int) (bool, error) {
	var n int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM schema_migrations WHERE module = ? AND version = ?`,
		module, version,
	).Scan(&n)
	if err != nil {
		return false, errx.Wrap(ErrMigrate, err)
	}
	return n > 0, nil
}

func applyMigration(db *sql.DB, module string, m Migration) error {
	tx, err := db.Begin()
	if err != nil {
		return errx.Wrap(ErrMigrate, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(m.SQL); err != nil {
		return errx.Wrap(ErrMigrate, err)
	}
	if _, err := tx.Exec(
		`INSERT INTO schema_migrations (module, version, name, applied_at) VALUES (?, ?, ?, ?)`,
		module, m.Version, m.Name, time.Now().UTC().Format(time.RFC3339Nano),
	); err != nil {
		return errx.Wrap(ErrMigrate, err)
	}
	if err := tx.Commit(); err != nil {
		return errx.Wrap(ErrMigrate, err)
	}
	return nil
}
