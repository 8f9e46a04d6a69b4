// Package backup keeps a catalog of exported distribution tarballs.
// Entries record where an export landed and when; the tarballs
// themselves live wherever the caller pointed the export.
package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/ssantosv/wslkit/internal/errx"
)

type Entry struct {
	ID        string
	Distro    string
	Path      string
	Size      int64
	CreatedAt time.Time
}

type Catalog struct {
	dir     string
	db      *sql.DB
	initErr error
}

// NewCatalog opens (creating if needed) the catalog rooted at dir. An
// empty dir selects the per-user default. Open errors are deferred to
// the first operation so construction never fails.
func NewCatalog(dir string) *Catalog {
	if dir == "" {
		dir = defaultCatalogDir()
	}
	_ = os.MkdirAll(dir, 0755)

	db, err := openCatalogDB(dir)
	return &Catalog{dir: dir, db: db, initErr: err}
}

// Dir returns the catalog root, where exports land by default.
func (c *Catalog) Dir() string {
	return c.dir
}

// DefaultExportPath builds a timestamped tarball path under the catalog
// root for a distribution export.
func (c *Catalog) DefaultExportPath(distro string, now time.Time) string {
	name := distro + "-" + now.UTC().Format("20060102-150405") + ".tar"
	return filepath.Join(c.dir, name)
}

func (c *Catalog) ready() error {
	if c.initErr != nil {
		return errx.Wrap(ErrCatalogRead, c.initErr)
	}
	if c.db == nil {
		return ErrCatalogRead
	}
	return nil
}

// Record registers a completed export. Size is read from the tarball on
// disk when the file is reachable; a missing file records zero rather
// than failing, since the export may sit on a detached volume.
func (c *Catalog) Record(distro, path string) (*Entry, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	e := &Entry{
		ID:        uuid.NewString(),
		Distro:    distro,
		Path:      path,
		CreatedAt: time.Now().UTC(),
	}
	if info, err := os.Stat(path); err == nil {
		e.Size = info.Size()
	}

	_, err := c.db.Exec(
		`INSERT INTO backups (id, distro, path, size, created_at) VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Distro, e.Path, e.Size, e.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, errx.With(ErrCatalogSave, ": record %s: %w", distro, err)
	}
	return e, nil
}

// List returns entries newest first, optionally filtered to one
// distribution when distro is non-empty.
func (c *Catalog) List(distro string) ([]Entry, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	query := `SELECT id, distro, path, size, created_at FROM backups`
	args := []any{}
	if distro != "" {
		query += ` WHERE distro = ?`
		args = append(args, distro)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, errx.With(ErrCatalogRead, ": query backups: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.ID, &e.Distro, &e.Path, &e.Size, &created); err != nil {
			return nil, errx.With(ErrCatalogRead, ": scan backup: %w", err)
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, errx.With(ErrCatalogRead, ": parse created_at: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errx.With(ErrCatalogRead, ": iterate backups: %w", err)
	}
	return out, nil
}

// Latest returns the newest entry for a distribution.
func (c *Catalog) Latest(distro string) (*Entry, error) {
	entries, err := c.List(distro)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, errx.With(ErrBackupNotFound, ": no backups for %q", distro)
	}
	return &entries[0], nil
}

// Remove drops an entry and deletes its tarball when still present.
func (c *Catalog) Remove(id string) error {
	if err := c.ready(); err != nil {
		return err
	}

	var path string
	err := c.db.QueryRow(`SELECT path FROM backups WHERE id = ?`, id).Scan(&path)
	if err == sql.ErrNoRows {
		return errx.With(ErrBackupNotFound, ": %q", id)
	}
	if err != nil {
		return errx.With(ErrCatalogRead, ": lookup backup %q: %w", id, err)
	}

	if _, err := c.db.Exec(`DELETE FROM backups WHERE id = ?`, id); err != nil {
		return errx.With(ErrCatalogSave, ": remove backup %q: %w", id, err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errx.With(ErrCatalogSave, ": remove tarball %s: %w", path, err)
	}
	return nil
}

func (c *Catalog) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}
