package backup

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/ssantosv/wslkit/pkg/storedb"
)

const backupModule = "backup"

func defaultCatalogDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".wslkit", "backups")
}

func catalogDBPath(dir string) string {
	return filepath.Join(dir, "catalog.db")
}

func openCatalogDB(dir string) (*sql.DB, error) {
	return storedb.Open(storedb.OpenOptions{
		Path:       catalogDBPath(dir),
		Module:     backupModule,
		Migrations: catalogMigrations(),
	})
}

func catalogMigrations() []storedb.Migration {
	return []storedb.Migration{
		{
			Version: 1,
			Name:    "create_backups",
			SQL: `
CREATE TABLE IF NOT EXISTS backups (
  id TEXT PRIMARY KEY,
  distro TEXT NOT NULL,
  path TEXT NOT NULL,
  size INTEGER NOT NULL DEFAULT 0,
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_backups_distro_created ON backups(distro, created_at DESC);
`,
		},
	}
}
