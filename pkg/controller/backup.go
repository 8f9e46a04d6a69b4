package controller

import (
	"context"
	"time"

	"github.com/ssantosv/wslkit/internal/errx"
	"github.com/ssantosv/wslkit/pkg/backup"
	"github.com/ssantosv/wslkit/pkg/logging"
)

// Backup exports the bound distribution to a tarball and records it in
// the catalog. An empty destPath lands the export in the catalog
// directory under a timestamped name.
func (c *Controller) Backup(ctx context.Context, destPath string) (*backup.Entry, error) {
	if destPath == "" {
		destPath = c.catalog.DefaultExportPath(c.distro, time.Now())
	}

	res, err := c.proc.Control(ctx, "--export", c.distro, destPath)
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		return nil, errx.Wrap(ErrExport, controlFailure(res))
	}

	entry, err := c.catalog.Record(c.distro, destPath)
	if err != nil {
		return nil, err
	}
	_ = c.emitter.Emit(logging.EventBackup, "export "+c.distro, nil, &logging.BackupData{
		Destination: entry.Path,
		SizeBytes:   entry.Size,
	})
	return entry, nil
}

// Backups lists recorded exports for the bound distribution, newest
// first.
func (c *Controller) Backups() ([]backup.Entry, error) {
	return c.catalog.List(c.distro)
}

// RemoveBackup drops a catalog entry and its tarball.
func (c *Controller) RemoveBackup(id string) error {
	return c.catalog.Remove(id)
}
