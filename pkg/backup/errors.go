package backup

import "errors"

var (
	ErrCatalogRead    = errors.New("failed to read backup catalog")
	ErrCatalogSave    = errors.New("failed to update backup catalog")
	ErrBackupNotFound = errors.New("backup not found")
)
