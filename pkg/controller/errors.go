package controller

import "errors"

var (
	ErrPathTranslate = errors.New("failed to translate guest path")
	ErrCopyFile      = errors.New("failed to copy file")
	ErrNoIPAddress   = errors.New("no IP address reported")
	ErrExport        = errors.New("failed to export distribution")
	ErrReadConfig    = errors.New("failed to read configuration")
	ErrWriteConfig   = errors.New("failed to write configuration")
)
