package storedb

import "errors"

var (
	ErrCreateDir = errors.New("failed to create database directory")
	ErrOpenDB    = errors.New("failed to open database")
	ErrMigrate   = errors.New("failed to apply migration")
)
