package main

import "errors"

var (
	ErrCommandRequired  = errors.New("command required")
	ErrTarballRequired  = errors.New("rootfs tarball required")
	ErrReadPassword     = errors.New("read password")
	ErrInvalidFlagValue = errors.New("invalid flag value")
)
