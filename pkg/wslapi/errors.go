package wslapi

import "errors"

var (
	ErrCreatePipe   = errors.New("create capture pipe")
	ErrWaitProcess  = errors.New("wait for guest process")
	ErrExitCode     = errors.New("read guest process exit code")
	ErrOpenRegistry = errors.New("open Lxss registry key")
	ErrReadRegistry = errors.New("read Lxss registry value")
)
