package api

import "errors"

var (
	// ErrBackendUnavailable means the native control surface is not
	// present or was denied. Calls fail with it instead of falling back
	// to the process backend.
	ErrBackendUnavailable = errors.New("native backend unavailable")
	// ErrProcessSpawn means the child process could not be started.
	ErrProcessSpawn = errors.New("spawn process")
	// ErrWrongBackend means a request was routed to a backend whose kind
	// does not match the request hint.
	ErrWrongBackend = errors.New("request hinted at a different backend")

	// Native status taxonomy. Every non-success host status maps to
	// exactly one of these four.
	ErrNotFound        = errors.New("not found")
	ErrAccessDenied    = errors.New("access denied")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInternal        = errors.New("internal native call failure")

	// ErrConflict means registering a name that is already registered.
	ErrConflict = errors.New("distribution already registered")
	// ErrInvalidConfig means a configuration value is out of range.
	ErrInvalidConfig = errors.New("invalid configuration")
)
