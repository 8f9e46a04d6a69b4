// Package backend implements the two execution backends behind one
// interface: ProcessBackend spawns wsl.exe and captures text streams,
// NativeBackend calls the wslapi control surface. Selection between them
// is a property of the operation kind, decided by the controller; a
// backend never falls back to the other one.
package backend

import (
	"context"

	"github.com/ssantosv/wslkit/pkg/api"
)

// Backend executes one request against a distribution and returns the
// canonical result. A non-zero exit code is reported in the result, not
// as an error; errors mean the execution itself could not happen.
type Backend interface {
	Execute(ctx context.Context, req *api.ExecRequest) (*api.ExecResult, error)
	Kind() api.BackendKind
}

// checkHint rejects requests explicitly hinted at another backend.
// Unset hints are accepted.
func checkHint(req *api.ExecRequest, kind api.BackendKind) error {
	if req.Backend != "" && req.Backend != kind {
		return api.ErrWrongBackend
	}
	return nil
}
