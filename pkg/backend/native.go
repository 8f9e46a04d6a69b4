package backend

import (
	"context"

	"github.com/kballard/go-shellquote"

	"github.com/ssantosv/wslkit/pkg/api"
	"github.com/ssantosv/wslkit/pkg/wslapi"
)

// NativeBackend executes via the host-exported wslapi control surface.
// It is the backend for operations that need typed structures a text
// pipe cannot represent losslessly.
type NativeBackend struct {
	surface wslapi.API
}

// NewNativeBackend wraps a control surface. Passing nil selects the
// system surface (wslapi.dll on Windows, unavailable elsewhere).
func NewNativeBackend(surface wslapi.API) *NativeBackend {
	if surface == nil {
		surface = wslapi.System()
	}
	return &NativeBackend{surface: surface}
}

func (b *NativeBackend) Kind() api.BackendKind {
	return api.BackendNative
}

// Surface exposes the underlying control surface for components that
// need the typed lifecycle calls directly (the distribution registry).
func (b *NativeBackend) Surface() wslapi.API {
	return b.surface
}

// Execute performs a native launch-with-capture. The context is checked
// before launching; an in-flight native call is not cancellable.
func (b *NativeBackend) Execute(ctx context.Context, req *api.ExecRequest) (*api.ExecResult, error) {
	if err := checkHint(req, api.BackendNative); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := b.surface.Launch(req.Distro, nativeCommand(req), true)
	if err != nil {
		return nil, err
	}
	return NormalizeLaunch(res), nil
}

// nativeCommand folds the working directory into the command line.
// WslLaunch only distinguishes "caller's cwd" from "user's home", so an
// explicit directory becomes a cd prefix under the guest shell.
func nativeCommand(req *api.ExecRequest) string {
	if req.WorkingDir == "" || req.Command == "" {
		return req.Command
	}
	return "cd " + shellquote.Join(req.WorkingDir) + " && " + req.Command
}

// ExecuteInteractive runs a command attached to the calling console and
// returns its exit code. An empty command opens the default shell.
func (b *NativeBackend) ExecuteInteractive(ctx context.Context, req *api.ExecRequest) (int, error) {
	if err := checkHint(req, api.BackendNative); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	code, err := b.surface.LaunchInteractive(req.Distro, nativeCommand(req), true)
	if err != nil {
		return 0, err
	}
	return int(code), nil
}

// QueryConfiguration reads the distribution configuration and returns it
// as a structured-payload result.
func (b *NativeBackend) QueryConfiguration(ctx context.Context, distro string) (*api.ExecResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg, err := b.surface.GetDistributionConfiguration(distro)
	if err != nil {
		return nil, err
	}
	return NormalizeConfig(cfg), nil
}
