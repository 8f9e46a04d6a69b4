// Package controller is the public operation surface. A Controller binds
// one distribution and routes each operation to the execution backend
// that fits it: text-in/text-out commands go through wsl.exe, typed
// lifecycle and configuration calls through the native control surface.
//
// A Controller holds single-writer state for its target; use one
// Controller per distribution when operating concurrently.
package controller

import (
	"context"
	"strings"
	"time"

	"github.com/ssantosv/wslkit/internal/errx"
	"github.com/ssantosv/wslkit/pkg/api"
	"github.com/ssantosv/wslkit/pkg/backend"
	"github.com/ssantosv/wslkit/pkg/backup"
	"github.com/ssantosv/wslkit/pkg/distro"
	"github.com/ssantosv/wslkit/pkg/keepalive"
	"github.com/ssantosv/wslkit/pkg/logging"
	"github.com/ssantosv/wslkit/pkg/wslapi"
)

// DefaultDistro is assumed when the caller does not name one.
const DefaultDistro = "Ubuntu"

type Controller struct {
	distro       string
	proc         *backend.ProcessBackend
	native       *backend.NativeBackend
	registry     *distro.Registry
	catalog      *backup.Catalog
	emitter      *logging.Emitter
	super        *keepalive.Supervisor
	hostConfPath string
}

type Option func(*options)

type options struct {
	surface      wslapi.API
	exe          string
	emitter      *logging.Emitter
	catalogDir   string
	hostConfPath string
	registryOpts []distro.Option
}

// WithSurface overrides the native control surface. Tests inject a
// wslapi.Mock here.
func WithSurface(surface wslapi.API) Option {
	return func(o *options) { o.surface = surface }
}

// WithProcessExe overrides the wsl.exe launcher path.
func WithProcessExe(exe string) Option {
	return func(o *options) { o.exe = exe }
}

// WithEmitter attaches a structured event emitter. Without one the
// controller stays silent.
func WithEmitter(e *logging.Emitter) Option {
	return func(o *options) { o.emitter = e }
}

// WithCatalogDir overrides where backup tarballs and their catalog live.
func WithCatalogDir(dir string) Option {
	return func(o *options) { o.catalogDir = dir }
}

// WithHostConfPath overrides the ~/.wslconfig location.
func WithHostConfPath(path string) Option {
	return func(o *options) { o.hostConfPath = path }
}

// WithStrictUnregister makes Unregister fail on missing names instead of
// succeeding silently.
func WithStrictUnregister() Option {
	return func(o *options) { o.registryOpts = append(o.registryOpts, distro.WithStrictUnregister()) }
}

// New builds a controller bound to one distribution. An empty name
// selects DefaultDistro.
func New(distroName string, opts ...Option) *Controller {
	if distroName == "" {
		distroName = DefaultDistro
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var proc *backend.ProcessBackend
	if o.exe != "" {
		proc = backend.NewProcessBackendExe(o.exe)
	} else {
		proc = backend.NewProcessBackend()
	}
	native := backend.NewNativeBackend(o.surface)

	return &Controller{
		distro:       distroName,
		proc:         proc,
		native:       native,
		registry:     distro.NewRegistry(native.Surface(), o.registryOpts...),
		catalog:      backup.NewCatalog(o.catalogDir),
		emitter:      o.emitter,
		super:        keepalive.NewSupervisor(proc, o.emitter),
		hostConfPath: o.hostConfPath,
	}
}

// Distro returns the bound distribution name.
func (c *Controller) Distro() string {
	return c.distro
}

// Close stops background keep-alive work and releases the backup
// catalog. The emitter is owned by the caller and stays open.
func (c *Controller) Close() error {
	c.super.StopAll()
	return c.catalog.Close()
}

// Run executes a shell command through the process backend, capturing
// both streams and the exit code. A non-zero exit is reported in the
// result, not as an error.
func (c *Controller) Run(ctx context.Context, command string) (*api.ExecResult, error) {
	return c.runProcess(ctx, &api.ExecRequest{Distro: c.distro, Command: command})
}

// RunAs runs a command as a specific guest user.
func (c *Controller) RunAs(ctx context.Context, user, command string) (*api.ExecResult, error) {
	return c.RunWith(ctx, user, "", command)
}

// RunIn runs a command in a guest working directory.
func (c *Controller) RunIn(ctx context.Context, dir, command string) (*api.ExecResult, error) {
	return c.RunWith(ctx, "", dir, command)
}

// RunWith runs a command as a guest user in a working directory; either
// may be empty to keep the distribution default.
func (c *Controller) RunWith(ctx context.Context, user, dir, command string) (*api.ExecResult, error) {
	return c.runProcess(ctx, &api.ExecRequest{Distro: c.distro, Command: command, User: user, WorkingDir: dir})
}

func (c *Controller) runProcess(ctx context.Context, req *api.ExecRequest) (*api.ExecResult, error) {
	started := time.Now()
	res, err := c.proc.Execute(ctx, req)
	if err != nil {
		return nil, err
	}
	_ = c.emitter.Emit(logging.EventCommand, req.Command, nil, &logging.CommandData{
		Command:    req.Command,
		Backend:    string(api.BackendProcess),
		ExitCode:   res.ExitCode,
		DurationMS: time.Since(started).Milliseconds(),
	})
	return res, nil
}

// RunInteractive attaches the calling terminal to the command and
// returns its exit code. An empty command opens the default shell.
func (c *Controller) RunInteractive(command string) (int, error) {
	return c.proc.ExecuteInteractive(context.Background(), &api.ExecRequest{
		Distro:  c.distro,
		Command: command,
	})
}

// Launch executes a command through the native control surface with
// captured output.
func (c *Controller) Launch(ctx context.Context, command string) (*api.ExecResult, error) {
	started := time.Now()
	res, err := c.native.Execute(ctx, &api.ExecRequest{Distro: c.distro, Command: command})
	if err != nil {
		return nil, err
	}
	_ = c.emitter.Emit(logging.EventCommand, command, nil, &logging.CommandData{
		Command:    command,
		Backend:    string(api.BackendNative),
		ExitCode:   res.ExitCode,
		DurationMS: time.Since(started).Milliseconds(),
	})
	return res, nil
}

// LaunchInteractive runs a command on the calling console through the
// native surface and returns its exit code.
func (c *Controller) LaunchInteractive(command string) (int, error) {
	return c.native.ExecuteInteractive(context.Background(), &api.ExecRequest{
		Distro:  c.distro,
		Command: command,
	})
}

// KeepAliveStart begins issuing periodic no-op commands so the
// distribution's VM is not idled out. Starting twice returns the same
// live handle.
func (c *Controller) KeepAliveStart(interval time.Duration) (*keepalive.Handle, error) {
	return c.super.Start(c.distro, interval)
}

// KeepAliveStop halts the keep-alive loop. A no-op when none is running.
func (c *Controller) KeepAliveStop() {
	c.super.Stop(c.distro)
}

// KeepAliveRunning reports whether a keep-alive loop is active.
func (c *Controller) KeepAliveRunning() bool {
	return c.super.Running(c.distro)
}

// controlFailure shapes a failed wsl.exe management invocation into an
// error carrying whatever diagnostic text the tool produced.
func controlFailure(res *api.ExecResult) error {
	msg := strings.TrimSpace(res.Stderr)
	if msg == "" {
		msg = strings.TrimSpace(res.Stdout)
	}
	return errx.With(api.ErrInternal, ": wsl.exe exit %d: %s", res.ExitCode, msg)
}
