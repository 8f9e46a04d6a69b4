package backend

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/ssantosv/wslkit/internal/errx"
	"github.com/ssantosv/wslkit/pkg/api"
)

const defaultWSLExe = "wsl.exe"

// ProcessBackend runs commands by spawning wsl.exe and capturing both
// text streams fully. It is the backend for pure text-in/text-out shell
// invocations.
type ProcessBackend struct {
	exe string
}

// NewProcessBackend returns a backend that spawns wsl.exe from PATH.
func NewProcessBackend() *ProcessBackend {
	return &ProcessBackend{exe: defaultWSLExe}
}

// NewProcessBackendExe overrides the launcher executable. Used by tests
// and by hosts with a pinned wsl.exe path.
func NewProcessBackendExe(exe string) *ProcessBackend {
	return &ProcessBackend{exe: exe}
}

func (b *ProcessBackend) Kind() api.BackendKind {
	return api.BackendProcess
}

// Argv builds the wsl.exe invocation for a request. The command line is
// handed to the guest's shell verbatim after the -- separator so quoting
// stays under the guest shell's rules.
func (b *ProcessBackend) Argv(req *api.ExecRequest) []string {
	argv := []string{b.exe, "-d", req.Distro}
	if req.User != "" {
		argv = append(argv, "--user", req.User)
	}
	if req.WorkingDir != "" {
		argv = append(argv, "--cd", req.WorkingDir)
	}
	return append(argv, "--", "/bin/sh", "-c", req.Command)
}

// Execute spawns the process, waits for completion, and captures stdout,
// stderr and the exit code. A non-zero exit is reported in the result;
// only a failure to spawn is an error.
func (b *ProcessBackend) Execute(ctx context.Context, req *api.ExecRequest) (*api.ExecResult, error) {
	if err := checkHint(req, api.BackendProcess); err != nil {
		return nil, err
	}
	argv := b.Argv(req)
	return capture(ctx, argv, req.Stdin)
}

// ExecuteInteractive attaches the invoking terminal directly to the child
// process and returns only the final exit code. Used for live sessions
// such as editors and shells.
func (b *ProcessBackend) ExecuteInteractive(ctx context.Context, req *api.ExecRequest) (int, error) {
	if err := checkHint(req, api.BackendProcess); err != nil {
		return 0, err
	}
	argv := b.Argv(req)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return 0, nil
	case errors.As(err, &exitErr):
		return exitErr.ExitCode(), nil
	default:
		return 0, errx.Wrap(api.ErrProcessSpawn, err)
	}
}

// capture runs argv to completion with fully buffered streams.
func capture(ctx context.Context, argv []string, stdin string) (*api.ExecResult, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return NormalizeProcess(0, stdout.Bytes(), stderr.Bytes()), nil
	case errors.As(err, &exitErr):
		return NormalizeProcess(exitErr.ExitCode(), stdout.Bytes(), stderr.Bytes()), nil
	default:
		return nil, errx.Wrap(api.ErrProcessSpawn, err)
	}
}
