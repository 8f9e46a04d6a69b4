// Package api defines the canonical types shared by every wslkit component:
// execution requests and results, distribution flags, and the sentinel
// error taxonomy.
package api

// BackendKind identifies which execution backend handles a request.
// The set is closed: process (wsl.exe) or native (wslapi.dll).
type BackendKind string

const (
	BackendProcess BackendKind = "process"
	BackendNative  BackendKind = "native"
)

// ExecRequest describes a single command to run inside a distribution.
// Requests are constructed per call and not retained by backends.
type ExecRequest struct {
	// Distro is the target distribution name.
	Distro string
	// Command is the shell command line to execute.
	Command string
	// User optionally overrides the default user (process backend only).
	User string
	// WorkingDir optionally sets the working directory inside the guest.
	WorkingDir string
	// Stdin is optional input piped to the command (process backend only).
	Stdin string
	// Backend is the backend hint. Controllers set this per operation kind;
	// backends reject requests hinted at the other kind.
	Backend BackendKind
}

// ExecResult is the canonical outcome of an execution, regardless of
// backend. A non-zero ExitCode is data, not an error: callers that need
// stricter semantics inspect it themselves.
type ExecResult struct {
	// ExitCode is the command's exit code, or the native call's mapped
	// process exit code.
	ExitCode int
	// Stdout is the captured standard output. Empty for native calls that
	// produce none.
	Stdout string
	// Stderr is the captured standard error. Empty for native calls.
	Stderr string
	// Fields holds the flattened output structure of native calls
	// (for example distribution configuration). Nil for process results.
	Fields map[string]string
}

// Success reports whether the command exited with code zero.
func (r *ExecResult) Success() bool {
	return r != nil && r.ExitCode == 0
}
