// Package wslapi is the foreign-function boundary to the Windows-exported
// WSL control surface (wslapi.dll) and the Lxss registry hive. Everything
// host-specific lives behind the API interface so the rest of wslkit only
// sees canonical results, and so tests can substitute a Mock.
package wslapi

import "github.com/ssantosv/wslkit/pkg/api"

// LaunchResult is the raw outcome of a WslLaunch capture call.
type LaunchResult struct {
	ExitCode uint32
	Stdout   []byte
	Stderr   []byte
}

// DistroConfig is the flattened output of WslGetDistributionConfiguration.
type DistroConfig struct {
	// Version is the WSL version (1 or 2), decoded from the flag bits.
	Version int
	// DefaultUID is the uid commands run under by default.
	DefaultUID uint32
	// Flags are the distribution flags with the version bit stripped off
	// by api.DistroFlags accessors.
	Flags api.DistroFlags
	// Env is the default environment variable set, parsed from the
	// KEY=VALUE array the call returns.
	Env map[string]string
}

// DistroInfo is the per-distribution metadata stored under the
// HKCU Lxss registry key.
type DistroInfo struct {
	Name              string
	GUID              string
	BasePath          string
	Flavor            string
	PackageFamilyName string
	OSVersion         string
}

// API is the fixed set of host-exported entry points wslkit consumes.
// The system implementation binds wslapi.dll on Windows; every method of
// the non-Windows implementation fails with api.ErrBackendUnavailable.
type API interface {
	// Launch runs a command with captured stdout/stderr and waits for it.
	Launch(distro, command string, useCWD bool) (*LaunchResult, error)
	// LaunchInteractive runs a command attached to the calling console
	// and returns only its exit code. An empty command launches the
	// default shell.
	LaunchInteractive(distro, command string, useCWD bool) (uint32, error)

	RegisterDistribution(name, tarGzPath string) error
	UnregisterDistribution(name string) error
	IsDistributionRegistered(name string) (bool, error)
	ConfigureDistribution(name string, defaultUID uint32, flags api.DistroFlags) error
	GetDistributionConfiguration(name string) (*DistroConfig, error)

	// DistributionNames enumerates registered distribution names from the
	// Lxss registry hive. wslapi.dll itself exports no enumeration call.
	DistributionNames() ([]string, error)
	// DistroInfo reads the registry metadata for one distribution.
	DistroInfo(name string) (*DistroInfo, error)
}
