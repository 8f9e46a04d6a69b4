//go:build !windows

package wslapi

import (
	"github.com/ssantosv/wslkit/internal/errx"
	"github.com/ssantosv/wslkit/pkg/api"
)

type unavailable struct{}

// System returns a control surface whose every call fails with
// api.ErrBackendUnavailable. wslapi.dll exists only on Windows; there is
// no fallback to the process backend from here.
func System() API {
	return &unavailable{}
}

func (u *unavailable) err(op string) error {
	return errx.With(api.ErrBackendUnavailable, ": %s requires the Windows wslapi surface", op)
}

func (u *unavailable) Launch(string, string, bool) (*LaunchResult, error) {
	return nil, u.err("launch")
}

func (u *unavailable) LaunchInteractive(string, string, bool) (uint32, error) {
	return 0, u.err("launch interactive")
}

func (u *unavailable) RegisterDistribution(string, string) error {
	return u.err("register")
}

func (u *unavailable) UnregisterDistribution(string) error {
	return u.err("unregister")
}

func (u *unavailable) IsDistributionRegistered(string) (bool, error) {
	return false, u.err("is registered")
}

func (u *unavailable) ConfigureDistribution(string, uint32, api.DistroFlags) error {
	return u.err("configure")
}

func (u *unavailable) GetDistributionConfiguration(string) (*DistroConfig, error) {
	return nil, u.err("get configuration")
}

func (u *unavailable) DistributionNames() ([]string, error) {
	return nil, u.err("distribution names")
}

func (u *unavailable) DistroInfo(string) (*DistroInfo, error) {
	return nil, u.err("distro info")
}
