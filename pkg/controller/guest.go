package controller

import (
	"context"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/ssantosv/wslkit/internal/errx"
	"github.com/ssantosv/wslkit/pkg/api"
)

// IP returns the guest's primary IPv4 address as reported by
// hostname -I.
func (c *Controller) IP(ctx context.Context) (string, error) {
	res, err := c.Run(ctx, "hostname -I")
	if err != nil {
		return "", err
	}
	addrs := strings.Fields(res.Stdout)
	if res.ExitCode != 0 || len(addrs) == 0 {
		return "", errx.With(ErrNoIPAddress, ": %s", strings.TrimSpace(res.Stderr))
	}
	return addrs[0], nil
}

// InstallPackage installs a package through sudo with the password fed
// on stdin. Only apt-based guests are supported for installs.
func (c *Controller) InstallPackage(ctx context.Context, pkg, sudoPassword string) (*api.ExecResult, error) {
	return c.runProcess(ctx, &api.ExecRequest{
		Distro:  c.distro,
		Command: "sudo -S apt-get install -y " + shellquote.Join(pkg),
		Stdin:   sudoPassword + "\n",
	})
}

// packageManagers maps a probe binary to its list invocation, tried in
// order.
var packageManagers = []struct {
	name string
	list string
}{
	{"apt", "apt list --installed"},
	{"dnf", "dnf list installed"},
	{"yum", "yum list installed"},
	{"zypper", "zypper se --installed-only"},
}

// ListPackages lists installed packages using the first package manager
// the guest has. An empty slice means none of the known managers were
// found.
func (c *Controller) ListPackages(ctx context.Context) ([]string, error) {
	for _, pm := range packageManagers {
		probe, err := c.Run(ctx, "which "+pm.name)
		if err != nil {
			return nil, err
		}
		if probe.ExitCode != 0 || strings.TrimSpace(probe.Stdout) == "" {
			continue
		}

		res, err := c.Run(ctx, pm.list)
		if err != nil {
			return nil, err
		}
		if res.ExitCode != 0 {
			continue
		}
		var lines []string
		for _, line := range strings.Split(res.Stdout, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
		return lines, nil
	}
	return nil, nil
}

// AccessDates reports root filesystem timestamps via stat /, useful for
// judging when the distribution was last touched.
func (c *Controller) AccessDates(ctx context.Context) (string, error) {
	res, err := c.Run(ctx, "stat /")
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "", errx.With(api.ErrInternal, ": stat /: %s", strings.TrimSpace(res.Stderr))
	}
	return res.Stdout, nil
}
