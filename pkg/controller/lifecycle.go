package controller

import (
	"context"
	"strings"

	"github.com/ssantosv/wslkit/pkg/api"
	"github.com/ssantosv/wslkit/pkg/distro"
	"github.com/ssantosv/wslkit/pkg/logging"
)

// ListDistributions enumerates registered distributions. When wsl.exe
// can report running instances the records are refined to
// running/stopped; otherwise they stay at the registered baseline.
func (c *Controller) ListDistributions(ctx context.Context) ([]distro.Record, error) {
	records, err := c.registry.List()
	if err != nil {
		return nil, err
	}

	running, ok := c.runningNames(ctx)
	if !ok {
		return records, nil
	}
	for i := range records {
		if running[records[i].Name] {
			records[i].State = distro.StateRunning
		} else {
			records[i].State = distro.StateStopped
		}
	}
	return records, nil
}

// runningNames asks wsl.exe for the currently running instances. The
// second result is false when the query itself is unavailable, which is
// not an error: the caller keeps the coarser registration state.
func (c *Controller) runningNames(ctx context.Context) (map[string]bool, bool) {
	res, err := c.proc.Control(ctx, "--list", "--running", "--quiet")
	if err != nil || res.ExitCode != 0 {
		return nil, false
	}
	names := make(map[string]bool)
	for _, line := range strings.Split(res.Stdout, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			names[name] = true
		}
	}
	return names, true
}

// IsRegistered reports whether the bound distribution is registered.
func (c *Controller) IsRegistered() (bool, error) {
	return c.registry.IsRegistered(c.distro)
}

// Register installs the bound distribution from a rootfs tarball.
func (c *Controller) Register(tarGzPath string) (*distro.Record, error) {
	rec, err := c.registry.Register(c.distro, tarGzPath)
	c.emitLifecycle("register", err)
	return rec, err
}

// Unregister removes the bound distribution and all its data.
func (c *Controller) Unregister() error {
	err := c.registry.Unregister(c.distro)
	c.emitLifecycle("unregister", err)
	return err
}

// GetConfiguration reads the bound distribution's registration record.
func (c *Controller) GetConfiguration() (*distro.Record, error) {
	return c.registry.Get(c.distro)
}

// SetConfiguration applies a partial configuration update; unset fields
// keep their current values.
func (c *Controller) SetConfiguration(opts distro.ConfigureOptions) error {
	err := c.registry.Configure(c.distro, opts)
	c.emitLifecycle("configure", err)
	return err
}

// SetFlag flips one distribution flag while keeping the others
// unchanged.
func (c *Controller) SetFlag(flag api.DistroFlags, enable bool) error {
	err := c.registry.SetFlag(c.distro, flag, enable)
	c.emitLifecycle("configure", err)
	return err
}

// Terminate stops the bound distribution's running instance.
func (c *Controller) Terminate(ctx context.Context) error {
	res, err := c.proc.Control(ctx, "--terminate", c.distro)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return controlFailure(res)
	}
	c.emitLifecycle("terminate", nil)
	return nil
}

func (c *Controller) emitLifecycle(op string, err error) {
	data := &logging.LifecycleData{Operation: op}
	if err != nil {
		data.Error = err.Error()
	}
	_ = c.emitter.Emit(logging.EventLifecycle, op+" "+c.distro, nil, data)
}
