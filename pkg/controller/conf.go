package controller

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/ssantosv/wslkit/internal/errx"
	"github.com/ssantosv/wslkit/pkg/api"
	"github.com/ssantosv/wslkit/pkg/conf"
)

const guestConfPath = "/etc/wsl.conf"

// ReadGuestConf reads and parses /etc/wsl.conf from the guest. A missing
// file yields an empty document, so every setting reports its default.
func (c *Controller) ReadGuestConf(ctx context.Context) (*conf.GuestConf, error) {
	res, err := c.Run(ctx, "cat "+guestConfPath)
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		return conf.ParseGuestConf(nil), nil
	}
	return conf.ParseGuestConf([]byte(res.Stdout)), nil
}

// WriteGuestConf serializes the document back to /etc/wsl.conf. The
// write runs as root since the file is system-owned. Comments from the
// original file are not preserved.
func (c *Controller) WriteGuestConf(ctx context.Context, gc *conf.GuestConf) error {
	res, err := c.runProcess(ctx, &api.ExecRequest{
		Distro:  c.distro,
		User:    "root",
		Command: "cat > " + guestConfPath,
		Stdin:   string(gc.Doc.Serialize()),
	})
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return errx.With(ErrWriteConfig, ": %s: %s", guestConfPath, strings.TrimSpace(res.Stderr))
	}
	return nil
}

// hostConfLocation resolves ~/.wslconfig, honoring the override option.
func (c *Controller) hostConfLocation() (string, error) {
	if c.hostConfPath != "" {
		return c.hostConfPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errx.With(ErrReadConfig, ": resolve home dir: %w", err)
	}
	return filepath.Join(home, ".wslconfig"), nil
}

// ReadHostConf reads and parses the host-side ~/.wslconfig. A missing
// file yields an empty document.
func (c *Controller) ReadHostConf() (*conf.HostConf, error) {
	path, err := c.hostConfLocation()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return conf.ParseHostConf(nil), nil
	}
	if err != nil {
		return nil, errx.With(ErrReadConfig, ": %s: %w", path, err)
	}
	return conf.ParseHostConf(data), nil
}

// WriteHostConf serializes the document back to ~/.wslconfig.
func (c *Controller) WriteHostConf(hc *conf.HostConf) error {
	path, err := c.hostConfLocation()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, hc.Doc.Serialize(), 0644); err != nil {
		return errx.With(ErrWriteConfig, ": %s: %w", path, err)
	}
	return nil
}

// NetworkConfig is the guest's [network] section with defaults applied.
type NetworkConfig struct {
	Hostname           string
	GenerateHosts      bool
	GenerateResolvConf bool
}

func (c *Controller) NetworkConfig(ctx context.Context) (*NetworkConfig, error) {
	gc, err := c.ReadGuestConf(ctx)
	if err != nil {
		return nil, err
	}
	return &NetworkConfig{
		Hostname:           gc.Hostname(),
		GenerateHosts:      gc.GenerateHosts(),
		GenerateResolvConf: gc.GenerateResolvConf(),
	}, nil
}

// AutomountSettings is the guest's [automount] section with defaults
// applied.
type AutomountSettings struct {
	Enabled bool
	Root    string
	Options string
}

func (c *Controller) AutomountSettings(ctx context.Context) (*AutomountSettings, error) {
	gc, err := c.ReadGuestConf(ctx)
	if err != nil {
		return nil, err
	}
	return &AutomountSettings{
		Enabled: gc.AutomountEnabled(),
		Root:    gc.AutomountRoot(),
		Options: gc.AutomountOptions(),
	}, nil
}

// DefaultUser returns the guest's configured default login, empty when
// unset.
func (c *Controller) DefaultUser(ctx context.Context) (string, error) {
	gc, err := c.ReadGuestConf(ctx)
	if err != nil {
		return "", err
	}
	return gc.DefaultUser(), nil
}

func (c *Controller) InteropEnabled(ctx context.Context) (bool, error) {
	gc, err := c.ReadGuestConf(ctx)
	if err != nil {
		return false, err
	}
	return gc.InteropEnabled(), nil
}

func (c *Controller) SystemdEnabled(ctx context.Context) (bool, error) {
	gc, err := c.ReadGuestConf(ctx)
	if err != nil {
		return false, err
	}
	return gc.SystemdEnabled(), nil
}

func (c *Controller) UseWindowsTimezone(ctx context.Context) (bool, error) {
	gc, err := c.ReadGuestConf(ctx)
	if err != nil {
		return false, err
	}
	return gc.UseWindowsTimezone(), nil
}
