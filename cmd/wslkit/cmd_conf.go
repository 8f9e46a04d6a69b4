package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var confCmd = &cobra.Command{
	Use:   "conf",
	Short: "Inspect guest and host configuration",
}

var confGuestCmd = &cobra.Command{
	Use:   "guest",
	Short: "Show the guest's /etc/wsl.conf settings",
	RunE:  runConfGuest,
}

var confHostCmd = &cobra.Command{
	Use:   "host",
	Short: "Show the host's ~/.wslconfig resource limits",
	RunE:  runConfHost,
}

func init() {
	confCmd.AddCommand(confGuestCmd)
	confCmd.AddCommand(confHostCmd)
	rootCmd.AddCommand(confCmd)
}

func runConfGuest(cmd *cobra.Command, args []string) error {
	c, cleanup, err := newController(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	gc, err := c.ReadGuestConf(context.Background())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "automount.enabled\t%v\n", gc.AutomountEnabled())
	fmt.Fprintf(w, "automount.root\t%s\n", gc.AutomountRoot())
	fmt.Fprintf(w, "automount.options\t%s\n", gc.AutomountOptions())
	fmt.Fprintf(w, "network.hostname\t%s\n", gc.Hostname())
	fmt.Fprintf(w, "network.generateHosts\t%v\n", gc.GenerateHosts())
	fmt.Fprintf(w, "network.generateResolvConf\t%v\n", gc.GenerateResolvConf())
	fmt.Fprintf(w, "interop.enabled\t%v\n", gc.InteropEnabled())
	fmt.Fprintf(w, "boot.systemd\t%v\n", gc.SystemdEnabled())
	fmt.Fprintf(w, "useWindowsTimezone.enabled\t%v\n", gc.UseWindowsTimezone())
	fmt.Fprintf(w, "user.default\t%s\n", gc.DefaultUser())
	w.Flush()
	return nil
}

func runConfHost(cmd *cobra.Command, args []string) error {
	c, cleanup, err := newController(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	hc, err := c.ReadHostConf()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "wsl2.memory\t%s\n", hc.Memory())
	fmt.Fprintf(w, "wsl2.processors\t%d\n", hc.Processors())
	fmt.Fprintf(w, "wsl2.swap\t%s\n", hc.Swap())
	fmt.Fprintf(w, "wsl2.localhostForwarding\t%v\n", hc.LocalhostForwarding())
	fmt.Fprintf(w, "wsl2.guiApplications\t%v\n", hc.GUIApplications())
	w.Flush()
	return nil
}
