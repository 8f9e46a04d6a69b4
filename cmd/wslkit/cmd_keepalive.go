package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ssantosv/wslkit/pkg/keepalive"
)

var keepaliveCmd = &cobra.Command{
	Use:   "keepalive",
	Short: "Keep the distribution's VM from idling out",
	Long: `Issue a periodic no-op command so WSL does not shut the distribution
down while no terminal is attached. Runs until interrupted.`,
	RunE: runKeepalive,
}

func init() {
	keepaliveCmd.Flags().Duration("interval", keepalive.DefaultInterval, "Time between ticks")
	viper.BindPFlag("keepalive.interval", keepaliveCmd.Flags().Lookup("interval"))

	rootCmd.AddCommand(keepaliveCmd)
}

func runKeepalive(cmd *cobra.Command, args []string) error {
	interval, _ := cmd.Flags().GetDuration("interval")

	c, cleanup, err := newController(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	h, err := c.KeepAliveStart(interval)
	if err != nil {
		return err
	}
	fmt.Printf("Keeping %s alive every %s (Ctrl-C to stop)\n", c.Distro(), interval)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	c.KeepAliveStop()
	fmt.Printf("Stopped after %d ticks\n", h.Ticks())
	return nil
}
