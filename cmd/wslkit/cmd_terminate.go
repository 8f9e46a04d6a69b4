package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var terminateCmd = &cobra.Command{
	Use:   "terminate",
	Short: "Stop the distribution's running instance",
	RunE:  runTerminate,
}

func init() {
	rootCmd.AddCommand(terminateCmd)
}

func runTerminate(cmd *cobra.Command, args []string) error {
	c, cleanup, err := newController(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := c.Terminate(context.Background()); err != nil {
		return err
	}
	fmt.Printf("Terminated %s\n", c.Distro())
	return nil
}
