package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var cpCmd = &cobra.Command{
	Use:   "cp",
	Short: "Copy files across the host/guest boundary",
}

var cpInCmd = &cobra.Command{
	Use:   "in <host-path> <guest-path>",
	Short: "Copy a host file into the guest",
	Args:  cobra.ExactArgs(2),
	RunE:  runCpIn,
}

var cpOutCmd = &cobra.Command{
	Use:   "out <guest-path> <host-path>",
	Short: "Copy a guest file to the host",
	Args:  cobra.ExactArgs(2),
	RunE:  runCpOut,
}

func init() {
	cpCmd.AddCommand(cpInCmd)
	cpCmd.AddCommand(cpOutCmd)
	rootCmd.AddCommand(cpCmd)
}

func runCpIn(cmd *cobra.Command, args []string) error {
	c, cleanup, err := newController(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := c.CopyIn(context.Background(), args[0], args[1]); err != nil {
		return err
	}
	fmt.Printf("%s -> %s:%s\n", args[0], c.Distro(), args[1])
	return nil
}

func runCpOut(cmd *cobra.Command, args []string) error {
	c, cleanup, err := newController(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := c.CopyOut(context.Background(), args[0], args[1]); err != nil {
		return err
	}
	fmt.Printf("%s:%s -> %s\n", c.Distro(), args[0], args[1])
	return nil
}
