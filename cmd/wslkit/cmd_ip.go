package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var ipCmd = &cobra.Command{
	Use:   "ip",
	Short: "Print the distribution's primary IP address",
	RunE:  runIP,
}

func init() {
	rootCmd.AddCommand(ipCmd)
}

func runIP(cmd *cobra.Command, args []string) error {
	c, cleanup, err := newController(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ip, err := c.IP(context.Background())
	if err != nil {
		return err
	}
	fmt.Println(ip)
	return nil
}
