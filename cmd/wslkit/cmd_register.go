package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ssantosv/wslkit/pkg/controller"
)

var registerCmd = &cobra.Command{
	Use:   "register <rootfs.tar.gz>",
	Short: "Register the distribution from a rootfs tarball",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRegister,
}

var unregisterCmd = &cobra.Command{
	Use:   "unregister",
	Short: "Unregister the distribution and delete its data",
	RunE:  runUnregister,
}

func init() {
	unregisterCmd.Flags().Bool("strict", false, "Fail when the distribution is not registered")
	viper.BindPFlag("unregister.strict", unregisterCmd.Flags().Lookup("strict"))

	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(unregisterCmd)
}

func runRegister(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return ErrTarballRequired
	}

	c, cleanup, err := newController(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	rec, err := c.Register(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Registered %s (WSL %d)\n", rec.Name, rec.Version)
	return nil
}

func runUnregister(cmd *cobra.Command, args []string) error {
	strict, _ := cmd.Flags().GetBool("strict")
	distroName, _ := cmd.Flags().GetString("distro")

	var extra []controller.Option
	if strict {
		extra = append(extra, controller.WithStrictUnregister())
	}
	c, cleanup, err := newController(cmd, extra...)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := c.Unregister(); err != nil {
		return err
	}
	fmt.Printf("Unregistered %s\n", distroName)
	return nil
}
