package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/ssantosv/wslkit/internal/errx"
)

var installCmd = &cobra.Command{
	Use:   "install <package>",
	Short: "Install a package in the guest via sudo apt-get",
	Args:  cobra.ExactArgs(1),
	RunE:  runInstall,
}

var packagesCmd = &cobra.Command{
	Use:   "packages",
	Short: "List installed packages",
	Long: `List installed packages using whichever package manager the guest has
(apt, dnf, yum, or zypper).`,
	RunE: runPackages,
}

func init() {
	installCmd.Flags().String("password", "", "Sudo password (prompted when omitted)")
	viper.BindPFlag("install.password", installCmd.Flags().Lookup("password"))

	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(packagesCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		fmt.Fprint(os.Stderr, "Sudo password: ")
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return errx.Wrap(ErrReadPassword, err)
		}
		password = string(b)
	}

	c, cleanup, err := newController(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := c.InstallPackage(context.Background(), args[0], password)
	if err != nil {
		return err
	}
	os.Stdout.WriteString(res.Stdout)
	os.Stderr.WriteString(res.Stderr)
	if res.ExitCode != 0 {
		cleanup()
		os.Exit(res.ExitCode)
	}
	return nil
}

func runPackages(cmd *cobra.Command, args []string) error {
	c, cleanup, err := newController(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	pkgs, err := c.ListPackages(context.Background())
	if err != nil {
		return err
	}
	for _, p := range pkgs {
		fmt.Println(p)
	}
	return nil
}
