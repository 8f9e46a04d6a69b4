package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var shellCmd = &cobra.Command{
	Use:   "shell [flags] [-- <command>]",
	Short: "Open an interactive session in the distribution",
	Long: `Open an interactive session attached to the current terminal. Without a
command the distribution's default shell starts.`,
	Args: cobra.ArbitraryArgs,
	RunE: runShell,
}

func init() {
	shellCmd.Flags().Bool("native", false, "Attach through the native control surface instead of wsl.exe")
	viper.BindPFlag("shell.native", shellCmd.Flags().Lookup("native"))

	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	command := strings.Join(args, " ")
	native, _ := cmd.Flags().GetBool("native")

	c, cleanup, err := newController(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	var code int
	if native {
		code, err = c.LaunchInteractive(command)
	} else {
		code, err = c.RunInteractive(command)
	}
	if err != nil {
		return err
	}
	if code != 0 {
		cleanup()
		os.Exit(code)
	}
	return nil
}
