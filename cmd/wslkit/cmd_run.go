package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ssantosv/wslkit/pkg/api"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] -- <command>",
	Short: "Run a command in the distribution",
	Example: `  wslkit run -- uname -a
  wslkit run -d Debian --user root -- apt-get update
  wslkit run --native -- cat /etc/os-release`,
	Args: cobra.ArbitraryArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringP("user", "u", "", "Run as this guest user")
	runCmd.Flags().StringP("workdir", "w", "", "Working directory inside the guest")
	runCmd.Flags().Bool("native", false, "Execute through the native control surface instead of wsl.exe")

	viper.BindPFlag("run.user", runCmd.Flags().Lookup("user"))
	viper.BindPFlag("run.workdir", runCmd.Flags().Lookup("workdir"))
	viper.BindPFlag("run.native", runCmd.Flags().Lookup("native"))

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return ErrCommandRequired
	}
	command := strings.Join(args, " ")

	user, _ := cmd.Flags().GetString("user")
	workdir, _ := cmd.Flags().GetString("workdir")
	native, _ := cmd.Flags().GetBool("native")

	c, cleanup, err := newController(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	var res *api.ExecResult
	switch {
	case native:
		res, err = c.Launch(ctx, command)
	case user != "" || workdir != "":
		res, err = c.RunWith(ctx, user, workdir, command)
	default:
		res, err = c.Run(ctx, command)
	}
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
