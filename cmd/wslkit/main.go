package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ssantosv/wslkit/pkg/controller"
	"github.com/ssantosv/wslkit/pkg/logging"
)

var rootCmd = &cobra.Command{
	Use:   "wslkit",
	Short: "Manage and run commands in WSL distributions",
	Long: `wslkit controls WSL distributions from the Windows host: run commands,
manage registration and configuration, move files across the boundary,
and keep distributions alive.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringP("distro", "d", controller.DefaultDistro, "Target distribution")
	rootCmd.PersistentFlags().String("log-file", "", "Append JSONL events to this file")

	viper.BindPFlag("distro", rootCmd.PersistentFlags().Lookup("distro"))
	viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file"))
}

// newController builds a controller from the persistent flags. The
// returned cleanup closes the controller and any log sink.
func newController(cmd *cobra.Command, extra ...controller.Option) (*controller.Controller, func(), error) {
	distroName, _ := cmd.Flags().GetString("distro")
	logFile, _ := cmd.Flags().GetString("log-file")

	opts := append([]controller.Option(nil), extra...)
	var emitter *logging.Emitter
	if logFile != "" {
		w, err := logging.NewJSONLWriter(logFile)
		if err != nil {
			return nil, nil, err
		}
		emitter = logging.NewEmitter(distroName, w)
		opts = append(opts, controller.WithEmitter(emitter))
	}

	c := controller.New(distroName, opts...)
	cleanup := func() {
		c.Close()
		emitter.Close()
	}
	return c, cleanup, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
