package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ssantosv/wslkit/internal/errx"
	"github.com/ssantosv/wslkit/pkg/api"
	"github.com/ssantosv/wslkit/pkg/distro"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Change the distribution's registration settings",
	Long: `Change default UID, WSL version, or behavior flags. Only the flags you
pass are changed; everything else keeps its current value.`,
	Example: `  wslkit configure --default-uid 1000
  wslkit configure --wsl-version 2
  wslkit configure --interop=false --drive-mounting=true`,
	RunE: runConfigure,
}

func init() {
	configureCmd.Flags().Int64("default-uid", -1, "Default login UID")
	configureCmd.Flags().Int("wsl-version", 0, "WSL version (1 or 2)")
	configureCmd.Flags().Bool("interop", true, "Allow launching Windows processes from the guest")
	configureCmd.Flags().Bool("append-nt-path", true, "Append the Windows PATH to the guest PATH")
	configureCmd.Flags().Bool("drive-mounting", true, "Mount Windows drives under the automount root")

	viper.BindPFlag("configure.default-uid", configureCmd.Flags().Lookup("default-uid"))
	viper.BindPFlag("configure.wsl-version", configureCmd.Flags().Lookup("wsl-version"))

	rootCmd.AddCommand(configureCmd)
}

func runConfigure(cmd *cobra.Command, args []string) error {
	c, cleanup, err := newController(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	var opts distro.ConfigureOptions
	if cmd.Flags().Changed("default-uid") {
		v, _ := cmd.Flags().GetInt64("default-uid")
		if v < 0 {
			return errx.With(ErrInvalidFlagValue, ": --default-uid must be >= 0")
		}
		uid := uint32(v)
		opts.DefaultUID = &uid
	}
	if cmd.Flags().Changed("wsl-version") {
		v, _ := cmd.Flags().GetInt("wsl-version")
		opts.Version = &v
	}
	if opts.DefaultUID != nil || opts.Version != nil {
		if err := c.SetConfiguration(opts); err != nil {
			return err
		}
	}

	toggles := []struct {
		name string
		flag api.DistroFlags
	}{
		{"interop", api.FlagEnableInterop},
		{"append-nt-path", api.FlagAppendNTPath},
		{"drive-mounting", api.FlagEnableDriveMounting},
	}
	for _, t := range toggles {
		if !cmd.Flags().Changed(t.name) {
			continue
		}
		enable, _ := cmd.Flags().GetBool(t.name)
		if err := c.SetFlag(t.flag, enable); err != nil {
			return err
		}
	}

	fmt.Printf("Configured %s\n", c.Distro())
	return nil
}
