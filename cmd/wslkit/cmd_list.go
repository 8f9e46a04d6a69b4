package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ssantosv/wslkit/pkg/distro"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List registered distributions",
	RunE:    runList,
}

func init() {
	listCmd.Flags().Bool("running", false, "Show only running distributions")
	viper.BindPFlag("list.running", listCmd.Flags().Lookup("running"))

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	running, _ := cmd.Flags().GetBool("running")

	c, cleanup, err := newController(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	records, err := c.ListDistributions(context.Background())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTATE\tVERSION\tDEFAULT UID\tFLAGS")

	for _, r := range records {
		if running && r.State != distro.StateRunning {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", r.Name, r.State, r.Version, r.DefaultUID, r.Flags)
	}
	w.Flush()
	return nil
}
