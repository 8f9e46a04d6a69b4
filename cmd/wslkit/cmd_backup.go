package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export the distribution and manage recorded backups",
}

var backupCreateCmd = &cobra.Command{
	Use:   "create [dest.tar]",
	Short: "Export the distribution to a tarball",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBackupCreate,
}

var backupListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recorded backups",
	RunE:    runBackupList,
}

var backupRemoveCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a backup and its tarball",
	Args:  cobra.ExactArgs(1),
	RunE:  runBackupRemove,
}

func init() {
	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupRemoveCmd)
	rootCmd.AddCommand(backupCmd)
}

func runBackupCreate(cmd *cobra.Command, args []string) error {
	dest := ""
	if len(args) > 0 {
		dest = args[0]
	}

	c, cleanup, err := newController(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	entry, err := c.Backup(context.Background(), dest)
	if err != nil {
		return err
	}
	fmt.Printf("Exported %s to %s (%d bytes)\n", entry.Distro, entry.Path, entry.Size)
	return nil
}

func runBackupList(cmd *cobra.Command, args []string) error {
	c, cleanup, err := newController(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	entries, err := c.Backups()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDISTRO\tPATH\tSIZE\tCREATED")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			e.ID, e.Distro, e.Path, e.Size, e.CreatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
	return nil
}

func runBackupRemove(cmd *cobra.Command, args []string) error {
	c, cleanup, err := newController(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := c.RemoveBackup(args[0]); err != nil {
		return err
	}
	fmt.Printf("Removed backup %s\n", args[0])
	return nil
}
