package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the distribution's registration record",
	RunE:  runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	c, cleanup, err := newController(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	rec, err := c.GetConfiguration()
	if err != nil {
		return err
	}

	out := map[string]any{
		"name":        rec.Name,
		"state":       rec.State,
		"version":     rec.Version,
		"default_uid": rec.DefaultUID,
		"flags":       rec.Flags.String(),
		"env":         rec.Env,
	}
	if rec.GUID != "" {
		out["guid"] = rec.GUID
		out["base_path"] = rec.BasePath
		out["flavor"] = rec.Flavor
		out["package_family"] = rec.PackageFamilyName
		out["os_version"] = rec.OSVersion
	}
	data, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(data))
	return nil
}
