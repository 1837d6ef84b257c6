package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/dbmrq/districtboard/internal/version"
)

func newVersionCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show detailed version information for districtboard.

Displays the version, commit hash, build date and Go/platform
information.

Examples:
  districtboard version          # Human-readable
  districtboard version --json   # Machine-readable`,
		Args: cobra.NoArgs,
		RunE: runVersion,
	}
	c.Flags().Bool("json", false, "Print as JSON")
	return c
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := version.NewInfo(Version, Commit, Date)

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}
	cmd.Println(info.FullString())
	return nil
}
