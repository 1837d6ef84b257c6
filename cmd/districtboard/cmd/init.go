package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dbmrq/districtboard/internal/config"
	"github.com/dbmrq/districtboard/internal/district"
)

// SampleFile is the file name init --sample writes.
const SampleFile = "districts_sample.csv"

func newInitCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration",
		Long: `Write .districtboard/config.yaml with the default settings.

Use --sample to also write the bundled sample dataset, which shows the
expected column layout, and --force to overwrite existing files.

Examples:
  districtboard init           # Default config
  districtboard init --sample  # Config plus districts_sample.csv`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}
	c.Flags().BoolP("force", "f", false, "Overwrite existing files")
	c.Flags().Bool("sample", false, "Also write the bundled sample CSV")
	return c
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	sample, _ := cmd.Flags().GetBool("sample")
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultConfigPath
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	cfg := config.NewConfig()
	if sample {
		cfg.Data.Path = SampleFile
	}
	if err := config.Save(cfg, path); err != nil {
		return err
	}
	cmd.Printf("Created %s\n", path)

	if sample {
		dir := filepath.Dir(path)
		if filepath.Base(dir) == ".districtboard" {
			dir = filepath.Dir(dir)
		}
		samplePath := filepath.Join(dir, SampleFile)
		if _, err := os.Stat(samplePath); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", samplePath)
		}
		if err := os.WriteFile(samplePath, district.Sample(), 0o644); err != nil {
			return fmt.Errorf("failed to write sample: %w", err)
		}
		cmd.Printf("Created %s\n", samplePath)
	}

	cmd.Println("")
	cmd.Printf("Edit %s to configure your settings.\n", path)
	cmd.Println("Run 'districtboard' to open the dashboard.")
	return nil
}
