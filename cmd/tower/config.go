package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/crazy-tower/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the built-in tower.yaml. Save it to ~/.tower/configs/tower.yaml
or ./configs/tower.yaml and edit it, or pass it with --config.

Examples:
  tower config > ~/.tower/configs/tower.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	},
}
