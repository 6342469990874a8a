package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/carrental/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:          "carrental",
	Short:        "Policy iteration for the two-location car rental problem",
	SilenceUsage: true,
	RunE:         runSolve,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (yaml or json)")
	addSolveFlags(rootCmd)
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
